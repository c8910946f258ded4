package service

import "github.com/agrobissau/agrobissau-backend/internal/domain"

// Unlimited marks a quota with no bound
const Unlimited = -1

// TierLimits the quotas a subscription tier grants
type TierLimits struct {
	MaxListings   int
	MaxImages     int
	FeaturedQuota int
}

var tierLimits = map[domain.SubscriptionTier]TierLimits{
	domain.TierFree:         {MaxListings: 3, MaxImages: 3, FeaturedQuota: 0},
	domain.TierPremiumBasic: {MaxListings: 10, MaxImages: 6, FeaturedQuota: 1},
	domain.TierPremiumPro:   {MaxListings: 50, MaxImages: 10, FeaturedQuota: 5},
	domain.TierEnterprise:   {MaxListings: Unlimited, MaxImages: 15, FeaturedQuota: Unlimited},
}

// tierPrices subscription price per 30 days, in XOF
var tierPrices = map[domain.SubscriptionTier]int64{
	domain.TierPremiumBasic: 5000,
	domain.TierPremiumPro:   15000,
	domain.TierEnterprise:   50000,
}

// LimitsFor returns the quota table for a tier, defaulting to FREE
func LimitsFor(tier domain.SubscriptionTier) TierLimits {
	if limits, ok := tierLimits[tier]; ok {
		return limits
	}
	return tierLimits[domain.TierFree]
}

// PriceFor returns the subscription price for a paid tier
func PriceFor(tier domain.SubscriptionTier) (int64, bool) {
	price, ok := tierPrices[tier]
	return price, ok
}

// RequiredTierForFeatured names the lowest tier whose featured quota
// exceeds the given count, for upgrade prompts in quota errors.
func RequiredTierForFeatured(count int) domain.SubscriptionTier {
	ordered := []domain.SubscriptionTier{
		domain.TierPremiumBasic,
		domain.TierPremiumPro,
		domain.TierEnterprise,
	}
	for _, tier := range ordered {
		quota := tierLimits[tier].FeaturedQuota
		if quota == Unlimited || quota > count {
			return tier
		}
	}
	return domain.TierEnterprise
}

// WithinQuota reports whether a count is below a quota
func WithinQuota(count int64, quota int) bool {
	return quota == Unlimited || count < int64(quota)
}
