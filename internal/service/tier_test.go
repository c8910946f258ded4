package service

import (
	"testing"

	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestLimitsFor(t *testing.T) {
	tests := []struct {
		tier     domain.SubscriptionTier
		expected TierLimits
	}{
		{domain.TierFree, TierLimits{MaxListings: 3, MaxImages: 3, FeaturedQuota: 0}},
		{domain.TierPremiumBasic, TierLimits{MaxListings: 10, MaxImages: 6, FeaturedQuota: 1}},
		{domain.TierPremiumPro, TierLimits{MaxListings: 50, MaxImages: 10, FeaturedQuota: 5}},
		{domain.TierEnterprise, TierLimits{MaxListings: Unlimited, MaxImages: 15, FeaturedQuota: Unlimited}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, LimitsFor(tt.tier), string(tt.tier))
	}
}

func TestLimitsFor_UnknownTierFallsBackToFree(t *testing.T) {
	assert.Equal(t, LimitsFor(domain.TierFree), LimitsFor(domain.SubscriptionTier("GOLD")))
}

func TestWithinQuota(t *testing.T) {
	assert.True(t, WithinQuota(0, 3))
	assert.True(t, WithinQuota(2, 3))
	assert.False(t, WithinQuota(3, 3))
	assert.False(t, WithinQuota(10, 3))
	assert.False(t, WithinQuota(0, 0))
	assert.True(t, WithinQuota(1_000_000, Unlimited))
}

func TestPriceFor(t *testing.T) {
	price, ok := PriceFor(domain.TierPremiumBasic)
	assert.True(t, ok)
	assert.Equal(t, int64(5000), price)

	price, ok = PriceFor(domain.TierPremiumPro)
	assert.True(t, ok)
	assert.Equal(t, int64(15000), price)

	price, ok = PriceFor(domain.TierEnterprise)
	assert.True(t, ok)
	assert.Equal(t, int64(50000), price)

	_, ok = PriceFor(domain.TierFree)
	assert.False(t, ok)
}

func TestRequiredTierForFeatured(t *testing.T) {
	assert.Equal(t, domain.TierPremiumBasic, RequiredTierForFeatured(0))
	assert.Equal(t, domain.TierPremiumPro, RequiredTierForFeatured(1))
	assert.Equal(t, domain.TierPremiumPro, RequiredTierForFeatured(4))
	assert.Equal(t, domain.TierEnterprise, RequiredTierForFeatured(5))
	assert.Equal(t, domain.TierEnterprise, RequiredTierForFeatured(500))
}
