package domain

import "time"

// BadgeCriterion stat a badge threshold applies to
type BadgeCriterion string

const (
	CriterionListingsPosted   BadgeCriterion = "LISTINGS_POSTED"
	CriterionTotalViews       BadgeCriterion = "TOTAL_VIEWS"
	CriterionContactsReceived BadgeCriterion = "CONTACTS_RECEIVED"
	CriterionFiveStarReviews  BadgeCriterion = "FIVE_STAR_REVIEWS"
)

// Badge achievement definition: a criterion and its threshold
type Badge struct {
	ID          uint64         `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"column:name;size:100;not null" json:"name"`
	Description string         `gorm:"column:description;size:255" json:"description,omitempty"`
	Icon        string         `gorm:"column:icon;size:100" json:"icon,omitempty"`
	Criterion   BadgeCriterion `gorm:"column:criterion;size:30;not null" json:"criterion"`
	Threshold   int64          `gorm:"column:threshold;not null" json:"threshold"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Badge) TableName() string {
	return "badges"
}

// UserBadge one-time grant, never revoked. The unique index keeps
// re-evaluation from ever duplicating a grant.
type UserBadge struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"column:user_id;not null;uniqueIndex:idx_user_badge" json:"user_id"`
	BadgeID   uint64    `gorm:"column:badge_id;not null;uniqueIndex:idx_user_badge" json:"badge_id"`
	GrantedAt time.Time `gorm:"column:granted_at;autoCreateTime" json:"granted_at"`

	// Relations
	Badge *Badge `gorm:"foreignKey:BadgeID" json:"badge,omitempty"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}

// UserStats aggregate stats the badge evaluator runs against
type UserStats struct {
	ListingCount     int64 `json:"listing_count"`
	TotalViews       int64 `json:"total_views"`
	ContactsReceived int64 `json:"contacts_received"`
	FiveStarReviews  int64 `json:"five_star_reviews"`
}

// StatFor returns the stat value matching a badge criterion
func (s UserStats) StatFor(criterion BadgeCriterion) int64 {
	switch criterion {
	case CriterionListingsPosted:
		return s.ListingCount
	case CriterionTotalViews:
		return s.TotalViews
	case CriterionContactsReceived:
		return s.ContactsReceived
	case CriterionFiveStarReviews:
		return s.FiveStarReviews
	default:
		return 0
	}
}
