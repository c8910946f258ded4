package domain

import "time"

// PaymentMethod supported mobile money providers
type PaymentMethod string

const (
	PaymentOrangeMoney PaymentMethod = "ORANGE_MONEY"
	PaymentWave        PaymentMethod = "WAVE"
)

// TransactionStatus payment attempt state
type TransactionStatus string

const (
	TransactionPending TransactionStatus = "PENDING"
	TransactionSuccess TransactionStatus = "SUCCESS"
	TransactionFailed  TransactionStatus = "FAILED"
)

// Transaction one payment attempt against a gateway
type Transaction struct {
	ID          uint64            `gorm:"primaryKey" json:"id"`
	UserID      uint64            `gorm:"column:user_id;not null;index" json:"user_id"`
	Amount      int64             `gorm:"column:amount;not null" json:"amount"`
	Currency    string            `gorm:"column:currency;size:3;default:XOF" json:"currency"`
	Method      PaymentMethod     `gorm:"column:method;size:20;not null" json:"method"`
	Status      TransactionStatus `gorm:"column:status;size:20;default:PENDING;index" json:"status"`
	Reference   string            `gorm:"column:reference;size:64;not null;uniqueIndex" json:"reference"`
	ExternalRef string            `gorm:"column:external_ref;size:128" json:"external_ref,omitempty"`
	Tier        SubscriptionTier  `gorm:"column:tier;size:20" json:"tier,omitempty"`
	Payload     string            `gorm:"column:payload;type:text" json:"-"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
