package domain

import "time"

// ReportTargetType entity kind a report points at
type ReportTargetType string

const (
	ReportTargetListing ReportTargetType = "LISTING"
	ReportTargetUser    ReportTargetType = "USER"
	ReportTargetReview  ReportTargetType = "REVIEW"
)

// ReportStatus moderation state
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "PENDING"
	ReportStatusResolved  ReportStatus = "RESOLVED"
	ReportStatusDismissed ReportStatus = "DISMISSED"
)

// Report abuse report filed by a user
type Report struct {
	ID         uint64           `gorm:"primaryKey" json:"id"`
	ReporterID uint64           `gorm:"column:reporter_id;not null;index" json:"reporter_id"`
	TargetType ReportTargetType `gorm:"column:target_type;size:20;not null" json:"target_type"`
	TargetID   uint64           `gorm:"column:target_id;not null" json:"target_id"`
	Reason     string           `gorm:"column:reason;size:100;not null" json:"reason"`
	Detail     string           `gorm:"column:detail;type:text" json:"detail,omitempty"`
	Status     ReportStatus     `gorm:"column:status;size:20;default:PENDING;index" json:"status"`
	ResolvedBy *uint64          `gorm:"column:resolved_by" json:"resolved_by,omitempty"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Report) TableName() string {
	return "reports"
}

// CreateReportRequest report submission payload
type CreateReportRequest struct {
	TargetType ReportTargetType `json:"target_type" binding:"required,oneof=LISTING USER REVIEW"`
	TargetID   uint64           `json:"target_id" binding:"required"`
	Reason     string           `json:"reason" binding:"required,max=100"`
	Detail     string           `json:"detail" binding:"omitempty,max=2000"`
}

// ResolveReportRequest admin resolution payload
type ResolveReportRequest struct {
	Status ReportStatus `json:"status" binding:"required,oneof=RESOLVED DISMISSED"`
}
