package repository

import (
	"time"

	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"gorm.io/gorm"
)

// ReportRepository abuse report data access
type ReportRepository interface {
	Create(report *domain.Report) error
	FindByID(id uint64) (*domain.Report, error)
	CountByReporterSince(reporterID uint64, since time.Time) (int64, error)
	List(status domain.ReportStatus, page, limit int) ([]*domain.Report, int64, error)
	UpdateStatus(id uint64, status domain.ReportStatus, resolvedBy uint64) error
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *domain.Report) error {
	return r.db.Create(report).Error
}

func (r *reportRepository) FindByID(id uint64) (*domain.Report, error) {
	var report domain.Report
	if err := r.db.First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) CountByReporterSince(reporterID uint64, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Report{}).
		Where("reporter_id = ? AND created_at >= ?", reporterID, since).
		Count(&count).Error
	return count, err
}

func (r *reportRepository) List(status domain.ReportStatus, page, limit int) ([]*domain.Report, int64, error) {
	query := r.db.Model(&domain.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []*domain.Report
	offset := (page - 1) * limit
	err := query.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *reportRepository) UpdateStatus(id uint64, status domain.ReportStatus, resolvedBy uint64) error {
	return r.db.Model(&domain.Report{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"resolved_by": resolvedBy,
		}).Error
}
