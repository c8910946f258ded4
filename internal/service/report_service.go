package service

import (
	"time"

	"github.com/agrobissau/agrobissau-backend/internal/authz"
	"github.com/agrobissau/agrobissau-backend/internal/common"
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"github.com/agrobissau/agrobissau-backend/internal/repository"
)

// maxReportsPerDay per-reporter cap over a trailing 24-hour window
const maxReportsPerDay = 10

// ReportService abuse reports and their moderation
type ReportService interface {
	Create(p authz.Principal, req *domain.CreateReportRequest) (*domain.Report, error)
	List(p authz.Principal, status domain.ReportStatus, page, limit int) ([]*domain.Report, *common.Meta, error)
	Resolve(p authz.Principal, id uint64, status domain.ReportStatus) error
}

type reportService struct {
	reportRepo repository.ReportRepository
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo repository.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

func (s *reportService) Create(p authz.Principal, req *domain.CreateReportRequest) (*domain.Report, error) {
	// Count-then-compare over a trailing window. Concurrent
	// submissions can slip past the cap; accepted tolerance.
	since := time.Now().Add(-24 * time.Hour)
	count, err := s.reportRepo.CountByReporterSince(p.UserID, since)
	if err != nil {
		return nil, err
	}
	if count >= maxReportsPerDay {
		return nil, common.ErrReportLimit
	}

	report := &domain.Report{
		ReporterID: p.UserID,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Reason:     req.Reason,
		Detail:     req.Detail,
		Status:     domain.ReportStatusPending,
	}
	if err := s.reportRepo.Create(report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *reportService) List(p authz.Principal, status domain.ReportStatus, page, limit int) ([]*domain.Report, *common.Meta, error) {
	if !p.IsAdmin() {
		return nil, nil, common.ErrForbidden
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	reports, total, err := s.reportRepo.List(status, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return reports, common.NewMeta(page, limit, total), nil
}

func (s *reportService) Resolve(p authz.Principal, id uint64, status domain.ReportStatus) error {
	if !authz.Allow(p, authz.ActionResolve, 0) {
		return common.ErrForbidden
	}
	if _, err := s.reportRepo.FindByID(id); err != nil {
		return common.ErrNotFound
	}
	return s.reportRepo.UpdateStatus(id, status, p.UserID)
}
