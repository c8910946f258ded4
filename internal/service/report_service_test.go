package service

import (
	"testing"

	"github.com/agrobissau/agrobissau-backend/internal/authz"
	"github.com/agrobissau/agrobissau-backend/internal/common"
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReportCreate_Success(t *testing.T) {
	reportRepo := new(MockReportRepository)
	svc := NewReportService(reportRepo)

	reportRepo.On("CountByReporterSince", uint64(1), mock.AnythingOfType("time.Time")).Return(int64(2), nil)
	reportRepo.On("Create", mock.AnythingOfType("*domain.Report")).Return(nil)

	report, err := svc.Create(sellerPrincipal(1), &domain.CreateReportRequest{
		TargetType: domain.ReportTargetListing, TargetID: 10, Reason: "spam",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.ReportStatusPending, report.Status)
	reportRepo.AssertExpectations(t)
}

func TestReportCreate_DailyCapReached(t *testing.T) {
	reportRepo := new(MockReportRepository)
	svc := NewReportService(reportRepo)

	reportRepo.On("CountByReporterSince", uint64(1), mock.AnythingOfType("time.Time")).Return(int64(10), nil)

	_, err := svc.Create(sellerPrincipal(1), &domain.CreateReportRequest{
		TargetType: domain.ReportTargetUser, TargetID: 2, Reason: "abus",
	})

	assert.ErrorIs(t, err, common.ErrReportLimit)
	reportRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestReportCreate_OneBelowCapAccepted(t *testing.T) {
	reportRepo := new(MockReportRepository)
	svc := NewReportService(reportRepo)

	reportRepo.On("CountByReporterSince", uint64(1), mock.AnythingOfType("time.Time")).Return(int64(9), nil)
	reportRepo.On("Create", mock.AnythingOfType("*domain.Report")).Return(nil)

	_, err := svc.Create(sellerPrincipal(1), &domain.CreateReportRequest{
		TargetType: domain.ReportTargetListing, TargetID: 10, Reason: "fraude",
	})

	assert.NoError(t, err)
}

func TestReportList_AdminOnly(t *testing.T) {
	svc := NewReportService(new(MockReportRepository))

	_, _, err := svc.List(sellerPrincipal(1), domain.ReportStatusPending, 1, 20)

	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestReportResolve_AdminOnly(t *testing.T) {
	reportRepo := new(MockReportRepository)
	svc := NewReportService(reportRepo)

	err := svc.Resolve(sellerPrincipal(1), 5, domain.ReportStatusResolved)

	assert.ErrorIs(t, err, common.ErrForbidden)
	reportRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestReportResolve_RecordsResolver(t *testing.T) {
	reportRepo := new(MockReportRepository)
	svc := NewReportService(reportRepo)

	reportRepo.On("FindByID", uint64(5)).Return(&domain.Report{ID: 5, Status: domain.ReportStatusPending}, nil)
	reportRepo.On("UpdateStatus", uint64(5), domain.ReportStatusResolved, uint64(9)).Return(nil)

	admin := authz.Principal{UserID: 9, Role: domain.RoleAdmin}
	assert.NoError(t, svc.Resolve(admin, 5, domain.ReportStatusResolved))
	reportRepo.AssertExpectations(t)
}
