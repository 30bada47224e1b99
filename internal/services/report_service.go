package services

import (
	"context"
	"errors"
	"time"

	"fleetpulse/internal/models"
	"fleetpulse/internal/repositories/interfaces"
	"fleetpulse/internal/utils"
	"fleetpulse/pkg/logger"
	"fleetpulse/pkg/uber"
)

type ReportService interface {
	Generate(ctx context.Context, requestedBy, reportType string, start, end time.Time) (*models.Report, error)
	Get(ctx context.Context, id string) (*models.Report, error)
	GetByUberReportID(ctx context.Context, uberReportID string) (*models.Report, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Report, *utils.PaginationMeta, error)
}

type reportService struct {
	api        uber.FleetAPI
	reportRepo interfaces.ReportRepository
	logger     *logger.Logger
}

func NewReportService(api uber.FleetAPI, reportRepo interfaces.ReportRepository, logger *logger.Logger) ReportService {
	return &reportService{
		api:        api,
		reportRepo: reportRepo,
		logger:     logger,
	}
}

// Generate asks the platform for an offline report and tracks it
// locally. Completion is detected later by polling on read.
func (s *reportService) Generate(ctx context.Context, requestedBy, reportType string, start, end time.Time) (*models.Report, error) {
	if reportType == "" {
		reportType = "fleet_activity"
	}

	remote, err := s.api.GenerateReport(ctx, &uber.ReportRequest{
		ReportType: reportType,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		if errors.Is(err, uber.ErrNotConfigured) {
			return nil, ErrSyncNotConfigured
		}
		return nil, err
	}

	report := &models.Report{
		UberReportID: remote.ReportID,
		ReportType:   remote.ReportType,
		Status:       string(remote.Status),
		DownloadURL:  remote.DownloadURL,
		RequestedBy:  requestedBy,
		StartDate:    start,
		EndDate:      end,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	s.logger.WithField("report_id", report.ID).WithField("report_type", reportType).Info("Report generation requested")

	return report, nil
}

// Get returns the tracked report, refreshing its status from the
// platform first when it has not yet reached a terminal state.
func (s *reportService) Get(ctx context.Context, id string) (*models.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, report)
}

func (s *reportService) GetByUberReportID(ctx context.Context, uberReportID string) (*models.Report, error) {
	report, err := s.reportRepo.GetByUberReportID(ctx, uberReportID)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, report)
}

func (s *reportService) refresh(ctx context.Context, report *models.Report) (*models.Report, error) {
	if report.Terminal() {
		return report, nil
	}

	remote, err := s.api.GetReportStatus(ctx, report.UberReportID)
	if err != nil {
		// A poll failure is not fatal; return the last known state.
		s.logger.WithField("report_id", report.ID).WithError(err).Warn("Report status poll failed")
		return report, nil
	}

	updates := map[string]interface{}{
		"status":       string(remote.Status),
		"download_url": remote.DownloadURL,
	}
	if remote.Status == uber.ReportStatusCompleted && report.CompletedAt == nil {
		now := time.Now()
		if remote.CompletedAt != nil {
			now = *remote.CompletedAt
		}
		updates["completed_at"] = now
	}

	if err := s.reportRepo.Update(ctx, report.ID, updates); err != nil {
		return nil, err
	}

	return s.reportRepo.GetByID(ctx, report.ID)
}

func (s *reportService) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Report, *utils.PaginationMeta, error) {
	reports, total, err := s.reportRepo.List(ctx, params)
	if err != nil {
		return nil, nil, err
	}
	return reports, utils.CreatePaginationMeta(params, total), nil
}
