package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleetpulse/internal/models"
	"fleetpulse/internal/repositories/interfaces"
	"fleetpulse/internal/utils"
	"fleetpulse/internal/validators"
	"fleetpulse/pkg/logger"
)

type DriverService interface {
	ListDrivers(ctx context.Context, params *utils.PaginationParams, status string) ([]*models.Driver, *utils.PaginationMeta, error)
	GetDriver(ctx context.Context, id string) (*models.Driver, error)
	GetDriverMetrics(ctx context.Context, id string, days int) ([]*models.DailyMetric, error)
	UpdateDriver(ctx context.Context, id string, request *validators.UpdateDriverRequest) (*models.Driver, error)
	UpdateDriverStatus(ctx context.Context, id string, status models.DriverStatus) (*models.Driver, error)
	GetFleetSummary(ctx context.Context) (*models.FleetSummary, error)
}

type driverService struct {
	driverRepo  interfaces.DriverRepository
	metricsRepo interfaces.MetricsRepository
	cache       CacheService
	logger      *logger.Logger
}

func NewDriverService(
	driverRepo interfaces.DriverRepository,
	metricsRepo interfaces.MetricsRepository,
	cache CacheService,
	logger *logger.Logger,
) DriverService {
	return &driverService{
		driverRepo:  driverRepo,
		metricsRepo: metricsRepo,
		cache:       cache,
		logger:      logger,
	}
}

func (s *driverService) ListDrivers(ctx context.Context, params *utils.PaginationParams, status string) ([]*models.Driver, *utils.PaginationMeta, error) {
	var drivers []*models.Driver
	var total int64
	var err error

	if status != "" {
		drivers, total, err = s.driverRepo.GetByStatus(ctx, models.DriverStatus(status), params)
	} else {
		drivers, total, err = s.driverRepo.List(ctx, params)
	}
	if err != nil {
		return nil, nil, err
	}

	return drivers, utils.CreatePaginationMeta(params, total), nil
}

func (s *driverService) GetDriver(ctx context.Context, id string) (*models.Driver, error) {
	return s.driverRepo.GetByID(ctx, id)
}

func (s *driverService) GetDriverMetrics(ctx context.Context, id string, days int) ([]*models.DailyMetric, error) {
	if days <= 0 {
		days = utils.DefaultSyncWindowDays
	}

	if _, err := s.driverRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	now := time.Now()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := end.AddDate(0, 0, -days)

	return s.metricsRepo.GetByDriverRange(ctx, id, start, end)
}

func (s *driverService) UpdateDriver(ctx context.Context, id string, request *validators.UpdateDriverRequest) (*models.Driver, error) {
	updates := map[string]interface{}{}
	if request.FirstName != nil {
		updates["first_name"] = *request.FirstName
	}
	if request.LastName != nil {
		updates["last_name"] = *request.LastName
	}
	if request.Phone != nil {
		updates["phone"] = *request.Phone
	}
	if request.Email != nil {
		updates["email"] = *request.Email
	}
	if request.Status != nil {
		updates["status"] = *request.Status
	}

	if len(updates) > 0 {
		if err := s.driverRepo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
		s.invalidateSummary(ctx)
	}

	return s.driverRepo.GetByID(ctx, id)
}

func (s *driverService) UpdateDriverStatus(ctx context.Context, id string, status models.DriverStatus) (*models.Driver, error) {
	if err := s.driverRepo.Update(ctx, id, map[string]interface{}{"status": status}); err != nil {
		return nil, err
	}

	s.invalidateSummary(ctx)
	s.logger.WithDriverID(id).WithField("status", status).Info("Driver status updated")

	return s.driverRepo.GetByID(ctx, id)
}

// GetFleetSummary serves the dashboard rollup from cache when possible.
// A database failure degrades to a zeroed summary so the dashboard still
// renders.
func (s *driverService) GetFleetSummary(ctx context.Context) (*models.FleetSummary, error) {
	var cached models.FleetSummary
	if err := s.cache.Get(ctx, utils.FleetSummaryCacheKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, ErrCacheMiss) {
		s.logger.WithError(err).Warn("Fleet summary cache read failed")
	}

	summary, err := s.driverRepo.GetFleetSummary(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Fleet summary query failed, serving zeroed summary")
		return &models.FleetSummary{}, nil
	}

	if err := s.cache.Set(ctx, utils.FleetSummaryCacheKey, summary, utils.FleetSummaryCacheTTL); err != nil {
		s.logger.WithError(err).Warn("Fleet summary cache write failed")
	}

	return summary, nil
}

func (s *driverService) invalidateSummary(ctx context.Context) {
	if err := s.cache.Delete(ctx, utils.FleetSummaryCacheKey); err != nil {
		s.logger.WithError(err).Warn(fmt.Sprintf("Failed to invalidate %s", utils.FleetSummaryCacheKey))
	}
}
