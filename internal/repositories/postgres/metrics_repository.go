package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fleetpulse/internal/models"
	"fleetpulse/internal/repositories/interfaces"
)

type metricsRepository struct {
	db *gorm.DB
}

func NewMetricsRepository(db *gorm.DB) interfaces.MetricsRepository {
	return &metricsRepository{db: db}
}

var metricUpdateColumns = []string{
	"trips_completed", "trips_cancelled", "trips_requested",
	"acceptance_rate", "cancellation_rate", "completion_rate",
	"average_rating", "online_hours", "active_hours", "updated_at",
}

func (r *metricsRepository) Upsert(ctx context.Context, metric *models.DailyMetric) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "driver_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns(metricUpdateColumns),
	}).Create(metric).Error
	if err != nil {
		return fmt.Errorf("failed to upsert daily metric: %w", err)
	}
	return nil
}

func (r *metricsRepository) UpsertBatch(ctx context.Context, metrics []*models.DailyMetric) error {
	if len(metrics) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "driver_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns(metricUpdateColumns),
	}).Create(&metrics).Error
	if err != nil {
		return fmt.Errorf("failed to upsert daily metrics: %w", err)
	}
	return nil
}

func (r *metricsRepository) GetByDriverRange(ctx context.Context, driverID string, start, end time.Time) ([]*models.DailyMetric, error) {
	var metrics []*models.DailyMetric
	err := r.db.WithContext(ctx).
		Where("driver_id = ? AND date >= ? AND date <= ?", driverID, start, end).
		Order("date asc").
		Find(&metrics).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load daily metrics: %w", err)
	}
	return metrics, nil
}

func (r *metricsRepository) GetLatestByDriver(ctx context.Context, driverID string) (*models.DailyMetric, error) {
	var metric models.DailyMetric
	err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Order("date desc").
		First(&metric).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load latest daily metric: %w", err)
	}
	return &metric, nil
}

func (r *metricsRepository) DeleteByDriver(ctx context.Context, driverID string) error {
	err := r.db.WithContext(ctx).Delete(&models.DailyMetric{}, "driver_id = ?", driverID).Error
	if err != nil {
		return fmt.Errorf("failed to delete daily metrics: %w", err)
	}
	return nil
}
