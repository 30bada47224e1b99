package interfaces

import (
	"context"
	"time"

	"fleetpulse/internal/models"
)

type MetricsRepository interface {
	// Upsert matches on driver ID and date so re-syncing a window
	// overwrites instead of duplicating.
	Upsert(ctx context.Context, metric *models.DailyMetric) error
	UpsertBatch(ctx context.Context, metrics []*models.DailyMetric) error

	GetByDriverRange(ctx context.Context, driverID string, start, end time.Time) ([]*models.DailyMetric, error)
	GetLatestByDriver(ctx context.Context, driverID string) (*models.DailyMetric, error)
	DeleteByDriver(ctx context.Context, driverID string) error
}
