package interfaces

import (
	"context"

	"fleetpulse/internal/models"
	"fleetpulse/internal/utils"
)

type DriverRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, driver *models.Driver) error
	GetByID(ctx context.Context, id string) (*models.Driver, error)
	GetByUberID(ctx context.Context, uberDriverID string) (*models.Driver, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, id string) error

	// Upsert matches on the external driver ID so repeated syncs do not
	// duplicate rows.
	Upsert(ctx context.Context, driver *models.Driver) error

	// Search and listing
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Driver, int64, error)
	GetByStatus(ctx context.Context, status models.DriverStatus, params *utils.PaginationParams) ([]*models.Driver, int64, error)
	GetAll(ctx context.Context) ([]*models.Driver, error)

	// Statistics
	GetTotalCount(ctx context.Context) (int64, error)
	GetCountByStatus(ctx context.Context, status models.DriverStatus) (int64, error)
	GetFleetSummary(ctx context.Context) (*models.FleetSummary, error)
}
