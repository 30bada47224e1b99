package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fleetpulse/internal/models"
	"fleetpulse/internal/repositories/interfaces"
	"fleetpulse/internal/utils"
)

type driverRepository struct {
	db *gorm.DB
}

func NewDriverRepository(db *gorm.DB) interfaces.DriverRepository {
	return &driverRepository{db: db}
}

func (r *driverRepository) Create(ctx context.Context, driver *models.Driver) error {
	if err := r.db.WithContext(ctx).Create(driver).Error; err != nil {
		return fmt.Errorf("failed to create driver: %w", err)
	}
	return nil
}

func (r *driverRepository) GetByID(ctx context.Context, id string) (*models.Driver, error) {
	var driver models.Driver
	err := r.db.WithContext(ctx).First(&driver, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}
	return &driver, nil
}

func (r *driverRepository) GetByUberID(ctx context.Context, uberDriverID string) (*models.Driver, error) {
	var driver models.Driver
	err := r.db.WithContext(ctx).First(&driver, "uber_driver_id = ?", uberDriverID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get driver by uber id: %w", err)
	}
	return &driver, nil
}

func (r *driverRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Driver{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update driver: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func (r *driverRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Driver{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete driver: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

// driverProfileColumns are the roster fields refreshed when an upsert
// hits an existing driver. Performance snapshot columns are written only
// through Update after a successful metrics fetch; assigning them here
// would zero an existing snapshot whenever a sync delivers the profile
// but the metrics fetch fails.
var driverProfileColumns = []string{
	"first_name", "last_name", "email", "phone", "photo_url", "status",
	"updated_at",
}

func (r *driverRepository) Upsert(ctx context.Context, driver *models.Driver) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uber_driver_id"}},
		DoUpdates: clause.AssignmentColumns(driverProfileColumns),
	}).Create(driver).Error
	if err != nil {
		return fmt.Errorf("failed to upsert driver: %w", err)
	}
	return nil
}

func (r *driverRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Driver, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&models.Driver{}), params)
}

func (r *driverRepository) GetByStatus(ctx context.Context, status models.DriverStatus, params *utils.PaginationParams) ([]*models.Driver, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Driver{}).Where("status = ?", status)
	return r.list(ctx, query, params)
}

func (r *driverRepository) list(ctx context.Context, query *gorm.DB, params *utils.PaginationParams) ([]*models.Driver, int64, error) {
	var drivers []*models.Driver
	var total int64

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count drivers: %w", err)
	}

	if err := query.Scopes(params.Scope()).Find(&drivers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list drivers: %w", err)
	}

	return drivers, total, nil
}

func (r *driverRepository) GetAll(ctx context.Context) ([]*models.Driver, error) {
	var drivers []*models.Driver
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&drivers).Error; err != nil {
		return nil, fmt.Errorf("failed to load drivers: %w", err)
	}
	return drivers, nil
}

func (r *driverRepository) GetTotalCount(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Driver{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count drivers: %w", err)
	}
	return count, nil
}

func (r *driverRepository) GetCountByStatus(ctx context.Context, status models.DriverStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Driver{}).Where("status = ?", status).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count drivers by status: %w", err)
	}
	return count, nil
}

func (r *driverRepository) GetFleetSummary(ctx context.Context) (*models.FleetSummary, error) {
	var summary models.FleetSummary

	row := r.db.WithContext(ctx).Model(&models.Driver{}).Select(
		"COUNT(*) AS total_drivers",
		"COUNT(*) FILTER (WHERE status = 'active') AS active_drivers",
		"COUNT(*) FILTER (WHERE status = 'inactive') AS inactive_drivers",
		"COUNT(*) FILTER (WHERE status = 'suspended') AS suspended_drivers",
		"COALESCE(AVG(feedback_score), 0) AS avg_feedback_score",
		"COALESCE(AVG(acceptance_rate), 0) AS avg_acceptance",
		"COALESCE(SUM(total_earnings), 0) AS total_earnings",
		"COALESCE(SUM(total_trips), 0) AS total_trips",
	)
	if err := row.Scan(&summary).Error; err != nil {
		return nil, fmt.Errorf("failed to build fleet summary: %w", err)
	}

	return &summary, nil
}
