package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fleetpulse/internal/models"
	"fleetpulse/internal/repositories/interfaces"
	"fleetpulse/internal/utils"
)

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) interfaces.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &report, nil
}

func (r *reportRepository) GetByUberReportID(ctx context.Context, uberReportID string) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).First(&report, "uber_report_id = ?", uberReportID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get report by uber id: %w", err)
	}
	return &report, nil
}

func (r *reportRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Report{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func (r *reportRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Report, int64, error) {
	var reports []*models.Report
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Report{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	if err := query.Scopes(params.Scope()).Find(&reports).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}

	return reports, total, nil
}
