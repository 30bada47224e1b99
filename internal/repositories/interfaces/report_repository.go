package interfaces

import (
	"context"

	"fleetpulse/internal/models"
	"fleetpulse/internal/utils"
)

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id string) (*models.Report, error)
	GetByUberReportID(ctx context.Context, uberReportID string) (*models.Report, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error

	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Report, int64, error)
}
