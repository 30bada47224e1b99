package interfaces

import (
	"context"

	"fleetpulse/internal/models"
	"fleetpulse/internal/utils"
)

type AlertRuleRepository interface {
	Create(ctx context.Context, rule *models.AlertRule) error
	GetByID(ctx context.Context, id string) (*models.AlertRule, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, params *utils.PaginationParams) ([]*models.AlertRule, int64, error)
	GetEnabled(ctx context.Context) ([]*models.AlertRule, error)
}

type AlertEventRepository interface {
	Create(ctx context.Context, event *models.AlertEvent) error
	GetByID(ctx context.Context, id string) (*models.AlertEvent, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error

	List(ctx context.Context, params *utils.PaginationParams) ([]*models.AlertEvent, int64, error)
	GetByDriver(ctx context.Context, driverID string, params *utils.PaginationParams) ([]*models.AlertEvent, int64, error)
}

type TemplateRepository interface {
	Upsert(ctx context.Context, template *models.NotificationTemplate) error
	Delete(ctx context.Context, id string) error

	// Get returns the template for an exact channel, language, tone and
	// reason match, or ErrNotFound.
	Get(ctx context.Context, channel, language, tone, reason string) (*models.NotificationTemplate, error)
	List(ctx context.Context) ([]*models.NotificationTemplate, error)
}
