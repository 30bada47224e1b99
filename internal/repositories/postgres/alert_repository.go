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

type alertRuleRepository struct {
	db *gorm.DB
}

func NewAlertRuleRepository(db *gorm.DB) interfaces.AlertRuleRepository {
	return &alertRuleRepository{db: db}
}

func (r *alertRuleRepository) Create(ctx context.Context, rule *models.AlertRule) error {
	if err := r.db.WithContext(ctx).Create(rule).Error; err != nil {
		return fmt.Errorf("failed to create alert rule: %w", err)
	}
	return nil
}

func (r *alertRuleRepository) GetByID(ctx context.Context, id string) (*models.AlertRule, error) {
	var rule models.AlertRule
	err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get alert rule: %w", err)
	}
	return &rule, nil
}

func (r *alertRuleRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.AlertRule{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update alert rule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func (r *alertRuleRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.AlertRule{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete alert rule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func (r *alertRuleRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.AlertRule, int64, error) {
	var rules []*models.AlertRule
	var total int64

	query := r.db.WithContext(ctx).Model(&models.AlertRule{})
	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count alert rules: %w", err)
	}

	if err := query.Scopes(params.Scope()).Find(&rules).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list alert rules: %w", err)
	}

	return rules, total, nil
}

func (r *alertRuleRepository) GetEnabled(ctx context.Context) ([]*models.AlertRule, error) {
	var rules []*models.AlertRule
	err := r.db.WithContext(ctx).Where("enabled = ?", true).Order("created_at asc").Find(&rules).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load enabled alert rules: %w", err)
	}
	return rules, nil
}

type alertEventRepository struct {
	db *gorm.DB
}

func NewAlertEventRepository(db *gorm.DB) interfaces.AlertEventRepository {
	return &alertEventRepository{db: db}
}

func (r *alertEventRepository) Create(ctx context.Context, event *models.AlertEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to create alert event: %w", err)
	}
	return nil
}

func (r *alertEventRepository) GetByID(ctx context.Context, id string) (*models.AlertEvent, error) {
	var event models.AlertEvent
	err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get alert event: %w", err)
	}
	return &event, nil
}

func (r *alertEventRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.AlertEvent{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update alert event: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func (r *alertEventRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.AlertEvent, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&models.AlertEvent{}), params)
}

func (r *alertEventRepository) GetByDriver(ctx context.Context, driverID string, params *utils.PaginationParams) ([]*models.AlertEvent, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AlertEvent{}).Where("driver_id = ?", driverID)
	return r.list(ctx, query, params)
}

func (r *alertEventRepository) list(ctx context.Context, query *gorm.DB, params *utils.PaginationParams) ([]*models.AlertEvent, int64, error) {
	var events []*models.AlertEvent
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count alert events: %w", err)
	}

	if err := query.Scopes(params.Scope()).Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list alert events: %w", err)
	}

	return events, total, nil
}

type templateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) interfaces.TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Upsert(ctx context.Context, template *models.NotificationTemplate) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"channel", "language", "tone", "reason", "body", "updated_at"}),
	}).Create(template).Error
	if err != nil {
		return fmt.Errorf("failed to upsert notification template: %w", err)
	}
	return nil
}

func (r *templateRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.NotificationTemplate{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete notification template: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func (r *templateRepository) Get(ctx context.Context, channel, language, tone, reason string) (*models.NotificationTemplate, error) {
	var template models.NotificationTemplate
	err := r.db.WithContext(ctx).
		Where("channel = ? AND language = ? AND tone = ? AND reason = ?", channel, language, tone, reason).
		First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get notification template: %w", err)
	}
	return &template, nil
}

func (r *templateRepository) List(ctx context.Context) ([]*models.NotificationTemplate, error) {
	var templates []*models.NotificationTemplate
	err := r.db.WithContext(ctx).Order("language, tone, reason").Find(&templates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notification templates: %w", err)
	}
	return templates, nil
}
