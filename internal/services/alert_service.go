package services

import (
	"context"
	"errors"
	"fmt"

	"fleetpulse/internal/models"
	"fleetpulse/internal/repositories/interfaces"
	"fleetpulse/internal/utils"
	"fleetpulse/internal/validators"
	"fleetpulse/pkg/logger"
	"fleetpulse/pkg/notify"
	"fleetpulse/pkg/websocket"
)

type AlertService interface {
	// Rule management
	CreateRule(ctx context.Context, request *validators.CreateAlertRuleRequest) (*models.AlertRule, error)
	GetRule(ctx context.Context, id string) (*models.AlertRule, error)
	UpdateRule(ctx context.Context, id string, request *validators.UpdateAlertRuleRequest) (*models.AlertRule, error)
	DeleteRule(ctx context.Context, id string) error
	ListRules(ctx context.Context, params *utils.PaginationParams) ([]*models.AlertRule, *utils.PaginationMeta, error)

	// Evaluation
	EvaluateDriver(ctx context.Context, driverID string) ([]*TriggeredAlert, error)

	// Messaging
	Preview(ctx context.Context, request *validators.PreviewAlertRequest) (*AlertPreview, error)
	Dispatch(ctx context.Context, request *validators.DispatchAlertRequest) (*models.AlertEvent, error)
	ListEvents(ctx context.Context, driverID string, params *utils.PaginationParams) ([]*models.AlertEvent, *utils.PaginationMeta, error)
}

type alertService struct {
	ruleRepo     interfaces.AlertRuleRepository
	eventRepo    interfaces.AlertEventRepository
	templateRepo interfaces.TemplateRepository
	driverRepo   interfaces.DriverRepository
	catalog      *TemplateCatalog
	provider     notify.Provider
	fromNumber   string
	hub          *websocket.Hub
	logger       *logger.Logger
}

func NewAlertService(
	ruleRepo interfaces.AlertRuleRepository,
	eventRepo interfaces.AlertEventRepository,
	templateRepo interfaces.TemplateRepository,
	driverRepo interfaces.DriverRepository,
	catalog *TemplateCatalog,
	provider notify.Provider,
	fromNumber string,
	hub *websocket.Hub,
	logger *logger.Logger,
) AlertService {
	return &alertService{
		ruleRepo:     ruleRepo,
		eventRepo:    eventRepo,
		templateRepo: templateRepo,
		driverRepo:   driverRepo,
		catalog:      catalog,
		provider:     provider,
		fromNumber:   fromNumber,
		hub:          hub,
		logger:       logger,
	}
}

type TriggeredAlert struct {
	Rule        *models.AlertRule `json:"rule"`
	MetricValue float64           `json:"metric_value"`
}

type AlertPreview struct {
	DriverID string `json:"driver_id"`
	Channel  string `json:"channel"`
	Language string `json:"language"`
	Tone     string `json:"tone"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
}

func (s *alertService) CreateRule(ctx context.Context, request *validators.CreateAlertRuleRequest) (*models.AlertRule, error) {
	rule := &models.AlertRule{
		Name:      request.Name,
		Metric:    request.Metric,
		Operator:  request.Operator,
		Threshold: request.Threshold,
		Reason:    request.Reason,
		Severity:  models.AlertSeverity(request.Severity),
		Enabled:   true,
	}
	if request.Enabled != nil {
		rule.Enabled = *request.Enabled
	}

	if err := s.ruleRepo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *alertService) GetRule(ctx context.Context, id string) (*models.AlertRule, error) {
	return s.ruleRepo.GetByID(ctx, id)
}

func (s *alertService) UpdateRule(ctx context.Context, id string, request *validators.UpdateAlertRuleRequest) (*models.AlertRule, error) {
	updates := map[string]interface{}{}
	if request.Name != nil {
		updates["name"] = *request.Name
	}
	if request.Metric != nil {
		updates["metric"] = *request.Metric
	}
	if request.Operator != nil {
		updates["operator"] = *request.Operator
	}
	if request.Threshold != nil {
		updates["threshold"] = *request.Threshold
	}
	if request.Reason != nil {
		updates["reason"] = *request.Reason
	}
	if request.Severity != nil {
		updates["severity"] = *request.Severity
	}
	if request.Enabled != nil {
		updates["enabled"] = *request.Enabled
	}

	if len(updates) > 0 {
		if err := s.ruleRepo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.ruleRepo.GetByID(ctx, id)
}

func (s *alertService) DeleteRule(ctx context.Context, id string) error {
	return s.ruleRepo.Delete(ctx, id)
}

func (s *alertService) ListRules(ctx context.Context, params *utils.PaginationParams) ([]*models.AlertRule, *utils.PaginationMeta, error) {
	rules, total, err := s.ruleRepo.List(ctx, params)
	if err != nil {
		return nil, nil, err
	}
	return rules, utils.CreatePaginationMeta(params, total), nil
}

// EvaluateDriver runs every enabled rule against the driver's current
// performance snapshot.
func (s *alertService) EvaluateDriver(ctx context.Context, driverID string) ([]*TriggeredAlert, error) {
	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	rules, err := s.ruleRepo.GetEnabled(ctx)
	if err != nil {
		return nil, err
	}

	triggered := []*TriggeredAlert{}
	for _, rule := range rules {
		value, ok := metricValue(driver, rule.Metric)
		if !ok {
			s.logger.WithField("metric", rule.Metric).Warn("Alert rule references unknown metric")
			continue
		}
		if rule.Matches(value) {
			triggered = append(triggered, &TriggeredAlert{Rule: rule, MetricValue: value})
		}
	}

	return triggered, nil
}

func metricValue(driver *models.Driver, metric string) (float64, bool) {
	switch metric {
	case "acceptance_rate":
		return driver.AcceptanceRate, true
	case "cancellation_rate":
		return driver.CancellationRate, true
	case "completion_rate":
		return driver.CompletionRate, true
	case "feedback_score":
		return driver.FeedbackScore, true
	case "trip_volume_index":
		return driver.TripVolumeIndex, true
	case "idle_ratio":
		return driver.IdleRatio, true
	default:
		return 0, false
	}
}

func (s *alertService) Preview(ctx context.Context, request *validators.PreviewAlertRequest) (*AlertPreview, error) {
	driver, err := s.driverRepo.GetByID(ctx, request.DriverID)
	if err != nil {
		return nil, err
	}

	language, tone := normalizeLocale(request.Language, request.Tone)
	body := s.resolveTemplate(ctx, request.Channel, language, tone, request.Reason)

	return &AlertPreview{
		DriverID: driver.ID,
		Channel:  request.Channel,
		Language: language,
		Tone:     tone,
		Reason:   request.Reason,
		Message:  RenderTemplate(body, driver.FullName(), request.Reason),
	}, nil
}

// Dispatch renders the alert and delivers it over the requested channel.
// The event row records the outcome either way.
func (s *alertService) Dispatch(ctx context.Context, request *validators.DispatchAlertRequest) (*models.AlertEvent, error) {
	driver, err := s.driverRepo.GetByID(ctx, request.DriverID)
	if err != nil {
		return nil, err
	}

	language, tone := normalizeLocale(request.Language, request.Tone)
	body := s.resolveTemplate(ctx, request.Channel, language, tone, request.Reason)
	message := RenderTemplate(body, driver.FullName(), request.Reason)

	event := &models.AlertEvent{
		DriverID: driver.ID,
		Reason:   request.Reason,
		Tone:     tone,
		Language: language,
		Channel:  models.AlertChannel(request.Channel),
		Severity: models.AlertSeverity(request.Severity),
		Message:  message,
	}

	deliverErr := s.deliver(ctx, driver, request.Channel, message)
	if deliverErr != nil {
		event.Error = deliverErr.Error()
	} else {
		event.Delivered = true
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.logger.LogAlertEvent(driver.ID, request.Reason, request.Channel, map[string]interface{}{
		"delivered": event.Delivered,
	})
	s.hub.PublishFleetEvent(websocket.EventAlertDispatched, driver.ID, map[string]interface{}{
		"reason":    request.Reason,
		"channel":   request.Channel,
		"delivered": event.Delivered,
	})

	if deliverErr != nil {
		return event, fmt.Errorf("alert recorded but delivery failed: %w", deliverErr)
	}
	return event, nil
}

func (s *alertService) deliver(ctx context.Context, driver *models.Driver, channel, message string) error {
	if driver.Phone == "" {
		return errors.New("driver has no phone number")
	}

	switch channel {
	case string(models.AlertChannelSMS):
		_, err := s.provider.SendSMS(ctx, &notify.MessageRequest{
			To:      driver.Phone,
			From:    s.fromNumber,
			Message: message,
		})
		return err
	case string(models.AlertChannelCall):
		_, err := s.provider.PlaceCall(ctx, &notify.CallRequest{
			To:     driver.Phone,
			From:   s.fromNumber,
			Script: message,
		})
		return err
	default:
		return fmt.Errorf("unsupported channel %q", channel)
	}
}

// resolveTemplate prefers a database-managed template when one matches
// exactly, otherwise walks the file catalog's fallback chain.
func (s *alertService) resolveTemplate(ctx context.Context, channel, language, tone, reason string) string {
	if template, err := s.templateRepo.Get(ctx, channel, language, tone, reason); err == nil {
		return template.Body
	}
	return s.catalog.Resolve(language, tone, reason)
}

func (s *alertService) ListEvents(ctx context.Context, driverID string, params *utils.PaginationParams) ([]*models.AlertEvent, *utils.PaginationMeta, error) {
	var events []*models.AlertEvent
	var total int64
	var err error

	if driverID != "" {
		events, total, err = s.eventRepo.GetByDriver(ctx, driverID, params)
	} else {
		events, total, err = s.eventRepo.List(ctx, params)
	}
	if err != nil {
		return nil, nil, err
	}

	return events, utils.CreatePaginationMeta(params, total), nil
}

func normalizeLocale(language, tone string) (string, string) {
	if language == "" {
		language = utils.DefaultLanguage
	}
	if tone == "" {
		tone = utils.DefaultTone
	}
	return language, tone
}
