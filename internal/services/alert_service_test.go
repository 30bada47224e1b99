package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetpulse/internal/models"
	"fleetpulse/internal/repositories/interfaces"
	"fleetpulse/internal/validators"
	"fleetpulse/pkg/notify"
	"fleetpulse/pkg/websocket"
)

type fakeTemplateRepo struct {
	interfaces.TemplateRepository
	templates map[string]*models.NotificationTemplate
}

func templateKey(channel, language, tone, reason string) string {
	return channel + "|" + language + "|" + tone + "|" + reason
}

func (r *fakeTemplateRepo) Get(ctx context.Context, channel, language, tone, reason string) (*models.NotificationTemplate, error) {
	if t, ok := r.templates[templateKey(channel, language, tone, reason)]; ok {
		return t, nil
	}
	return nil, interfaces.ErrNotFound
}

type fakeEventRepo struct {
	interfaces.AlertEventRepository
	created []*models.AlertEvent
}

func (r *fakeEventRepo) Create(ctx context.Context, event *models.AlertEvent) error {
	r.created = append(r.created, event)
	return nil
}

type fakeRuleRepo struct {
	interfaces.AlertRuleRepository
	enabled []*models.AlertRule
}

func (r *fakeRuleRepo) GetEnabled(ctx context.Context) ([]*models.AlertRule, error) {
	return r.enabled, nil
}

type fakeProvider struct {
	smsSent   []*notify.MessageRequest
	callsMade []*notify.CallRequest
	failWith  error
}

func (p *fakeProvider) SendSMS(ctx context.Context, request *notify.MessageRequest) (*notify.MessageResponse, error) {
	if p.failWith != nil {
		return nil, p.failWith
	}
	p.smsSent = append(p.smsSent, request)
	return &notify.MessageResponse{MessageID: "msg-1", Status: "sent"}, nil
}

func (p *fakeProvider) PlaceCall(ctx context.Context, request *notify.CallRequest) (*notify.CallResponse, error) {
	if p.failWith != nil {
		return nil, p.failWith
	}
	p.callsMade = append(p.callsMade, request)
	return &notify.CallResponse{CallID: "call-1", Status: "queued"}, nil
}

type alertFixture struct {
	svc      AlertService
	drivers  *fakeDriverRepo
	events   *fakeEventRepo
	rules    *fakeRuleRepo
	provider *fakeProvider
}

func newAlertFixture(t *testing.T) *alertFixture {
	t.Helper()

	drivers := newFakeDriverRepo()
	require.NoError(t, drivers.Upsert(context.Background(), &models.Driver{
		UberDriverID:   "u-1",
		FirstName:      "Maria",
		LastName:       "Lopez",
		Phone:          "+15550001111",
		AcceptanceRate: 0.55,
		FeedbackScore:  3.2,
		IdleRatio:      0.7,
	}))

	events := &fakeEventRepo{}
	rules := &fakeRuleRepo{}
	provider := &fakeProvider{}

	svc := NewAlertService(
		rules, events, &fakeTemplateRepo{}, drivers,
		testCatalog(), provider, "+15559990000",
		websocket.NewHub(), testLogger(t),
	)

	return &alertFixture{svc: svc, drivers: drivers, events: events, rules: rules, provider: provider}
}

func TestPreviewFallsBackThroughCatalog(t *testing.T) {
	f := newAlertFixture(t)

	preview, err := f.svc.Preview(context.Background(), &validators.PreviewAlertRequest{
		DriverID: "local-u-1",
		Reason:   "poor_performance",
		Language: "xx",
		Channel:  "sms",
	})
	require.NoError(t, err)

	// Unsupported language resolves to the English template with the
	// driver name substituted.
	assert.Equal(t, "en neutral poor performance for Maria Lopez", preview.Message)
	assert.Equal(t, "xx", preview.Language)
	assert.Equal(t, "neutral", preview.Tone)
}

func TestPreviewUnknownReasonUsesToneDefault(t *testing.T) {
	f := newAlertFixture(t)

	preview, err := f.svc.Preview(context.Background(), &validators.PreviewAlertRequest{
		DriverID: "local-u-1",
		Reason:   "mystery_reason",
		Channel:  "call",
	})
	require.NoError(t, err)
	assert.Equal(t, "en neutral default for mystery reason", preview.Message)
}

func TestDispatchSMSRecordsDeliveredEvent(t *testing.T) {
	f := newAlertFixture(t)

	event, err := f.svc.Dispatch(context.Background(), &validators.DispatchAlertRequest{
		DriverID: "local-u-1",
		Reason:   "poor_performance",
		Channel:  "sms",
		Severity: "warning",
	})
	require.NoError(t, err)

	assert.True(t, event.Delivered)
	assert.Empty(t, event.Error)
	require.Len(t, f.provider.smsSent, 1)
	assert.Equal(t, "+15550001111", f.provider.smsSent[0].To)
	assert.Equal(t, "+15559990000", f.provider.smsSent[0].From)
	require.Len(t, f.events.created, 1)
}

func TestDispatchCallUsesVoiceChannel(t *testing.T) {
	f := newAlertFixture(t)

	event, err := f.svc.Dispatch(context.Background(), &validators.DispatchAlertRequest{
		DriverID: "local-u-1",
		Reason:   "poor_performance",
		Channel:  "call",
		Severity: "critical",
	})
	require.NoError(t, err)

	assert.True(t, event.Delivered)
	require.Len(t, f.provider.callsMade, 1)
	assert.Equal(t, "en neutral poor performance for Maria Lopez", f.provider.callsMade[0].Script)
}

func TestDispatchDeliveryFailureStillRecordsEvent(t *testing.T) {
	f := newAlertFixture(t)
	f.provider.failWith = errors.New("carrier rejected")

	event, err := f.svc.Dispatch(context.Background(), &validators.DispatchAlertRequest{
		DriverID: "local-u-1",
		Reason:   "poor_performance",
		Channel:  "sms",
		Severity: "warning",
	})
	require.Error(t, err)
	require.NotNil(t, event)

	assert.False(t, event.Delivered)
	assert.Contains(t, event.Error, "carrier rejected")
	require.Len(t, f.events.created, 1)
}

func TestEvaluateDriverMatchesRules(t *testing.T) {
	f := newAlertFixture(t)
	f.rules.enabled = []*models.AlertRule{
		{Name: "Low acceptance", Metric: "acceptance_rate", Operator: "lt", Threshold: 0.7, Reason: "low_acceptance", Enabled: true},
		{Name: "Poor feedback", Metric: "feedback_score", Operator: "lt", Threshold: 3.0, Reason: "poor_performance", Enabled: true},
		{Name: "Idle", Metric: "idle_ratio", Operator: "gt", Threshold: 0.6, Reason: "excessive_idle", Enabled: true},
	}

	triggered, err := f.svc.EvaluateDriver(context.Background(), "local-u-1")
	require.NoError(t, err)

	// acceptance 0.55 < 0.7 and idle 0.7 > 0.6 trigger; feedback 3.2 is
	// above the 3.0 threshold.
	require.Len(t, triggered, 2)
	assert.Equal(t, "Low acceptance", triggered[0].Rule.Name)
	assert.Equal(t, 0.55, triggered[0].MetricValue)
	assert.Equal(t, "Idle", triggered[1].Rule.Name)
}

func TestDispatchPrefersDatabaseTemplate(t *testing.T) {
	drivers := newFakeDriverRepo()
	require.NoError(t, drivers.Upsert(context.Background(), &models.Driver{
		UberDriverID: "u-1",
		FirstName:    "Maria",
		Phone:        "+15550001111",
	}))

	templates := &fakeTemplateRepo{templates: map[string]*models.NotificationTemplate{
		templateKey("sms", "en", "neutral", "poor_performance"): {
			Body: "DB template for {{driver_name}}",
		},
	}}
	events := &fakeEventRepo{}
	provider := &fakeProvider{}

	svc := NewAlertService(
		&fakeRuleRepo{}, events, templates, drivers,
		testCatalog(), provider, "+15559990000",
		websocket.NewHub(), testLogger(t),
	)

	event, err := svc.Dispatch(context.Background(), &validators.DispatchAlertRequest{
		DriverID: "local-u-1",
		Reason:   "poor_performance",
		Channel:  "sms",
		Severity: "warning",
	})
	require.NoError(t, err)
	assert.Equal(t, "DB template for Maria", event.Message)
}
