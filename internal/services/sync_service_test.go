package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetpulse/internal/models"
	"fleetpulse/internal/repositories/interfaces"
	"fleetpulse/pkg/logger"
	"fleetpulse/pkg/uber"
	"fleetpulse/pkg/websocket"
)

type fakeSettingsRepo struct {
	data map[string][]byte
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{data: make(map[string][]byte)}
}

func (r *fakeSettingsRepo) Get(ctx context.Context, key string, out interface{}) error {
	raw, ok := r.data[key]
	if !ok {
		return interfaces.ErrNotFound
	}
	return json.Unmarshal(raw, out)
}

func (r *fakeSettingsRepo) Put(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.data[key] = raw
	return nil
}

func (r *fakeSettingsRepo) Delete(ctx context.Context, key string) error {
	delete(r.data, key)
	return nil
}

type fakeDriverRepo struct {
	interfaces.DriverRepository
	drivers map[string]*models.Driver // keyed by uber driver id
	updates map[string]int
	failFor map[string]error
}

func newFakeDriverRepo() *fakeDriverRepo {
	return &fakeDriverRepo{
		drivers: make(map[string]*models.Driver),
		updates: make(map[string]int),
		failFor: make(map[string]error),
	}
}

func (r *fakeDriverRepo) Upsert(ctx context.Context, driver *models.Driver) error {
	if err := r.failFor[driver.UberDriverID]; err != nil {
		return err
	}
	existing, ok := r.drivers[driver.UberDriverID]
	if ok {
		driver.ID = existing.ID
	} else if driver.ID == "" {
		driver.ID = "local-" + driver.UberDriverID
	}
	r.drivers[driver.UberDriverID] = driver
	return nil
}

func (r *fakeDriverRepo) GetByUberID(ctx context.Context, uberDriverID string) (*models.Driver, error) {
	d, ok := r.drivers[uberDriverID]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return d, nil
}

func (r *fakeDriverRepo) GetByID(ctx context.Context, id string) (*models.Driver, error) {
	for _, d := range r.drivers {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakeDriverRepo) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	r.updates[id]++
	return nil
}

type fakeMetricsRepo struct {
	interfaces.MetricsRepository
	upserted []*models.DailyMetric
}

func (r *fakeMetricsRepo) Upsert(ctx context.Context, metric *models.DailyMetric) error {
	r.upserted = append(r.upserted, metric)
	return nil
}

type fakeSyncAPI struct {
	drivers     []uber.Driver
	listErr     error
	detailsErr  map[string]error
	metricsErr  map[string]error
	tripsByID   map[string][]uber.Trip
	metricsByID map[string]*uber.Metrics
}

func (f *fakeSyncAPI) ListDrivers(ctx context.Context) ([]uber.Driver, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.drivers, nil
}

func (f *fakeSyncAPI) GetDriverDetails(ctx context.Context, driverID string) (*uber.DriverDetails, error) {
	if err := f.detailsErr[driverID]; err != nil {
		return nil, err
	}
	for _, d := range f.drivers {
		if d.DriverID == driverID {
			return &uber.DriverDetails{Driver: d}, nil
		}
	}
	return &uber.DriverDetails{Driver: uber.Driver{DriverID: driverID, Status: uber.DriverStatusActive}}, nil
}

func (f *fakeSyncAPI) GetDriverMetrics(ctx context.Context, driverID string, start, end time.Time) (*uber.Metrics, error) {
	if err := f.metricsErr[driverID]; err != nil {
		return nil, err
	}
	if m, ok := f.metricsByID[driverID]; ok {
		return m, nil
	}
	return &uber.Metrics{DriverID: driverID, AcceptanceRate: 90, CompletionRate: 95, OnlineHours: 10, ActiveHours: 8}, nil
}

func (f *fakeSyncAPI) GetDriverTrips(ctx context.Context, driverID string, start, end time.Time) ([]uber.Trip, error) {
	return f.tripsByID[driverID], nil
}

func (f *fakeSyncAPI) GenerateReport(ctx context.Context, req *uber.ReportRequest) (*uber.Report, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeSyncAPI) GetReportStatus(ctx context.Context, reportID string) (*uber.Report, error) {
	return nil, errors.New("not implemented")
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text"})
	require.NoError(t, err)
	return log
}

func newTestSyncService(t *testing.T, api uber.FleetAPI, drivers *fakeDriverRepo, settings *fakeSettingsRepo) *syncService {
	t.Helper()
	svc := NewSyncService(api, drivers, &fakeMetricsRepo{}, settings, websocket.NewHub(), 7, testLogger(t))
	return svc.(*syncService)
}

func TestSyncHistoryCappedAtLimit(t *testing.T) {
	settings := newFakeSettingsRepo()
	svc := newTestSyncService(t, &fakeSyncAPI{}, newFakeDriverRepo(), settings)

	for i := 0; i < models.SyncHistoryLimit+20; i++ {
		svc.appendHistory(context.Background(), models.SyncHistoryEntry{
			DriverID:  fmt.Sprintf("driver-%d", i),
			StartedAt: time.Now(),
			Success:   true,
		})
	}

	var history []models.SyncHistoryEntry
	require.NoError(t, settings.Get(context.Background(), models.SettingSyncHistory, &history))
	assert.Len(t, history, models.SyncHistoryLimit)

	// Newest entry first, oldest entries dropped.
	assert.Equal(t, fmt.Sprintf("driver-%d", models.SyncHistoryLimit+19), history[0].DriverID)
	assert.Equal(t, "driver-20", history[len(history)-1].DriverID)
}

func TestSyncAllToleratesPerDriverFailure(t *testing.T) {
	api := &fakeSyncAPI{
		drivers: []uber.Driver{
			{DriverID: "u-1", FirstName: "Ana", Status: uber.DriverStatusActive},
			{DriverID: "u-2", FirstName: "Ben", Status: uber.DriverStatusActive},
			{DriverID: "u-3", FirstName: "Cleo", Status: uber.DriverStatusActive},
		},
		metricsErr: map[string]error{"u-2": errors.New("metrics unavailable")},
	}
	drivers := newFakeDriverRepo()
	settings := newFakeSettingsRepo()
	svc := newTestSyncService(t, api, drivers, settings)

	result, err := svc.SyncAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.DriversSynced)
	assert.Equal(t, 1, result.DriversFailed)
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0], "u-2")

	var status models.SyncStatus
	require.NoError(t, settings.Get(context.Background(), models.SettingSyncStatus, &status))
	assert.True(t, status.Configured)
	assert.Equal(t, 2, status.DriversSynced)
	assert.Equal(t, 1, status.DriversFailed)
	require.NotNil(t, status.LastSyncAt)
}

func TestSyncAllUnconfiguredClient(t *testing.T) {
	api := &fakeSyncAPI{listErr: uber.ErrNotConfigured}
	svc := newTestSyncService(t, api, newFakeDriverRepo(), newFakeSettingsRepo())

	_, err := svc.SyncAll(context.Background())
	assert.ErrorIs(t, err, ErrSyncNotConfigured)
}

func TestSyncDriverRecordsHistory(t *testing.T) {
	api := &fakeSyncAPI{
		drivers: []uber.Driver{{DriverID: "u-9", FirstName: "Dana", Status: uber.DriverStatusActive}},
		tripsByID: map[string][]uber.Trip{
			"u-9": {
				{TripID: "t-1", Status: uber.TripStatusCompleted, Fare: uber.Fare{Amount: 20, Currency: "USD"}, RequestTime: time.Now().Add(-time.Hour)},
			},
		},
	}
	drivers := newFakeDriverRepo()
	require.NoError(t, drivers.Upsert(context.Background(), &models.Driver{UberDriverID: "u-9"}))

	settings := newFakeSettingsRepo()
	svc := newTestSyncService(t, api, drivers, settings)

	result, err := svc.SyncDriver(context.Background(), "local-u-9")
	require.NoError(t, err)
	assert.Equal(t, 1, result.TripCount)

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	require.Len(t, status.History, 1)
	assert.True(t, status.History[0].Success)
	assert.Equal(t, 1, status.History[0].TripCount)

	// A single-driver sync refreshes the status blob too, so the status
	// endpoint reflects the latest run rather than the last fleet sync.
	assert.True(t, status.Status.Configured)
	assert.Equal(t, 1, status.Status.DriversSynced)
	require.NotNil(t, status.Status.LastSyncAt)
	assert.Equal(t, status.History[0].CompletedAt.Unix(), status.Status.LastSyncAt.Unix())
}

func TestSyncDriverFailureRecordsStatusError(t *testing.T) {
	api := &fakeSyncAPI{
		metricsErr: map[string]error{"u-9": errors.New("metrics unavailable")},
	}
	drivers := newFakeDriverRepo()
	require.NoError(t, drivers.Upsert(context.Background(), &models.Driver{UberDriverID: "u-9"}))

	svc := newTestSyncService(t, api, drivers, newFakeSettingsRepo())

	_, err := svc.SyncDriver(context.Background(), "local-u-9")
	require.Error(t, err)

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, status.Status.DriversFailed)
	assert.Contains(t, status.Status.LastError, "metrics unavailable")
}

func TestStatusEmptyWhenNeverSynced(t *testing.T) {
	svc := newTestSyncService(t, &fakeSyncAPI{}, newFakeDriverRepo(), newFakeSettingsRepo())

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Empty(t, status.History)
	assert.Nil(t, status.Status.LastSyncAt)
}
