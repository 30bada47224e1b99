package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleetpulse/internal/models"
	"fleetpulse/internal/repositories/interfaces"
	"fleetpulse/internal/utils"
	"fleetpulse/pkg/logger"
	"fleetpulse/pkg/uber"
	"fleetpulse/pkg/websocket"
)

// ErrSyncNotConfigured is surfaced when the platform client has no
// credentials. The sync surface reports unconfigured instead of failing.
var ErrSyncNotConfigured = errors.New("uber integration not configured")

type SyncService interface {
	SyncDriver(ctx context.Context, driverID string) (*SyncResult, error)
	SyncAll(ctx context.Context) (*SyncAllResult, error)
	Status(ctx context.Context) (*SyncStatusResponse, error)
}

type syncService struct {
	api          uber.FleetAPI
	driverRepo   interfaces.DriverRepository
	metricsRepo  interfaces.MetricsRepository
	settingsRepo interfaces.SettingsRepository
	hub          *websocket.Hub
	windowDays   int
	logger       *logger.Logger
}

func NewSyncService(
	api uber.FleetAPI,
	driverRepo interfaces.DriverRepository,
	metricsRepo interfaces.MetricsRepository,
	settingsRepo interfaces.SettingsRepository,
	hub *websocket.Hub,
	windowDays int,
	logger *logger.Logger,
) SyncService {
	if windowDays <= 0 {
		windowDays = utils.DefaultSyncWindowDays
	}
	return &syncService{
		api:          api,
		driverRepo:   driverRepo,
		metricsRepo:  metricsRepo,
		settingsRepo: settingsRepo,
		hub:          hub,
		windowDays:   windowDays,
		logger:       logger,
	}
}

type SyncResult struct {
	DriverID  string                `json:"driver_id"`
	TripCount int                   `json:"trip_count"`
	Summary   *uber.ActivitySummary `json:"summary"`
	SyncedAt  time.Time             `json:"synced_at"`
}

type SyncAllResult struct {
	DriversSynced int      `json:"drivers_synced"`
	DriversFailed int      `json:"drivers_failed"`
	Failures      []string `json:"failures,omitempty"`
	CompletedAt   time.Time `json:"completed_at"`
}

type SyncStatusResponse struct {
	Status  models.SyncStatus         `json:"status"`
	History []models.SyncHistoryEntry `json:"history"`
}

// SyncDriver refreshes one driver's mirrored profile and performance
// snapshot from the platform.
func (s *syncService) SyncDriver(ctx context.Context, driverID string) (*SyncResult, error) {
	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	startedAt := time.Now()
	s.hub.PublishFleetEvent(websocket.EventSyncStarted, driver.ID, map[string]interface{}{
		"uber_driver_id": driver.UberDriverID,
	})

	result, err := s.syncOne(ctx, driver)
	entry := models.SyncHistoryEntry{
		DriverID:    driver.ID,
		StartedAt:   startedAt,
		CompletedAt: time.Now(),
		Success:     err == nil,
	}

	if err != nil {
		entry.Error = err.Error()
		s.appendHistory(ctx, entry)
		s.recordStatus(ctx, &models.SyncStatus{
			Configured:    !errors.Is(err, uber.ErrNotConfigured),
			DriversFailed: 1,
			LastError:     err.Error(),
		})
		s.hub.PublishFleetEvent(websocket.EventSyncFailed, driver.ID, map[string]interface{}{
			"error": err.Error(),
		})
		if errors.Is(err, uber.ErrNotConfigured) {
			return nil, ErrSyncNotConfigured
		}
		return nil, err
	}

	entry.TripCount = result.TripCount
	s.appendHistory(ctx, entry)
	s.recordStatus(ctx, &models.SyncStatus{
		Configured:    true,
		LastSyncAt:    &entry.CompletedAt,
		DriversSynced: 1,
	})
	s.hub.PublishFleetEvent(websocket.EventSyncCompleted, driver.ID, map[string]interface{}{
		"trip_count": result.TripCount,
	})

	return result, nil
}

func (s *syncService) syncOne(ctx context.Context, driver *models.Driver) (*SyncResult, error) {
	summary, err := uber.BuildActivitySummary(ctx, s.api, driver.UberDriverID, s.windowDays)
	if err != nil {
		return nil, err
	}

	details, err := s.api.GetDriverDetails(ctx, driver.UberDriverID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"first_name":        details.FirstName,
		"last_name":         details.LastName,
		"email":             details.Email,
		"phone":             details.Phone,
		"photo_url":         details.PhotoURL,
		"status":            string(details.Status),
		"acceptance_rate":   summary.Performance.AcceptanceRate,
		"cancellation_rate": summary.Performance.CancellationRate,
		"completion_rate":   summary.Performance.CompletionRate,
		"feedback_score":    summary.Performance.FeedbackScore,
		"trip_volume_index": summary.Performance.TripVolumeIndex,
		"idle_ratio":        summary.Performance.IdleRatio,
		"total_trips":       summary.TripCount,
		"total_earnings":    summary.TotalEarnings,
		"currency":          summary.Currency,
		"peak_hours":        summary.PeakHours,
		"avg_trip_time":     summary.AvgTripTime,
		"last_activity_at":  summary.LastActivityDate,
		"synced_at":         now,
	}
	if err := s.driverRepo.Update(ctx, driver.ID, updates); err != nil {
		return nil, err
	}

	// Record the window rollup under today's date so the metrics table
	// accumulates one row per sync day.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	metric := &models.DailyMetric{
		DriverID:       driver.ID,
		Date:           today,
		TripsCompleted: summary.CompletedTrips,
		TripsCancelled: summary.CancelledTrips,
		TripsRequested: summary.TripCount,
		AcceptanceRate: summary.Performance.AcceptanceRate * 100,
		CancellationRate: summary.Performance.CancellationRate * 100,
		CompletionRate: summary.Performance.CompletionRate * 100,
		AverageRating:  summary.Performance.FeedbackScore,
		OnlineHours:    summary.OnlineHours,
		ActiveHours:    summary.ActiveHours,
	}
	if err := s.metricsRepo.Upsert(ctx, metric); err != nil {
		return nil, err
	}

	s.logger.LogSyncEvent(driver.ID, "driver_synced", map[string]interface{}{
		"trip_count": summary.TripCount,
	})

	return &SyncResult{
		DriverID:  driver.ID,
		TripCount: summary.TripCount,
		Summary:   summary,
		SyncedAt:  now,
	}, nil
}

// SyncAll imports the platform's driver roster and refreshes every
// driver. One driver's failure does not abort the rest.
func (s *syncService) SyncAll(ctx context.Context) (*SyncAllResult, error) {
	remote, err := s.api.ListDrivers(ctx)
	if err != nil {
		s.recordStatus(ctx, &models.SyncStatus{
			Configured: !errors.Is(err, uber.ErrNotConfigured),
			LastError:  err.Error(),
		})
		if errors.Is(err, uber.ErrNotConfigured) {
			return nil, ErrSyncNotConfigured
		}
		return nil, fmt.Errorf("failed to list platform drivers: %w", err)
	}

	result := &SyncAllResult{}
	for _, rd := range remote {
		driver, err := s.upsertProfile(ctx, rd)
		if err == nil {
			_, err = s.syncOne(ctx, driver)
		}
		if err != nil {
			result.DriversFailed++
			result.Failures = append(result.Failures, fmt.Sprintf("%s: %v", rd.DriverID, err))
			s.logger.WithField("uber_driver_id", rd.DriverID).WithError(err).Warn("Driver sync failed")
			continue
		}
		result.DriversSynced++
	}

	result.CompletedAt = time.Now()

	status := &models.SyncStatus{
		Configured:    true,
		LastSyncAt:    &result.CompletedAt,
		DriversSynced: result.DriversSynced,
		DriversFailed: result.DriversFailed,
	}
	if result.DriversFailed > 0 {
		status.LastError = result.Failures[0]
	}
	s.recordStatus(ctx, status)

	s.hub.PublishFleetEvent(websocket.EventSyncCompleted, "", map[string]interface{}{
		"drivers_synced": result.DriversSynced,
		"drivers_failed": result.DriversFailed,
	})

	return result, nil
}

func (s *syncService) upsertProfile(ctx context.Context, rd uber.Driver) (*models.Driver, error) {
	driver := &models.Driver{
		UberDriverID: rd.DriverID,
		FirstName:    rd.FirstName,
		LastName:     rd.LastName,
		Email:        rd.Email,
		Phone:        rd.Phone,
		PhotoURL:     rd.PhotoURL,
		Status:       models.DriverStatus(rd.Status),
	}
	if err := s.driverRepo.Upsert(ctx, driver); err != nil {
		return nil, err
	}
	return s.driverRepo.GetByUberID(ctx, rd.DriverID)
}

func (s *syncService) Status(ctx context.Context) (*SyncStatusResponse, error) {
	resp := &SyncStatusResponse{
		History: []models.SyncHistoryEntry{},
	}

	err := s.settingsRepo.Get(ctx, models.SettingSyncStatus, &resp.Status)
	if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		return nil, err
	}

	err = s.settingsRepo.Get(ctx, models.SettingSyncHistory, &resp.History)
	if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		return nil, err
	}

	return resp, nil
}

func (s *syncService) recordStatus(ctx context.Context, status *models.SyncStatus) {
	if err := s.settingsRepo.Put(ctx, models.SettingSyncStatus, status); err != nil {
		s.logger.WithError(err).Warn("Failed to record sync status")
	}
}

// appendHistory prepends the entry and trims the list to the newest
// entries only.
func (s *syncService) appendHistory(ctx context.Context, entry models.SyncHistoryEntry) {
	var history []models.SyncHistoryEntry
	err := s.settingsRepo.Get(ctx, models.SettingSyncHistory, &history)
	if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		s.logger.WithError(err).Warn("Failed to load sync history")
		return
	}

	history = append([]models.SyncHistoryEntry{entry}, history...)
	if len(history) > models.SyncHistoryLimit {
		history = history[:models.SyncHistoryLimit]
	}

	if err := s.settingsRepo.Put(ctx, models.SettingSyncHistory, history); err != nil {
		s.logger.WithError(err).Warn("Failed to save sync history")
	}
}
