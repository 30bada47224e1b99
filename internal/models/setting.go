package models

import (
	"time"

	"gorm.io/datatypes"
)

// Setting is the key-value store for serialized operational state: sync
// status and sync history blobs live here.
type Setting struct {
	Key       string         `json:"key" gorm:"primaryKey"`
	Value     datatypes.JSON `json:"value" gorm:"type:jsonb"`
	UpdatedAt time.Time      `json:"updated_at"`
}

const (
	SettingSyncStatus  = "uber_sync_status"
	SettingSyncHistory = "uber_sync_history"

	// History keeps only the newest entries, most-recent-first.
	SyncHistoryLimit = 50
)

// SyncStatus is the serialized payload under SettingSyncStatus.
type SyncStatus struct {
	Configured    bool       `json:"configured"`
	LastSyncAt    *time.Time `json:"last_sync_at"`
	DriversSynced int        `json:"drivers_synced"`
	DriversFailed int        `json:"drivers_failed"`
	LastError     string     `json:"last_error,omitempty"`
}

// SyncHistoryEntry is one element of the SettingSyncHistory list.
type SyncHistoryEntry struct {
	DriverID    string    `json:"driver_id"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
	Success     bool      `json:"success"`
	TripCount   int       `json:"trip_count"`
	Error       string    `json:"error,omitempty"`
}
