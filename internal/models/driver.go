package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DriverStatus string

const (
	DriverStatusActive    DriverStatus = "active"
	DriverStatusInactive  DriverStatus = "inactive"
	DriverStatusSuspended DriverStatus = "suspended"
)

// Driver mirrors a platform driver locally. The platform owns the record;
// sync refreshes the profile and the denormalized performance snapshot.
type Driver struct {
	ID           string       `json:"id" gorm:"type:uuid;primaryKey"`
	UberDriverID string       `json:"uber_driver_id" gorm:"uniqueIndex;not null"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Email        string       `json:"email" gorm:"index"`
	Phone        string       `json:"phone"`
	PhotoURL     string       `json:"photo_url"`
	Status       DriverStatus `json:"status" gorm:"type:varchar(20);default:'active';index"`

	// Latest derived performance snapshot, rates in [0,1].
	AcceptanceRate   float64 `json:"acceptance_rate"`
	CancellationRate float64 `json:"cancellation_rate"`
	CompletionRate   float64 `json:"completion_rate"`
	FeedbackScore    float64 `json:"feedback_score"`
	TripVolumeIndex  float64 `json:"trip_volume_index"`
	IdleRatio        float64 `json:"idle_ratio"`

	TotalTrips     int        `json:"total_trips"`
	TotalEarnings  float64    `json:"total_earnings"`
	Currency       string     `json:"currency" gorm:"type:varchar(3);default:'USD'"`
	PeakHours      int        `json:"peak_hours"`
	AvgTripTime    int        `json:"avg_trip_time_minutes"`
	LastActivityAt *time.Time `json:"last_activity_at"`

	SyncedAt  *time.Time `json:"synced_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (d *Driver) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

func (d *Driver) FullName() string {
	if d.FirstName == "" {
		return d.LastName
	}
	if d.LastName == "" {
		return d.FirstName
	}
	return d.FirstName + " " + d.LastName
}

// FleetSummary is the dashboard rollup across all mirrored drivers.
type FleetSummary struct {
	TotalDrivers     int64   `json:"total_drivers"`
	ActiveDrivers    int64   `json:"active_drivers"`
	InactiveDrivers  int64   `json:"inactive_drivers"`
	SuspendedDrivers int64   `json:"suspended_drivers"`
	AvgFeedbackScore float64 `json:"avg_feedback_score"`
	AvgAcceptance    float64 `json:"avg_acceptance_rate"`
	TotalEarnings    float64 `json:"total_earnings"`
	TotalTrips       int64   `json:"total_trips"`
}
