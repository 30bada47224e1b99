package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyMetric stores the platform's per-day counters for a driver. Rates
// keep the platform's 0-100 percentage representation; normalization to
// [0,1] happens only in derived performance.
type DailyMetric struct {
	ID       string    `json:"id" gorm:"type:uuid;primaryKey"`
	DriverID string    `json:"driver_id" gorm:"type:uuid;index:idx_driver_date,unique;not null"`
	Date     time.Time `json:"date" gorm:"type:date;index:idx_driver_date,unique;not null"`

	TripsCompleted   int     `json:"trips_completed"`
	TripsCancelled   int     `json:"trips_cancelled"`
	TripsRequested   int     `json:"trips_requested"`
	AcceptanceRate   float64 `json:"acceptance_rate"`
	CancellationRate float64 `json:"cancellation_rate"`
	CompletionRate   float64 `json:"completion_rate"`
	AverageRating    float64 `json:"average_rating"`
	OnlineHours      float64 `json:"online_hours"`
	ActiveHours      float64 `json:"active_hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *DailyMetric) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
