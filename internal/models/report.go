package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report tracks an offline report generated by the platform. Status is
// refreshed by polling on read until it reaches a terminal state.
type Report struct {
	ID           string     `json:"id" gorm:"type:uuid;primaryKey"`
	UberReportID string     `json:"uber_report_id" gorm:"uniqueIndex;not null"`
	ReportType   string     `json:"report_type"`
	Status       string     `json:"status" gorm:"type:varchar(20);default:'pending'"`
	DownloadURL  string     `json:"download_url"`
	RequestedBy  string     `json:"requested_by" gorm:"type:uuid"`
	StartDate    time.Time  `json:"start_date" gorm:"type:date"`
	EndDate      time.Time  `json:"end_date" gorm:"type:date"`
	CompletedAt  *time.Time `json:"completed_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r *Report) Terminal() bool {
	return r.Status == "completed" || r.Status == "failed"
}
