package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlertSeverity string
type AlertChannel string

const (
	AlertSeverityInfo     AlertSeverity = "info"
	AlertSeverityWarning  AlertSeverity = "warning"
	AlertSeverityCritical AlertSeverity = "critical"

	AlertChannelCall AlertChannel = "call"
	AlertChannelSMS  AlertChannel = "sms"
)

// AlertRule compares one derived performance metric against a threshold.
type AlertRule struct {
	ID        string        `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string        `json:"name" gorm:"not null"`
	Metric    string        `json:"metric" gorm:"not null"` // acceptance_rate, cancellation_rate, completion_rate, feedback_score, idle_ratio
	Operator  string        `json:"operator" gorm:"type:varchar(2);not null"` // lt, gt, lte, gte
	Threshold float64       `json:"threshold"`
	Reason    string        `json:"reason" gorm:"not null"` // template reason key
	Severity  AlertSeverity `json:"severity" gorm:"type:varchar(20);default:'warning'"`
	Enabled   bool          `json:"enabled" gorm:"default:true"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (r *AlertRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Matches evaluates the rule against a metric value.
func (r *AlertRule) Matches(value float64) bool {
	switch r.Operator {
	case "lt":
		return value < r.Threshold
	case "lte":
		return value <= r.Threshold
	case "gt":
		return value > r.Threshold
	case "gte":
		return value >= r.Threshold
	default:
		return false
	}
}

// AlertEvent records one dispatched (or previewed) alert.
type AlertEvent struct {
	ID        string        `json:"id" gorm:"type:uuid;primaryKey"`
	DriverID  string        `json:"driver_id" gorm:"type:uuid;index;not null"`
	RuleID    *string       `json:"rule_id" gorm:"type:uuid"`
	Reason    string        `json:"reason"`
	Tone      string        `json:"tone"`
	Language  string        `json:"language"`
	Channel   AlertChannel  `json:"channel" gorm:"type:varchar(10)"`
	Severity  AlertSeverity `json:"severity" gorm:"type:varchar(20)"`
	Message   string        `json:"message"`
	Delivered bool          `json:"delivered"`
	Error     string        `json:"error,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

func (e *AlertEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// NotificationTemplate is a database-managed message body, used for SMS
// notifications. Call scripts come from the versioned JSON catalog.
type NotificationTemplate struct {
	ID        string       `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string       `json:"name" gorm:"uniqueIndex;not null"`
	Channel   AlertChannel `json:"channel" gorm:"type:varchar(10);default:'sms'"`
	Language  string       `json:"language" gorm:"type:varchar(8);default:'en'"`
	Tone      string       `json:"tone" gorm:"type:varchar(20);default:'neutral'"`
	Reason    string       `json:"reason"`
	Body      string       `json:"body" gorm:"not null"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (t *NotificationTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
