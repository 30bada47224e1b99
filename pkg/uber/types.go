package uber

import "time"

type DriverStatus string
type TripStatus string

const (
	DriverStatusActive    DriverStatus = "active"
	DriverStatusInactive  DriverStatus = "inactive"
	DriverStatusSuspended DriverStatus = "suspended"

	TripStatusCompleted  TripStatus = "completed"
	TripStatusCancelled  TripStatus = "cancelled"
	TripStatusInProgress TripStatus = "in_progress"
)

// Driver is a fleet driver as reported by the platform.
type Driver struct {
	DriverID  string       `json:"driver_id"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone_number"`
	PhotoURL  string       `json:"photo_url,omitempty"`
	Status    DriverStatus `json:"status"`
	CreatedAt *time.Time   `json:"created_at,omitempty"`
	UpdatedAt *time.Time   `json:"updated_at,omitempty"`
}

type Fare struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency_code"`
}

// Trip is immutable once fetched; it is consumed by derivation only and
// never persisted verbatim.
type Trip struct {
	TripID      string     `json:"trip_id"`
	DriverID    string     `json:"driver_id"`
	Status      TripStatus `json:"status"`
	Fare        Fare       `json:"fare"`
	Rating      *float64   `json:"rating,omitempty"`
	RequestTime time.Time  `json:"request_time"`
	PickupTime  *time.Time `json:"pickup_time,omitempty"`
	DropoffTime *time.Time `json:"dropoff_time,omitempty"`
}

// Metrics is the platform's rollup for a driver over a reporting window.
// Rate fields are percentages in [0,100] on the wire.
type Metrics struct {
	DriverID         string  `json:"driver_id"`
	TripsCompleted   int     `json:"trips_completed"`
	TripsCancelled   int     `json:"trips_cancelled"`
	TripsRequested   int     `json:"trips_requested"`
	AcceptanceRate   float64 `json:"acceptance_rate"`
	CancellationRate float64 `json:"cancellation_rate"`
	CompletionRate   float64 `json:"completion_rate"`
	AverageRating    float64 `json:"average_rating"`
	OnlineHours      float64 `json:"online_hours"`
	ActiveHours      float64 `json:"active_hours"`
}

type DriverDetails struct {
	Driver
	LicensePlate  string `json:"license_plate,omitempty"`
	VehicleMake   string `json:"vehicle_make,omitempty"`
	VehicleModel  string `json:"vehicle_model,omitempty"`
	PartnerStatus string `json:"partner_status,omitempty"`
}

// Performance is the normalized indicator set derived from one Metrics
// record and a trip list. All rates are in [0,1].
type Performance struct {
	AcceptanceRate   float64 `json:"acceptance_rate"`
	CancellationRate float64 `json:"cancellation_rate"`
	CompletionRate   float64 `json:"completion_rate"`
	FeedbackScore    float64 `json:"feedback_score"`
	TripVolumeIndex  float64 `json:"trip_volume_index"`
	IdleRatio        float64 `json:"idle_ratio"`
}

// ActivitySummary is the per-driver rollup over a trailing window. It is
// recomputed on every call and persisted only by the sync layer.
type ActivitySummary struct {
	DriverID         string      `json:"driver_id"`
	Period           string      `json:"period"`
	Performance      Performance `json:"performance"`
	TripCount        int         `json:"trip_count"`
	CompletedTrips   int         `json:"completed_trips"`
	CancelledTrips   int         `json:"cancelled_trips"`
	TotalEarnings    float64     `json:"total_earnings"`
	Currency         string      `json:"currency"`
	AvgTripTime      int         `json:"avg_trip_time_minutes"`
	OnlineHours      float64     `json:"online_hours"`
	ActiveHours      float64     `json:"active_hours"`
	PeakHours        int         `json:"peak_hours"`
	LastActivityDate *time.Time  `json:"last_activity_date"`
}

type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "pending"
	ReportStatusProcessing ReportStatus = "processing"
	ReportStatusCompleted  ReportStatus = "completed"
	ReportStatusFailed     ReportStatus = "failed"
)

type ReportRequest struct {
	ReportType string    `json:"report_type"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
}

type Report struct {
	ReportID    string       `json:"report_id"`
	ReportType  string       `json:"report_type"`
	Status      ReportStatus `json:"status"`
	DownloadURL string       `json:"download_url,omitempty"`
	RequestedAt *time.Time   `json:"requested_at,omitempty"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}
