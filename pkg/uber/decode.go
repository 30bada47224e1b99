package uber

import (
	"encoding/json"
	"fmt"
	"time"
)

// FieldErrorKind classifies why a payload field was rejected.
type FieldErrorKind string

const (
	FieldMissing      FieldErrorKind = "missing"
	FieldWrongType    FieldErrorKind = "wrong_type"
	FieldInvalidValue FieldErrorKind = "invalid_value"
)

// ValidationError reports a single schema mismatch in a platform payload.
// Decoding is all-or-nothing: the first mismatch aborts the operation.
type ValidationError struct {
	Object string         `json:"object"`
	Field  string         `json:"field"`
	Kind   FieldErrorKind `json:"kind"`
	Detail string         `json:"detail,omitempty"`
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s payload: field %q %s", e.Object, e.Field, e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

type rawObject map[string]json.RawMessage

func parseObject(object string, data json.RawMessage) (rawObject, error) {
	var obj rawObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, &ValidationError{Object: object, Field: "(root)", Kind: FieldWrongType, Detail: "expected a JSON object"}
	}
	return obj, nil
}

func requiredString(object string, obj rawObject, field string) (string, error) {
	raw, ok := obj[field]
	if !ok {
		return "", &ValidationError{Object: object, Field: field, Kind: FieldMissing}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", &ValidationError{Object: object, Field: field, Kind: FieldWrongType, Detail: "expected string"}
	}
	return s, nil
}

func optionalString(object string, obj rawObject, field string) (string, error) {
	raw, ok := obj[field]
	if !ok || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", &ValidationError{Object: object, Field: field, Kind: FieldWrongType, Detail: "expected string"}
	}
	return s, nil
}

func requiredNumber(object string, obj rawObject, field string) (float64, error) {
	raw, ok := obj[field]
	if !ok {
		return 0, &ValidationError{Object: object, Field: field, Kind: FieldMissing}
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, &ValidationError{Object: object, Field: field, Kind: FieldWrongType, Detail: "expected number"}
	}
	return f, nil
}

func optionalNumber(object string, obj rawObject, field string) (*float64, error) {
	raw, ok := obj[field]
	if !ok || string(raw) == "null" {
		return nil, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, &ValidationError{Object: object, Field: field, Kind: FieldWrongType, Detail: "expected number"}
	}
	return &f, nil
}

func requiredInt(object string, obj rawObject, field string) (int, error) {
	f, err := requiredNumber(object, obj, field)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func requiredTime(object string, obj rawObject, field string) (time.Time, error) {
	s, err := requiredString(object, obj, field)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, &ValidationError{Object: object, Field: field, Kind: FieldInvalidValue, Detail: "expected RFC3339 timestamp"}
	}
	return t, nil
}

func optionalTime(object string, obj rawObject, field string) (*time.Time, error) {
	raw, ok := obj[field]
	if !ok || string(raw) == "null" {
		return nil, nil
	}
	t, err := requiredTime(object, obj, field)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func enumValue(object, field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &ValidationError{Object: object, Field: field, Kind: FieldInvalidValue, Detail: fmt.Sprintf("%q is not an accepted value", value)}
}

func decodeDriver(data json.RawMessage) (*Driver, error) {
	obj, err := parseObject("driver", data)
	if err != nil {
		return nil, err
	}

	d := &Driver{}
	if d.DriverID, err = requiredString("driver", obj, "driver_id"); err != nil {
		return nil, err
	}
	if d.FirstName, err = requiredString("driver", obj, "first_name"); err != nil {
		return nil, err
	}
	if d.LastName, err = requiredString("driver", obj, "last_name"); err != nil {
		return nil, err
	}
	if d.Email, err = requiredString("driver", obj, "email"); err != nil {
		return nil, err
	}
	if d.Phone, err = optionalString("driver", obj, "phone_number"); err != nil {
		return nil, err
	}
	if d.PhotoURL, err = optionalString("driver", obj, "photo_url"); err != nil {
		return nil, err
	}

	status, err := requiredString("driver", obj, "status")
	if err != nil {
		return nil, err
	}
	if err := enumValue("driver", "status", status,
		string(DriverStatusActive), string(DriverStatusInactive), string(DriverStatusSuspended)); err != nil {
		return nil, err
	}
	d.Status = DriverStatus(status)

	if d.CreatedAt, err = optionalTime("driver", obj, "created_at"); err != nil {
		return nil, err
	}
	if d.UpdatedAt, err = optionalTime("driver", obj, "updated_at"); err != nil {
		return nil, err
	}

	return d, nil
}

func decodeTrip(data json.RawMessage) (*Trip, error) {
	obj, err := parseObject("trip", data)
	if err != nil {
		return nil, err
	}

	t := &Trip{}
	if t.TripID, err = requiredString("trip", obj, "trip_id"); err != nil {
		return nil, err
	}
	if t.DriverID, err = requiredString("trip", obj, "driver_id"); err != nil {
		return nil, err
	}

	status, err := requiredString("trip", obj, "status")
	if err != nil {
		return nil, err
	}
	if err := enumValue("trip", "status", status,
		string(TripStatusCompleted), string(TripStatusCancelled), string(TripStatusInProgress)); err != nil {
		return nil, err
	}
	t.Status = TripStatus(status)

	fareRaw, ok := obj["fare"]
	if !ok {
		return nil, &ValidationError{Object: "trip", Field: "fare", Kind: FieldMissing}
	}
	fareObj, err := parseObject("trip.fare", fareRaw)
	if err != nil {
		return nil, err
	}
	if t.Fare.Amount, err = requiredNumber("trip.fare", fareObj, "amount"); err != nil {
		return nil, err
	}
	if t.Fare.Currency, err = requiredString("trip.fare", fareObj, "currency_code"); err != nil {
		return nil, err
	}

	if t.Rating, err = optionalNumber("trip", obj, "rating"); err != nil {
		return nil, err
	}
	if t.RequestTime, err = requiredTime("trip", obj, "request_time"); err != nil {
		return nil, err
	}
	if t.PickupTime, err = optionalTime("trip", obj, "pickup_time"); err != nil {
		return nil, err
	}
	if t.DropoffTime, err = optionalTime("trip", obj, "dropoff_time"); err != nil {
		return nil, err
	}

	return t, nil
}

func decodeMetrics(data json.RawMessage) (*Metrics, error) {
	obj, err := parseObject("metrics", data)
	if err != nil {
		return nil, err
	}

	m := &Metrics{}
	if m.DriverID, err = requiredString("metrics", obj, "driver_id"); err != nil {
		return nil, err
	}
	if m.TripsCompleted, err = requiredInt("metrics", obj, "trips_completed"); err != nil {
		return nil, err
	}
	if m.TripsCancelled, err = requiredInt("metrics", obj, "trips_cancelled"); err != nil {
		return nil, err
	}
	if m.TripsRequested, err = requiredInt("metrics", obj, "trips_requested"); err != nil {
		return nil, err
	}
	if m.AcceptanceRate, err = requiredNumber("metrics", obj, "acceptance_rate"); err != nil {
		return nil, err
	}
	if m.CancellationRate, err = requiredNumber("metrics", obj, "cancellation_rate"); err != nil {
		return nil, err
	}
	if m.CompletionRate, err = requiredNumber("metrics", obj, "completion_rate"); err != nil {
		return nil, err
	}
	if m.AverageRating, err = requiredNumber("metrics", obj, "average_rating"); err != nil {
		return nil, err
	}
	if m.OnlineHours, err = requiredNumber("metrics", obj, "online_hours"); err != nil {
		return nil, err
	}
	if m.ActiveHours, err = requiredNumber("metrics", obj, "active_hours"); err != nil {
		return nil, err
	}

	return m, nil
}

func decodeDriverDetails(data json.RawMessage) (*DriverDetails, error) {
	driver, err := decodeDriver(data)
	if err != nil {
		return nil, err
	}

	obj, err := parseObject("driver_details", data)
	if err != nil {
		return nil, err
	}

	d := &DriverDetails{Driver: *driver}
	if d.LicensePlate, err = optionalString("driver_details", obj, "license_plate"); err != nil {
		return nil, err
	}
	if d.VehicleMake, err = optionalString("driver_details", obj, "vehicle_make"); err != nil {
		return nil, err
	}
	if d.VehicleModel, err = optionalString("driver_details", obj, "vehicle_model"); err != nil {
		return nil, err
	}
	if d.PartnerStatus, err = optionalString("driver_details", obj, "partner_status"); err != nil {
		return nil, err
	}

	return d, nil
}

func decodeDriverList(data json.RawMessage) ([]Driver, error) {
	obj, err := parseObject("driver_list", data)
	if err != nil {
		return nil, err
	}

	raw, ok := obj["drivers"]
	if !ok {
		return nil, &ValidationError{Object: "driver_list", Field: "drivers", Kind: FieldMissing}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &ValidationError{Object: "driver_list", Field: "drivers", Kind: FieldWrongType, Detail: "expected array"}
	}

	drivers := make([]Driver, 0, len(items))
	for _, item := range items {
		d, err := decodeDriver(item)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, *d)
	}

	return drivers, nil
}

func decodeTripList(data json.RawMessage) ([]Trip, error) {
	obj, err := parseObject("trip_list", data)
	if err != nil {
		return nil, err
	}

	raw, ok := obj["trips"]
	if !ok {
		return nil, &ValidationError{Object: "trip_list", Field: "trips", Kind: FieldMissing}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &ValidationError{Object: "trip_list", Field: "trips", Kind: FieldWrongType, Detail: "expected array"}
	}

	trips := make([]Trip, 0, len(items))
	for _, item := range items {
		t, err := decodeTrip(item)
		if err != nil {
			return nil, err
		}
		trips = append(trips, *t)
	}

	return trips, nil
}

func decodeReport(data json.RawMessage) (*Report, error) {
	obj, err := parseObject("report", data)
	if err != nil {
		return nil, err
	}

	r := &Report{}
	if r.ReportID, err = requiredString("report", obj, "report_id"); err != nil {
		return nil, err
	}
	if r.ReportType, err = optionalString("report", obj, "report_type"); err != nil {
		return nil, err
	}

	status, err := requiredString("report", obj, "status")
	if err != nil {
		return nil, err
	}
	if err := enumValue("report", "status", status,
		string(ReportStatusPending), string(ReportStatusProcessing),
		string(ReportStatusCompleted), string(ReportStatusFailed)); err != nil {
		return nil, err
	}
	r.Status = ReportStatus(status)

	if r.DownloadURL, err = optionalString("report", obj, "download_url"); err != nil {
		return nil, err
	}
	if r.RequestedAt, err = optionalTime("report", obj, "requested_at"); err != nil {
		return nil, err
	}
	if r.CompletedAt, err = optionalTime("report", obj, "completed_at"); err != nil {
		return nil, err
	}

	return r, nil
}
