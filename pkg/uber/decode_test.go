package uber

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDriverJSON = `{
	"driver_id": "d-100",
	"first_name": "Maya",
	"last_name": "Chen",
	"email": "maya.chen@example.com",
	"phone_number": "+15550100",
	"status": "active"
}`

func TestDecodeDriverValid(t *testing.T) {
	d, err := decodeDriver(json.RawMessage(validDriverJSON))
	require.NoError(t, err)

	assert.Equal(t, "d-100", d.DriverID)
	assert.Equal(t, DriverStatusActive, d.Status)
	assert.Equal(t, "Maya", d.FirstName)
}

func TestDecodeDriverMissingStatus(t *testing.T) {
	payload := `{"driver_id": "d-100", "first_name": "Maya", "last_name": "Chen", "email": "m@example.com"}`

	_, err := decodeDriver(json.RawMessage(payload))
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Field)
	assert.Equal(t, FieldMissing, verr.Kind)
}

func TestDecodeDriverWrongType(t *testing.T) {
	payload := `{"driver_id": 42, "first_name": "Maya", "last_name": "Chen", "email": "m@example.com", "status": "active"}`

	_, err := decodeDriver(json.RawMessage(payload))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "driver_id", verr.Field)
	assert.Equal(t, FieldWrongType, verr.Kind)
}

func TestDecodeDriverUnknownStatusValue(t *testing.T) {
	payload := `{"driver_id": "d-100", "first_name": "Maya", "last_name": "Chen", "email": "m@example.com", "status": "vacation"}`

	_, err := decodeDriver(json.RawMessage(payload))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Field)
	assert.Equal(t, FieldInvalidValue, verr.Kind)
}

func TestDecodeDriverListRejectsPartialData(t *testing.T) {
	// Second driver is malformed: the whole list is rejected, no partial
	// decode survives.
	payload := `{"drivers": [` + validDriverJSON + `, {"driver_id": "d-101", "first_name": "Omar", "last_name": "Diaz", "email": "o@example.com"}]}`

	drivers, err := decodeDriverList(json.RawMessage(payload))
	require.Error(t, err)
	assert.Nil(t, drivers)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Field)
}

func TestDecodeTripValid(t *testing.T) {
	payload := `{
		"trip_id": "t-1",
		"driver_id": "d-100",
		"status": "completed",
		"fare": {"amount": 18.75, "currency_code": "USD"},
		"rating": 4.5,
		"request_time": "2026-08-25T09:15:00Z",
		"pickup_time": "2026-08-25T09:20:00Z",
		"dropoff_time": "2026-08-25T09:50:00Z"
	}`

	trip, err := decodeTrip(json.RawMessage(payload))
	require.NoError(t, err)

	assert.Equal(t, TripStatusCompleted, trip.Status)
	assert.Equal(t, 18.75, trip.Fare.Amount)
	require.NotNil(t, trip.Rating)
	assert.Equal(t, 4.5, *trip.Rating)
	require.NotNil(t, trip.PickupTime)
	require.NotNil(t, trip.DropoffTime)
}

func TestDecodeTripOptionalFieldsAbsent(t *testing.T) {
	payload := `{
		"trip_id": "t-2",
		"driver_id": "d-100",
		"status": "in_progress",
		"fare": {"amount": 0, "currency_code": "USD"},
		"request_time": "2026-08-25T09:15:00Z"
	}`

	trip, err := decodeTrip(json.RawMessage(payload))
	require.NoError(t, err)

	assert.Nil(t, trip.Rating)
	assert.Nil(t, trip.PickupTime)
	assert.Nil(t, trip.DropoffTime)
}

func TestDecodeTripBadStatusEnum(t *testing.T) {
	payload := `{
		"trip_id": "t-3",
		"driver_id": "d-100",
		"status": "teleported",
		"fare": {"amount": 1, "currency_code": "USD"},
		"request_time": "2026-08-25T09:15:00Z"
	}`

	_, err := decodeTrip(json.RawMessage(payload))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, FieldInvalidValue, verr.Kind)
}

func TestDecodeTripBadTimestamp(t *testing.T) {
	payload := `{
		"trip_id": "t-4",
		"driver_id": "d-100",
		"status": "completed",
		"fare": {"amount": 1, "currency_code": "USD"},
		"request_time": "yesterday"
	}`

	_, err := decodeTrip(json.RawMessage(payload))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "request_time", verr.Field)
	assert.Equal(t, FieldInvalidValue, verr.Kind)
}

func TestDecodeMetricsMissingField(t *testing.T) {
	payload := `{
		"driver_id": "d-100",
		"trips_completed": 40,
		"trips_cancelled": 2,
		"trips_requested": 50,
		"acceptance_rate": 87,
		"cancellation_rate": 4,
		"completion_rate": 95,
		"average_rating": 4.8,
		"online_hours": 30
	}`

	_, err := decodeMetrics(json.RawMessage(payload))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "active_hours", verr.Field)
	assert.Equal(t, FieldMissing, verr.Kind)
}

func TestDecodeReportStatusEnum(t *testing.T) {
	payload := `{"report_id": "r-1", "status": "exploded"}`

	_, err := decodeReport(json.RawMessage(payload))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, FieldInvalidValue, verr.Kind)
}
