package uber

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFleetAPI struct {
	metrics    *Metrics
	trips      []Trip
	metricsErr error
	tripsErr   error
}

func (f *fakeFleetAPI) ListDrivers(ctx context.Context) ([]Driver, error) { return nil, nil }

func (f *fakeFleetAPI) GetDriverDetails(ctx context.Context, driverID string) (*DriverDetails, error) {
	return nil, nil
}

func (f *fakeFleetAPI) GetDriverMetrics(ctx context.Context, driverID string, start, end time.Time) (*Metrics, error) {
	if f.metricsErr != nil {
		return nil, f.metricsErr
	}
	return f.metrics, nil
}

func (f *fakeFleetAPI) GetDriverTrips(ctx context.Context, driverID string, start, end time.Time) ([]Trip, error) {
	if f.tripsErr != nil {
		return nil, f.tripsErr
	}
	return f.trips, nil
}

func (f *fakeFleetAPI) GenerateReport(ctx context.Context, req *ReportRequest) (*Report, error) {
	return nil, nil
}

func (f *fakeFleetAPI) GetReportStatus(ctx context.Context, reportID string) (*Report, error) {
	return nil, nil
}

func tsAt(day, hour int) time.Time {
	return time.Date(2026, 8, day, hour, 15, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time { return &t }

func TestBuildActivitySummaryEmptyTripList(t *testing.T) {
	api := &fakeFleetAPI{metrics: &Metrics{DriverID: "d1"}}

	summary, err := BuildActivitySummary(context.Background(), api, "d1", 7)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TripCount)
	assert.Equal(t, 0.0, summary.TotalEarnings)
	assert.Equal(t, 0, summary.AvgTripTime)
	assert.Equal(t, 0, summary.PeakHours)
	assert.Nil(t, summary.LastActivityDate)
}

func TestBuildActivitySummaryEarningsCountCompletedOnly(t *testing.T) {
	api := &fakeFleetAPI{
		metrics: &Metrics{DriverID: "d1"},
		trips: []Trip{
			{TripID: "t1", Status: TripStatusCompleted, Fare: Fare{Amount: 12.5, Currency: "USD"}, RequestTime: tsAt(25, 9)},
			{TripID: "t2", Status: TripStatusCancelled, Fare: Fare{Amount: 8, Currency: "USD"}, RequestTime: tsAt(25, 10)},
			{TripID: "t3", Status: TripStatusInProgress, Fare: Fare{Amount: 5, Currency: "USD"}, RequestTime: tsAt(25, 11)},
			{TripID: "t4", Status: TripStatusCompleted, Fare: Fare{Amount: 7.5, Currency: "USD"}, RequestTime: tsAt(25, 12)},
		},
	}

	summary, err := BuildActivitySummary(context.Background(), api, "d1", 7)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TripCount)
	assert.Equal(t, 2, summary.CompletedTrips)
	assert.Equal(t, 1, summary.CancelledTrips)
	assert.InDelta(t, 20.0, summary.TotalEarnings, 1e-9)
	assert.Equal(t, "USD", summary.Currency)
}

func TestBuildActivitySummaryLastActivityIsMostRecent(t *testing.T) {
	// Trips arrive in arbitrary order; the summary sorts by request time
	// before taking the most recent.
	api := &fakeFleetAPI{
		metrics: &Metrics{DriverID: "d1"},
		trips: []Trip{
			{TripID: "t1", Status: TripStatusCompleted, RequestTime: tsAt(20, 9)},
			{TripID: "t2", Status: TripStatusCompleted, RequestTime: tsAt(27, 18)},
			{TripID: "t3", Status: TripStatusCompleted, RequestTime: tsAt(23, 14)},
		},
	}

	summary, err := BuildActivitySummary(context.Background(), api, "d1", 7)
	require.NoError(t, err)

	require.NotNil(t, summary.LastActivityDate)
	assert.Equal(t, tsAt(27, 18), *summary.LastActivityDate)
}

func TestBuildActivitySummaryFailsWhenEitherFetchFails(t *testing.T) {
	api := &fakeFleetAPI{
		metrics:  &Metrics{DriverID: "d1"},
		tripsErr: errors.New("upstream timeout"),
	}

	_, err := BuildActivitySummary(context.Background(), api, "d1", 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch trips")
}

func TestAvgTripMinutesDividesByFullTripCount(t *testing.T) {
	// One 30-minute trip plus one trip without a dropoff: the malformed
	// trip adds nothing to the sum but stays in the denominator.
	trips := []Trip{
		{
			TripID:      "t1",
			PickupTime:  timePtr(tsAt(25, 9)),
			DropoffTime: timePtr(tsAt(25, 9).Add(30 * time.Minute)),
		},
		{
			TripID:     "t2",
			PickupTime: timePtr(tsAt(25, 10)),
		},
	}

	assert.Equal(t, 15, avgTripMinutes(trips))
}

func TestPeakHourCountUsesAllTwentyFourBuckets(t *testing.T) {
	// 6 trips: 4 at hour 8, 1 at hour 9, 1 at hour 17.
	// Mean = 6/24 = 0.25, so every non-empty bucket is above average.
	trips := []Trip{
		{RequestTime: tsAt(25, 8)},
		{RequestTime: tsAt(25, 8)},
		{RequestTime: tsAt(26, 8)},
		{RequestTime: tsAt(27, 8)},
		{RequestTime: tsAt(25, 9)},
		{RequestTime: tsAt(25, 17)},
	}

	assert.Equal(t, 3, peakHourCount(trips))
}

func TestPeakHourCountExcludesAtOrBelowMean(t *testing.T) {
	// 24 trips spread one-per-hour: every bucket sits exactly at the mean
	// of 1, so no bucket counts as a peak.
	trips := make([]Trip, 0, 24)
	for h := 0; h < 24; h++ {
		trips = append(trips, Trip{RequestTime: tsAt(25, h)})
	}

	assert.Equal(t, 0, peakHourCount(trips))
}
