package uber

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ratingPtr(v float64) *float64 { return &v }

func TestDerivePerformanceNormalizesPlatformRates(t *testing.T) {
	metrics := &Metrics{
		AcceptanceRate:   87,
		CancellationRate: 5,
		CompletionRate:   95,
	}

	perf := DerivePerformance(metrics, nil)

	assert.InDelta(t, 0.87, perf.AcceptanceRate, 1e-9)
	assert.InDelta(t, 0.05, perf.CancellationRate, 1e-9)
	assert.InDelta(t, 0.95, perf.CompletionRate, 1e-9)
}

func TestFeedbackScoreDefaultsWithoutRatings(t *testing.T) {
	trips := []Trip{
		{TripID: "t1", Status: TripStatusCompleted},
		{TripID: "t2", Status: TripStatusCancelled},
	}

	perf := DerivePerformance(&Metrics{}, trips)

	assert.Equal(t, 4.0, perf.FeedbackScore)
}

func TestFeedbackScoreAveragesOnlyRatedTrips(t *testing.T) {
	trips := []Trip{
		{TripID: "t1", Rating: ratingPtr(5)},
		{TripID: "t2"}, // unrated, excluded from both sides of the average
		{TripID: "t3", Rating: ratingPtr(3)},
	}

	perf := DerivePerformance(&Metrics{}, trips)

	assert.InDelta(t, 4.0, perf.FeedbackScore, 1e-9)
}

func TestTripVolumeIndexSaturates(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		want      float64
	}{
		{"above ceiling", 150, 1},
		{"below ceiling", 40, 0.4},
		{"at ceiling", 100, 1},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perf := DerivePerformance(&Metrics{TripsCompleted: tt.completed}, nil)
			assert.InDelta(t, tt.want, perf.TripVolumeIndex, 1e-9)
		})
	}
}

func TestIdleRatioDefaultsWithZeroOnlineHours(t *testing.T) {
	perf := DerivePerformance(&Metrics{OnlineHours: 0, ActiveHours: 8}, nil)
	assert.Equal(t, 0.2, perf.IdleRatio)
}

func TestIdleRatioClampsAtZero(t *testing.T) {
	// Active hours beyond online hours is a data anomaly; the ratio must
	// clamp instead of going negative.
	perf := DerivePerformance(&Metrics{OnlineHours: 10, ActiveHours: 12}, nil)
	assert.Equal(t, 0.0, perf.IdleRatio)
}

func TestIdleRatioNormalCase(t *testing.T) {
	perf := DerivePerformance(&Metrics{OnlineHours: 10, ActiveHours: 7}, nil)
	assert.InDelta(t, 0.3, perf.IdleRatio, 1e-9)
}
