package uber

import "math"

const (
	// A driver with no rated trips in the window gets a neutral-positive score.
	defaultFeedbackScore = 4.0

	// Idle ratio is unknowable with zero online hours; assume a modest default.
	defaultIdleRatio = 0.2

	// The volume index saturates at this many completed trips per window.
	tripVolumeCeiling = 100.0
)

// DerivePerformance turns one platform metrics record and a trip list into
// normalized performance indicators. Pure function, no side effects.
func DerivePerformance(metrics *Metrics, trips []Trip) Performance {
	return Performance{
		AcceptanceRate:   metrics.AcceptanceRate / 100,
		CancellationRate: metrics.CancellationRate / 100,
		CompletionRate:   metrics.CompletionRate / 100,
		FeedbackScore:    feedbackScore(trips),
		TripVolumeIndex:  math.Min(float64(metrics.TripsCompleted)/tripVolumeCeiling, 1),
		IdleRatio:        idleRatio(metrics.OnlineHours, metrics.ActiveHours),
	}
}

// feedbackScore averages the rider ratings that are actually present.
// Unrated trips contribute to neither numerator nor denominator.
func feedbackScore(trips []Trip) float64 {
	var sum float64
	var count int
	for _, t := range trips {
		if t.Rating != nil {
			sum += *t.Rating
			count++
		}
	}

	if count == 0 {
		return defaultFeedbackScore
	}
	return sum / float64(count)
}

// idleRatio clamps at zero: active hours exceeding online hours is a
// data-quality condition, not a negative ratio.
func idleRatio(onlineHours, activeHours float64) float64 {
	if onlineHours <= 0 {
		return defaultIdleRatio
	}
	return math.Max(0, (onlineHours-activeHours)/onlineHours)
}
