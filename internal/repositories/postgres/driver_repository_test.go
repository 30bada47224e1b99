package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpsertNeverAssignsSnapshotColumns(t *testing.T) {
	// A roster upsert carries only profile data. If the conflict
	// assignment list grows a snapshot column, an upsert racing a failed
	// metrics fetch wipes that driver's last known performance values.
	snapshotColumns := []string{
		"acceptance_rate", "cancellation_rate", "completion_rate",
		"feedback_score", "trip_volume_index", "idle_ratio",
		"total_trips", "total_earnings", "currency", "peak_hours",
		"avg_trip_time", "last_activity_at", "synced_at",
	}

	for _, column := range snapshotColumns {
		assert.NotContains(t, driverProfileColumns, column)
	}

	assert.Contains(t, driverProfileColumns, "first_name")
	assert.Contains(t, driverProfileColumns, "status")
	assert.Contains(t, driverProfileColumns, "updated_at")
}
