package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUberActionRequiresKnownAction(t *testing.T) {
	errs := ValidateUberActionRequest(&UberActionRequest{Action: "reboot"})
	assert.NotEmpty(t, errs)
}

func TestSyncDriverRequiresDriverID(t *testing.T) {
	errs := ValidateUberActionRequest(&UberActionRequest{Action: "sync_driver"})
	assert.NotEmpty(t, errs)

	errs = ValidateUberActionRequest(&UberActionRequest{
		Action:   "sync_driver",
		DriverID: "0c40c9b1-7d4e-4f34-9a21-0a8f4dd1f3a7",
	})
	assert.Empty(t, errs)
}

func TestGenerateReportRequiresDateRange(t *testing.T) {
	errs := ValidateUberActionRequest(&UberActionRequest{Action: "generate_report", StartDate: "2026-08-01"})
	assert.NotEmpty(t, errs)

	errs = ValidateUberActionRequest(&UberActionRequest{
		Action:    "generate_report",
		StartDate: "2026-08-01",
		EndDate:   "2026-08-31",
	})
	assert.Empty(t, errs)
}

func TestReportStatusRequiresReportID(t *testing.T) {
	errs := ValidateUberActionRequest(&UberActionRequest{Action: "report_status"})
	assert.NotEmpty(t, errs)
}

func TestSyncAllNeedsNoParameters(t *testing.T) {
	errs := ValidateUberActionRequest(&UberActionRequest{Action: "sync_all"})
	assert.Empty(t, errs)
}

func TestDateOnlyRejectsTimestamp(t *testing.T) {
	errs := ValidateUberActionRequest(&UberActionRequest{
		Action:    "generate_report",
		StartDate: "2026-08-01T00:00:00Z",
		EndDate:   "2026-08-31",
	})
	assert.NotEmpty(t, errs)
}
