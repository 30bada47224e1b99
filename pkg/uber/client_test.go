package uber

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnconfiguredClientFailsWithoutNetworkIO(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, ServerToken: "", OrgID: "org-1"})

	ctx := context.Background()
	_, err := client.ListDrivers(ctx)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = client.GetDriverMetrics(ctx, "d-1", time.Now(), time.Now())
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = client.GetDriverTrips(ctx, "d-1", time.Now(), time.Now())
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = client.GetDriverDetails(ctx, "d-1")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = client.GenerateReport(ctx, &ReportRequest{ReportType: "trips"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	assert.Equal(t, 0, requests, "unconfigured client must not touch the network")
}

func TestClientSendsBearerAuthAndOrgPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "/v1/organizations/org-1/drivers", r.URL.Path)
		w.Write([]byte(`{"drivers": []}`))
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, ServerToken: "secret-token", OrgID: "org-1"})

	drivers, err := client.ListDrivers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, drivers)
}

func TestClientSurfacesHTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, ServerToken: "tok", OrgID: "org-1"})

	_, err := client.ListDrivers(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "Forbidden", apiErr.Status)
}

func TestListDriversRejectsMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Driver object with no status field.
		w.Write([]byte(`{"drivers": [{"driver_id": "d-1", "first_name": "A", "last_name": "B", "email": "a@b.c"}]}`))
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, ServerToken: "tok", OrgID: "org-1"})

	drivers, err := client.ListDrivers(context.Background())
	require.Error(t, err)
	assert.Nil(t, drivers)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Field)
}

func TestGetDriverMetricsPassesDateRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/organizations/org-1/drivers/d-1/metrics", r.URL.Path)
		assert.Equal(t, "2026-08-24", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2026-08-31", r.URL.Query().Get("end_date"))
		w.Write([]byte(`{
			"driver_id": "d-1",
			"trips_completed": 40,
			"trips_cancelled": 2,
			"trips_requested": 50,
			"acceptance_rate": 87,
			"cancellation_rate": 4,
			"completion_rate": 95,
			"average_rating": 4.8,
			"online_hours": 30,
			"active_hours": 22
		}`))
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, ServerToken: "tok", OrgID: "org-1"})

	start := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	metrics, err := client.GetDriverMetrics(context.Background(), "d-1", start, end)
	require.NoError(t, err)

	assert.Equal(t, 40, metrics.TripsCompleted)
	assert.Equal(t, 87.0, metrics.AcceptanceRate)
}

func TestGenerateAndPollReport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/organizations/org-1/reports":
			w.Write([]byte(`{"report_id": "r-9", "report_type": "trips", "status": "pending"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/v1/organizations/org-1/reports/r-9":
			w.Write([]byte(`{"report_id": "r-9", "report_type": "trips", "status": "completed", "download_url": "https://example.com/r-9.csv"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, ServerToken: "tok", OrgID: "org-1"})

	report, err := client.GenerateReport(context.Background(), &ReportRequest{
		ReportType: "trips",
		StartDate:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, ReportStatusPending, report.Status)

	polled, err := client.GetReportStatus(context.Background(), report.ReportID)
	require.NoError(t, err)
	assert.Equal(t, ReportStatusCompleted, polled.Status)
	assert.Equal(t, "https://example.com/r-9.csv", polled.DownloadURL)
}
