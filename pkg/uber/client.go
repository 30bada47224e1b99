package uber

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const DefaultBaseURL = "https://api.uber.com"

// ErrNotConfigured is returned by every accessor when the required
// credentials are absent. No network I/O is attempted in that state.
var ErrNotConfigured = errors.New("uber fleet client not configured: server token or organization id missing")

// APIError carries the HTTP status of a non-success platform response.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Status     string `json:"status"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("uber fleet API error: %d %s", e.StatusCode, e.Status)
}

type Config struct {
	BaseURL     string
	ServerToken string
	OrgID       string
	Timeout     time.Duration
}

// FleetAPI is the capability set of the platform client. Callers take
// this interface so a test double can stand in for the real client.
type FleetAPI interface {
	ListDrivers(ctx context.Context) ([]Driver, error)
	GetDriverDetails(ctx context.Context, driverID string) (*DriverDetails, error)
	GetDriverMetrics(ctx context.Context, driverID string, start, end time.Time) (*Metrics, error)
	GetDriverTrips(ctx context.Context, driverID string, start, end time.Time) ([]Trip, error)
	GenerateReport(ctx context.Context, req *ReportRequest) (*Report, error)
	GetReportStatus(ctx context.Context, reportID string) (*Report, error)
}

type Client struct {
	baseURL     string
	serverToken string
	orgID       string
	httpClient  *http.Client
}

func NewClient(cfg *Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:     baseURL,
		serverToken: cfg.ServerToken,
		orgID:       cfg.OrgID,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// Configured reports whether both required secrets are present.
func (c *Client) Configured() bool {
	return c.serverToken != "" && c.orgID != ""
}

func (c *Client) request(ctx context.Context, method, path string, body interface{}) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.serverToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}

	return data, nil
}

func (c *Client) orgPath(suffix string) string {
	return "/v1/organizations/" + url.PathEscape(c.orgID) + suffix
}

func dateRangeQuery(start, end time.Time) string {
	q := url.Values{}
	q.Set("start_date", start.Format("2006-01-02"))
	q.Set("end_date", end.Format("2006-01-02"))
	return "?" + q.Encode()
}

func (c *Client) ListDrivers(ctx context.Context) ([]Driver, error) {
	data, err := c.request(ctx, http.MethodGet, c.orgPath("/drivers"), nil)
	if err != nil {
		return nil, err
	}
	return decodeDriverList(data)
}

func (c *Client) GetDriverDetails(ctx context.Context, driverID string) (*DriverDetails, error) {
	data, err := c.request(ctx, http.MethodGet, c.orgPath("/drivers/"+url.PathEscape(driverID)), nil)
	if err != nil {
		return nil, err
	}
	return decodeDriverDetails(data)
}

func (c *Client) GetDriverMetrics(ctx context.Context, driverID string, start, end time.Time) (*Metrics, error) {
	path := c.orgPath("/drivers/"+url.PathEscape(driverID)+"/metrics") + dateRangeQuery(start, end)
	data, err := c.request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeMetrics(data)
}

func (c *Client) GetDriverTrips(ctx context.Context, driverID string, start, end time.Time) ([]Trip, error) {
	path := c.orgPath("/drivers/"+url.PathEscape(driverID)+"/trips") + dateRangeQuery(start, end)
	data, err := c.request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeTripList(data)
}
