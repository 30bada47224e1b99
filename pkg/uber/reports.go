package uber

import (
	"context"
	"net/http"
	"net/url"
)

// GenerateReport asks the platform to build an offline report. Generation
// is asynchronous: the returned report carries an id and a pending or
// processing status that callers poll with GetReportStatus.
func (c *Client) GenerateReport(ctx context.Context, req *ReportRequest) (*Report, error) {
	body := map[string]string{
		"report_type": req.ReportType,
		"start_date":  req.StartDate.Format("2006-01-02"),
		"end_date":    req.EndDate.Format("2006-01-02"),
	}

	data, err := c.request(ctx, http.MethodPost, c.orgPath("/reports"), body)
	if err != nil {
		return nil, err
	}
	return decodeReport(data)
}

func (c *Client) GetReportStatus(ctx context.Context, reportID string) (*Report, error) {
	data, err := c.request(ctx, http.MethodGet, c.orgPath("/reports/"+url.PathEscape(reportID)), nil)
	if err != nil {
		return nil, err
	}
	return decodeReport(data)
}
