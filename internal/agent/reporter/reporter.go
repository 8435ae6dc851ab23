// Package reporter delivers usage records to the telemetry service.
// Delivery is best-effort: the poll loop logs failures and keeps ticking.
package reporter

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/deskwatch/deskwatch/internal/model"
)

// Reporter posts usage records to the server's ingest endpoint.
type Reporter struct {
	client *resty.Client
}

// New creates a Reporter for the service at baseURL.
func New(baseURL string) *Reporter {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second)
	return &Reporter{client: c}
}

// Report submits one record. A non-201 response is an error; the caller
// decides whether to care.
func (r *Reporter) Report(ctx context.Context, rec *model.UsageRecord) error {
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(rec).
		Post("/api/usage")
	if err != nil {
		return fmt.Errorf("post usage: %w", err)
	}
	if resp.StatusCode() != http.StatusCreated {
		return fmt.Errorf("server status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
