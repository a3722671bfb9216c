// pkg/client/client.go

// Package client is a typed HTTP client for the public list and analytics
// endpoints of the job board API.
//
// It serves callers inside this module (the index tools and the end-to-end
// suite) and decodes into the API's own result and report types, which
// live under internal/. Outside the module, talk to the HTTP API directly.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobboard-api/internal/analytics"
	apperrors "jobboard-api/internal/common/errors"
	"jobboard-api/internal/models"
	"jobboard-api/internal/search"
)

// APIError is a non-2xx answer decoded from the API error body.
type APIError struct {
	Status    int                    `json:"-"`
	Code      apperrors.ErrorCode    `json:"code"`
	Message   string                 `json:"message"`
	Fields    []apperrors.FieldError `json:"errors,omitempty"`
	RequestID string                 `json:"requestId,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api returned status %d", e.Status)
	}
	return fmt.Sprintf("api returned status %d: %s: %s", e.Status, e.Code, e.Message)
}

type Client struct {
	baseURL        string
	token          string
	onUnauthorized func()
	httpClient     *http.Client
}

// NewClient builds a client for baseURL. token may be empty for anonymous
// calls; onUnauthorized, when set, runs on every 401 answer.
func NewClient(baseURL string, timeout time.Duration, token string, onUnauthorized func()) *Client {
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		token:          token,
		onUnauthorized: onUnauthorized,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListOffers calls GET /api/offers with the given filters.
func (c *Client) ListOffers(ctx context.Context, query url.Values) (*search.Result[models.Offer], error) {
	var out search.Result[models.Offer]
	if err := c.get(ctx, "/api/offers", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListJobseekers calls GET /api/jobseekers with the given filters.
func (c *Client) ListJobseekers(ctx context.Context, query url.Values) (*search.Result[models.PublicProfile], error) {
	var out search.Result[models.PublicProfile]
	if err := c.get(ctx, "/api/jobseekers", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAnalytics calls GET /api/analytics. Empty arguments leave the server
// defaults in place.
func (c *Client) GetAnalytics(ctx context.Context, timeRange analytics.TimeRange, groupBy analytics.Granularity) (*analytics.Report, error) {
	query := url.Values{}
	if timeRange != "" {
		query.Set("timeRange", string(timeRange))
	}
	if groupBy != "" {
		query.Set("groupBy", string(groupBy))
	}
	var out analytics.Report
	if err := c.get(ctx, "/api/analytics", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		_ = json.Unmarshal(body, apiErr)
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
