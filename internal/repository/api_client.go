package repository

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ResiliencePolicy is the one retry/fallback policy shared by every
// network-facing collaborator (API repositories and the uploader):
// bounded retries with linear backoff and a per-attempt timeout.
type ResiliencePolicy struct {
	Retries int
	Backoff time.Duration
	Timeout time.Duration
}

// DefaultResiliencePolicy matches the documented upload contract:
// 3 attempts, backoff of `attempt` seconds, 30s per attempt.
func DefaultResiliencePolicy() ResiliencePolicy {
	return ResiliencePolicy{
		Retries: 3,
		Backoff: 1 * time.Second,
		Timeout: 30 * time.Second,
	}
}

// APIClient wraps the shared resty client against the tenantli backend.
type APIClient struct {
	http    *resty.Client
	baseURL string
	logger  *zap.Logger
}

// NewAPIClient creates the shared backend client.
func NewAPIClient(baseURL string, policy ResiliencePolicy, logger *zap.Logger) *APIClient {
	retries := policy.Retries - 1 // resty counts retries after the first attempt
	if retries < 0 {
		retries = 0
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(policy.Timeout).
		SetRetryCount(retries).
		SetRetryWaitTime(policy.Backoff).
		SetRetryMaxWaitTime(time.Duration(policy.Retries) * policy.Backoff).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &APIClient{
		http:    client,
		baseURL: baseURL,
		logger:  logger,
	}
}

// BaseURL reports the configured backend origin (used by the locator).
func (c *APIClient) BaseURL() string { return c.baseURL }

// R starts a request on the shared client.
func (c *APIClient) R() *resty.Request { return c.http.R() }

// HTTPStatusError is returned for 4xx/5xx responses so callers can apply the
// placeholder/fallback strategy instead of surfacing a raw failure.
type HTTPStatusError struct {
	StatusCode int
	Endpoint   string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("backend returned status %d for %s", e.StatusCode, e.Endpoint)
}

// checkStatus converts a non-2xx response into an HTTPStatusError.
func checkStatus(resp *resty.Response, endpoint string) error {
	if resp.IsSuccess() {
		return nil
	}
	return &HTTPStatusError{StatusCode: resp.StatusCode(), Endpoint: endpoint}
}
