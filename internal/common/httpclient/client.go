// internal/common/httpclient/client.go
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Client wraps http.Client with a per-call deadline and a bounded
// exponential-backoff retry for transient failures. External collaborators
// are only ever called through it, so no pipeline stage can hang past its
// configured timeout.
type Client struct {
	httpClient *http.Client
	maxRetries int
}

func New(timeout time.Duration, maxRetries int) *Client {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
	}
}

// Do executes the request, retrying non-2xx responses and transport errors
// with exponential backoff. A context deadline always wins over the retry
// budget: once ctx expires the call returns immediately.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		resp, lastErr = c.httpClient.Do(req)

		if ctx.Err() != nil ||
			errors.Is(lastErr, context.DeadlineExceeded) ||
			errors.Is(lastErr, context.Canceled) {
			return nil, context.DeadlineExceeded
		}

		if lastErr == nil {
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return resp, nil
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", c.maxRetries+1, lastErr)
}
