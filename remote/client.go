package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
)

// DefaultTimeout bounds one fetch attempt.
const DefaultTimeout = 10 * time.Second

// ErrFetchFailed wraps transport-level failures of the preview fetch.
var ErrFetchFailed = errors.New("remote: fetching service description failed")

// Client fetches service descriptions over HTTP with retry on
// transient failures.
type Client struct {
	http *resty.Client
}

// NewClient creates a client with the given per-attempt timeout
// (DefaultTimeout when zero).
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		http: resty.New().SetTimeout(timeout),
	}
}

// FetchDescription GETs, decodes and validates the description at url.
// Server errors and transport failures are retried a few times with
// exponential backoff (bounded by ctx); client errors and malformed
// documents are permanent.
func (c *Client) FetchDescription(ctx context.Context, url string) (*Description, error) {
	var body []byte

	operation := func() error {
		resp, err := c.http.R().SetContext(ctx).Get(url)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFetchFailed, err)
		}

		code := resp.StatusCode()
		switch {
		case code == http.StatusOK:
			body = resp.Body()
			return nil
		case code >= http.StatusInternalServerError:
			return fmt.Errorf("%w: status %d", ErrFetchFailed, code)
		default:
			return backoff.Permanent(fmt.Errorf("%w: status %d", ErrFetchFailed, code))
		}
	}

	base := backoff.NewExponentialBackOff()
	base.InitialInterval = 100 * time.Millisecond

	policy := backoff.WithContext(backoff.WithMaxRetries(base, 4), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	return ParseDescription(body)
}
