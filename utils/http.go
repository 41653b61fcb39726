package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"
)

// DefaultUserAgent identifies outbound lookups to the providers.
const DefaultUserAgent = "Mozilla/5.0 (compatible; IP-Lookup-Tool/2.0)"

// maximum accepted response body, providers answer with a few hundred bytes
const maxBodySize = 1 << 20

// HTTPClient wraps an http.Client to fetch JSON documents. It sets the
// user agent and Accept headers, applies a token bucket rate limit and
// enforces a timeout per call.
type HTTPClient struct {
	client    *http.Client
	userAgent string
	limiter   *rate.Limiter
}

// NewHTTPClient prepares a client. A zero rateInterval disables rate
// limiting, see https://pkg.go.dev/golang.org/x/time/rate for the
// meaning of the parameters.
func NewHTTPClient(client *http.Client, userAgent string, rateInterval time.Duration, rateBurst int) *HTTPClient {
	if client == nil {
		client = &http.Client{}
	}

	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	if rateBurst < 1 {
		rateBurst = 1
	}

	return &HTTPClient{
		client:    client,
		userAgent: userAgent,
		limiter:   rate.NewLimiter(rate.Every(rateInterval), rateBurst),
	}
}

// Client returns the underlying http.Client.
func (h *HTTPClient) Client() *http.Client {
	return h.client
}

// GetJSON issues a GET to url and returns the body if the response has a
// 2xx status and the body is a valid JSON document.
func (h *HTTPClient) GetJSON(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := h.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, h.contextError(ctx, url)
		}

		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot build a request: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, h.contextError(ctx, url)
		}

		return nil, fmt.Errorf("cannot send a request: %w", err)
	}

	defer func() {
		io.Copy(io.Discard, resp.Body) // nolint: errcheck
		resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, ProviderHTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if ctx.Err() != nil {
			return nil, h.contextError(ctx, url)
		}

		return nil, fmt.Errorf("cannot read a response: %w", err)
	}

	if !jsoniter.Valid(body) {
		return nil, ProviderParseError{Reason: "response is not a valid JSON document"}
	}

	return body, nil
}

func (h *HTTPClient) contextError(ctx context.Context, url string) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ProviderTimeoutError{URL: url}
	}

	return ctx.Err()
}
