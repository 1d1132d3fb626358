package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Request is a single call to the vendor API
type Request struct {
	Method string
	URL    string
	Query  url.Values
	Body   interface{} // JSON encoded when non-nil
	Bearer string      // empty for the token exchange

	// Sensitive requests never have their body logged
	Sensitive bool
}

// Response is the raw outcome of a Request
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport sends requests to the vendor API. The core treats it as a black
// box; tests substitute their own implementation.
type Transport interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// HTTPTransport is the net/http implementation of Transport
type HTTPTransport struct {
	client  *http.Client
	limiter *rate.Limiter
}

// HTTPTransportOptions configures NewHTTPTransport
type HTTPTransportOptions struct {
	Timeout time.Duration
	// RequestsPerSecond paces outgoing requests; zero disables pacing
	RequestsPerSecond float64
	Client            *http.Client
}

// NewHTTPTransport creates a transport with the platform's default headers
func NewHTTPTransport(opts HTTPTransportOptions) *HTTPTransport {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	return &HTTPTransport{
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Send performs the request and reads the whole body
func (t *HTTPTransport) Send(ctx context.Context, req *Request) (*Response, error) {
	target, err := buildURL(req.URL, req.Query)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	var payload []byte
	if req.Body != nil {
		payload, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, &InvalidURLError{URL: target, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Connection", "keep-alive")
	httpReq.Header.Set("User-Agent", userAgent)
	if req.Bearer != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Bearer)
	}

	requestID := uuid.NewString()
	LogDebug("[%s] %s %s", requestID, req.Method, target)
	if payload != nil && !req.Sensitive {
		LogDebug("[%s] request body: %s", requestID, payload)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
	}
	if resp == nil {
		return nil, ErrInvalidResponse
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	LogDebug("[%s] status %d (%d bytes)", requestID, resp.StatusCode, len(data))
	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

func buildURL(raw string, query url.Values) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", &InvalidURLError{URL: raw, Err: err}
	}
	if u.Scheme == "" || u.Host == "" {
		return "", &InvalidURLError{URL: raw, Err: fmt.Errorf("missing scheme or host")}
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
