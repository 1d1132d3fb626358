package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"reflect"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// apiClient sends authorized requests on behalf of every component
type apiClient struct {
	transport Transport
	sessions  *SessionStore
}

// get decodes the response of an authorized GET into out
func (c *apiClient) get(ctx context.Context, rawURL string, query url.Values, out interface{}) error {
	resp, err := c.do(ctx, http.MethodGet, rawURL, query, nil)
	if err != nil {
		return err
	}
	return decodeStrict(resp.Body, out)
}

// put sends an authorized mutation; the response body is ignored
func (c *apiClient) put(ctx context.Context, rawURL string, body interface{}) error {
	_, err := c.do(ctx, http.MethodPut, rawURL, nil, body)
	return err
}

func (c *apiClient) do(ctx context.Context, method, rawURL string, query url.Values, body interface{}) (*Response, error) {
	token, err := c.sessions.Authorize()
	if err != nil {
		return nil, err
	}

	resp, err := c.transport.Send(ctx, &Request{
		Method: method,
		URL:    rawURL,
		Query:  query,
		Body:   body,
		Bearer: token,
	})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, ErrInvalidResponse
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrTokenExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		LogDebug("%s %s failed with %d: %s", method, rawURL, resp.StatusCode, truncate(string(resp.Body), 512))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: resp.Body}
	}
	return resp, nil
}

// decodeStrict unmarshals data into out and applies its validate tags.
// Any failure is reported as a single DecodingError.
func decodeStrict(data []byte, out interface{}) error {
	target := typeName(out)
	if err := json.Unmarshal(data, out); err != nil {
		return &DecodingError{Target: target, Err: err}
	}
	if err := validate.Struct(out); err != nil {
		return &DecodingError{Target: target, Err: err}
	}
	return nil
}

func typeName(v interface{}) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return "response"
	}
	return t.Name()
}

func endpoint(base string, format string, args ...interface{}) string {
	path := fmt.Sprintf(format, args...)
	return base + path
}
