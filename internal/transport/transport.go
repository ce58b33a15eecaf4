// Package transport issues authenticated HTTP requests against a Confluence
// REST endpoint and hands raw responses to the normalization layer. Retry and
// backoff policy belongs to callers of this package, not here.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// RawResponse is the undigested result of a single REST call.
type RawResponse struct {
	// OK reports whether the HTTP status was 2xx.
	OK bool

	// Status is the HTTP status code.
	Status int

	// Reason carries the HTTP status line on failures.
	Reason string

	// Body is the undecoded response body.
	Body []byte
}

// JSON decodes the response body into v. Returns a *DecodeError if the body
// is not well-formed JSON.
func (r *RawResponse) JSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

// RequestError reports a call the server answered with a non-2xx status.
type RequestError struct {
	Status int
	Reason string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Reason)
}

// DecodeError reports a response body that could not be parsed as JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Fetcher is the boundary the content services depend on. Implementations
// must be safe for concurrent use.
type Fetcher interface {
	// Fetch performs a GET against a path relative to the REST root.
	Fetch(ctx context.Context, path string, query url.Values) (*RawResponse, error)

	// Send performs a write (POST or PUT) with a JSON body against a path
	// relative to the REST root.
	Send(ctx context.Context, method, path string, body []byte) (*RawResponse, error)
}
