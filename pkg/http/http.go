// Package http is a small fluent client for the handful of outbound
// calls the app makes (Slack alerts, partner webhooks). Requests are
// built up with chained setters and fired with Send.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

var transport http.RoundTripper = http.DefaultTransport

// DefaultClient is the client used by every request that does not set
// its own timeout. Tests may swap its Transport and restore it with
// ResetTransport.
var DefaultClient = &http.Client{
	Timeout:   30 * time.Second,
	Transport: transport,
}

// ResetTransport restores DefaultClient's transport after a test has
// replaced it.
func ResetTransport() {
	DefaultClient.Transport = transport
}

// Request accumulates everything needed for one outbound call.
type Request struct {
	method  string
	url     string
	headers map[string]string
	body    any
	timeout time.Duration
	retries int
	ctx     context.Context
}

func newRequest(method, url string) *Request {
	return &Request{
		method:  method,
		url:     url,
		headers: map[string]string{},
		ctx:     context.Background(),
	}
}

func Get(url string) *Request    { return newRequest(http.MethodGet, url) }
func Post(url string) *Request   { return newRequest(http.MethodPost, url) }
func Put(url string) *Request    { return newRequest(http.MethodPut, url) }
func Patch(url string) *Request  { return newRequest(http.MethodPatch, url) }
func Delete(url string) *Request { return newRequest(http.MethodDelete, url) }

// Header sets a single request header.
func (r *Request) Header(key, value string) *Request {
	r.headers[key] = value
	return r
}

// Headers merges a map of headers into the request.
func (r *Request) Headers(h map[string]string) *Request {
	for k, v := range h {
		r.headers[k] = v
	}
	return r
}

// Bearer sets the Authorization header with a bearer token.
func (r *Request) Bearer(token string) *Request {
	return r.Header("Authorization", "Bearer "+token)
}

// Body sets the request body. Strings go out as text/plain, byte
// slices as octet-stream, anything else is JSON encoded.
func (r *Request) Body(v any) *Request {
	r.body = v
	return r
}

// Timeout overrides the default client timeout for this request.
func (r *Request) Timeout(d time.Duration) *Request {
	r.timeout = d
	return r
}

// Retry re-sends the request up to n extra times on transport errors
// or 5xx responses, backing off one second per attempt so far.
func (r *Request) Retry(n int) *Request {
	if n > 0 {
		r.retries = n
	}
	return r
}

// WithContext attaches ctx to the outgoing request.
func (r *Request) WithContext(ctx context.Context) *Request {
	r.ctx = ctx
	return r
}

// Send fires the request and returns the fully read response.
func (r *Request) Send() (*Response, error) {
	var lastErr error
	for attempt := 0; attempt <= r.retries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * time.Second)
		}

		resp, err := r.do()
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode >= 500 && attempt < r.retries {
			lastErr = fmt.Errorf("http: %s %s returned %d", r.method, r.url, resp.StatusCode)
			continue
		}
		return resp, nil
	}
	return nil, lastErr
}

func (r *Request) do() (*Response, error) {
	body, contentType, err := encodeBody(r.body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(r.ctx, r.method, r.url, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" && r.headers["Content-Type"] == "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	client := DefaultClient
	if r.timeout > 0 {
		client = &http.Client{Timeout: r.timeout, Transport: DefaultClient.Transport}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{StatusCode: resp.StatusCode, Headers: resp.Header, Raw: raw}, nil
}

func encodeBody(v any) (io.Reader, string, error) {
	switch b := v.(type) {
	case nil:
		return nil, "", nil
	case string:
		return bytes.NewBufferString(b), "text/plain", nil
	case []byte:
		return bytes.NewBuffer(b), "application/octet-stream", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", fmt.Errorf("http: encode body: %w", err)
		}
		return bytes.NewBuffer(data), "application/json", nil
	}
}

// Response is a fully buffered HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Raw        []byte
}

// OK reports whether the status code is in the 2xx range.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// JSON decodes the response body into v.
func (r *Response) JSON(v any) error {
	return json.Unmarshal(r.Raw, v)
}

// Text returns the response body as a string.
func (r *Response) Text() string {
	return string(r.Raw)
}

// Header returns a single response header value.
func (r *Response) Header(key string) string {
	return r.Headers.Get(key)
}

// Throw turns a non-2xx response into an error.
func (r *Response) Throw() error {
	if r.OK() {
		return nil
	}
	return fmt.Errorf("http: request failed with status %d: %s", r.StatusCode, r.Text())
}
