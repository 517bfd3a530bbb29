package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/http2"

	"github.com/kbukum/restkit/codec"
	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/resilience"
)

// Adapter is the net/http transport engine. It resolves paths against a
// base URL, applies default headers, retries server errors and reports every
// non-2xx response as *Error.
type Adapter struct {
	httpClient *http.Client
	config     Config
	log        *logger.Logger
	codec      codec.Codec
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger used for request logging and retries.
func WithLogger(l *logger.Logger) Option {
	return func(a *Adapter) { a.log = l }
}

// WithCodec sets the codec for request bodies that are not already encoded.
func WithCodec(c codec.Codec) Option {
	return func(a *Adapter) { a.codec = c }
}

// New creates a new HTTP adapter with the given configuration.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport, err := NewTransport(cfg)
	if err != nil {
		return nil, err
	}

	a := &Adapter{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config: cfg,
		log:    logger.NewNop(),
		codec:  codec.DefaultJSON(),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.log = a.log.WithComponent("httpclient")
	if cfg.Logging {
		a.httpClient.Transport = &loggingTransport{next: a.httpClient.Transport, log: a.log}
	}
	return a, nil
}

// Do executes an HTTP request and returns the complete response. Server
// errors are retried per the configured policy.
func (a *Adapter) Do(ctx context.Context, req Request) (*Response, error) {
	retry := a.config.RetryConfig()
	if retry.MaxRetries == 0 {
		return a.executeRequest(ctx, req)
	}
	retry.OnRetry = func(attempt int, err error, backoff time.Duration) {
		a.log.Warn("retrying request", logger.Fields(
			logger.FieldMethod, req.Method,
			logger.FieldURL, req.Path,
			logger.FieldAttempt, attempt,
			logger.FieldError, err.Error(),
			"backoff_ms", backoff.Milliseconds(),
		))
	}
	return resilience.Retry(ctx, retry, func() (*Response, error) {
		return a.executeRequest(ctx, req)
	})
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (a *Adapter) Unwrap() *http.Client {
	return a.httpClient
}

// Close releases idle connections.
func (a *Adapter) Close(_ context.Context) error {
	a.httpClient.CloseIdleConnections()
	return nil
}

// NewTransport clones http.DefaultTransport, enabling HTTP/2 when cfg asks
// for it.
func NewTransport(cfg Config) (*http.Transport, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.HTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			return nil, fmt.Errorf("httpclient: configure http2: %w", err)
		}
	}
	return transport, nil
}

// executeRequest builds and sends the HTTP request.
func (a *Adapter) executeRequest(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := a.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, MapTransportError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, MapTransportError(ctx, fmt.Errorf("read response body: %w", err))
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Headers:    FlattenHeaders(resp.Header),
		Body:       body,
	}

	if classErr := ClassifyStatusCode(resp.StatusCode, body); classErr != nil {
		return result, classErr
	}

	return result, nil
}

// MapTransportError maps a failed round trip. Cancellation by the caller is
// returned unchanged so it can propagate; deadlines become timeouts.
func MapTransportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) || errors.Is(err, context.Canceled) {
		return err
	}
	var te interface{ Timeout() bool }
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &te) && te.Timeout()) {
		return NewTimeoutError(err)
	}
	return NewConnectionError(err)
}

// buildRequest constructs an *http.Request from the adapter config and request.
func (a *Adapter) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	url := ResolveURL(a.config.BaseURL, req.Path)

	body, contentType, err := a.encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("create request: %v", err), err)
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, vs := range req.Query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	if a.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", a.config.UserAgent)
	}

	// Apply default headers
	for k, v := range a.config.Headers {
		httpReq.Header.Set(k, v)
	}

	// Apply request-specific headers (override defaults)
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	// Set content-type if body present and not already set
	if body != nil && httpReq.Header.Get("Content-Type") == "" && contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	return httpReq, nil
}

// encodeBody converts a body value into an io.Reader and content type.
// Encoding failures are returned as *codec.Error.
func (a *Adapter) encodeBody(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}
	switch v := body.(type) {
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	default:
		data, err := a.codec.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), a.codec.ContentType(), nil
	}
}

// ResolveURL joins base and path unless path is already absolute.
func ResolveURL(base, path string) string {
	if base == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if path == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// FlattenHeaders converts multi-value headers to single-value.
func FlattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
