// Package restyengine is the go-resty transport engine. It honours the same
// httpclient.Config as the net/http Adapter and reports failures with the
// same *httpclient.Error values, so either engine can back an API client.
package restyengine

import (
	"context"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/kbukum/restkit/codec"
	"github.com/kbukum/restkit/httpclient"
	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/resilience"
)

// Engine sends requests through a resty client.
type Engine struct {
	client *resty.Client
	config httpclient.Config
	log    *logger.Logger
	codec  codec.Codec
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for request logging and retries.
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithCodec sets the codec for request bodies that are not already encoded.
func WithCodec(c codec.Codec) Option {
	return func(e *Engine) { e.codec = c }
}

// New creates a resty-backed engine.
func New(cfg httpclient.Config, opts ...Option) (*Engine, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	transport, err := httpclient.NewTransport(cfg)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		config: cfg,
		log:    logger.NewNop(),
		codec:  codec.DefaultJSON(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.WithComponent("restyengine")

	retry := cfg.RetryConfig()
	client := resty.New().
		SetTransport(transport).
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeaders(cfg.Headers).
		SetLogger(restyLogger{e.log}).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal).
		SetRetryCount(retry.MaxRetries).
		SetRetryWaitTime(initialBackoff(retry)).
		SetRetryMaxWaitTime(maxBackoff(retry)).
		AddRetryCondition(retryCondition(retry)).
		AddRetryHook(e.logRetry)
	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}
	if cfg.Logging {
		client.OnBeforeRequest(e.logRequest).
			OnAfterResponse(e.logResponse).
			OnError(e.logError)
	}

	e.client = client
	return e, nil
}

// Do executes req and returns the complete response. Non-2xx responses are
// returned together with an *httpclient.Error.
func (e *Engine) Do(ctx context.Context, req httpclient.Request) (*httpclient.Response, error) {
	r := e.client.R().SetContext(ctx)
	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}
	if req.Body != nil {
		body, contentType, err := e.encodeBody(req.Body)
		if err != nil {
			return nil, err
		}
		r.SetBody(body)
		if contentType != "" {
			r.SetHeader("Content-Type", contentType)
		}
	}
	r.SetHeaders(req.Headers)

	resp, err := r.Execute(req.Method, req.Path)
	if err != nil {
		return nil, httpclient.MapTransportError(ctx, err)
	}

	result := &httpclient.Response{
		StatusCode: resp.StatusCode(),
		Headers:    httpclient.FlattenHeaders(resp.Header()),
		Body:       resp.Body(),
	}
	if classErr := httpclient.ClassifyStatusCode(resp.StatusCode(), resp.Body()); classErr != nil {
		return result, classErr
	}
	return result, nil
}

// Resty returns the underlying resty client.
func (e *Engine) Resty() *resty.Client {
	return e.client
}

// Close releases idle connections.
func (e *Engine) Close(_ context.Context) error {
	e.client.GetClient().CloseIdleConnections()
	return nil
}

func (e *Engine) encodeBody(body any) (any, string, error) {
	switch v := body.(type) {
	case io.Reader, []byte:
		return v, "", nil
	case string:
		return v, "text/plain", nil
	default:
		data, err := e.codec.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return data, e.codec.ContentType(), nil
	}
}

// retryCondition retries 5xx responses. Transport errors are not retried,
// matching the net/http engine.
func retryCondition(cfg resilience.RetryConfig) resty.RetryConditionFunc {
	return func(resp *resty.Response, err error) bool {
		if err != nil || resp == nil {
			return false
		}
		statusErr := httpclient.ClassifyStatusCode(resp.StatusCode(), resp.Body())
		if statusErr == nil {
			return false
		}
		return cfg.RetryIf(statusErr)
	}
}

func initialBackoff(cfg resilience.RetryConfig) time.Duration {
	if cfg.InitialBackoff > 0 {
		return cfg.InitialBackoff
	}
	return 100 * time.Millisecond
}

func maxBackoff(cfg resilience.RetryConfig) time.Duration {
	if cfg.MaxBackoff > 0 {
		return cfg.MaxBackoff
	}
	return 10 * time.Second
}

func (e *Engine) logRequest(_ *resty.Client, r *resty.Request) error {
	requestID := r.Header.Get(httpclient.HeaderRequestID)
	if requestID == "" {
		requestID = uuid.NewString()
		r.SetHeader(httpclient.HeaderRequestID, requestID)
	}
	e.log.Info("http request", logger.RequestFields(r.Method, r.URL, requestID))
	return nil
}

func (e *Engine) logResponse(_ *resty.Client, resp *resty.Response) error {
	r := resp.Request
	fields := logger.MergeWithDuration(
		logger.RequestFields(r.Method, r.URL, r.Header.Get(httpclient.HeaderRequestID)),
		resp.Time(),
	)
	fields[logger.FieldStatus] = resp.StatusCode()
	e.log.Info("http response", fields)
	return nil
}

func (e *Engine) logRetry(resp *resty.Response, err error) {
	fields := map[string]interface{}{}
	if resp != nil {
		fields = logger.RequestFields(resp.Request.Method, resp.Request.URL, resp.Request.Header.Get(httpclient.HeaderRequestID))
		fields[logger.FieldAttempt] = resp.Request.Attempt
		fields[logger.FieldStatus] = resp.StatusCode()
	}
	if err != nil {
		fields = logger.MergeWithError(fields, err)
	}
	e.log.Warn("retrying request", fields)
}

func (e *Engine) logError(r *resty.Request, err error) {
	fields := logger.RequestFields(r.Method, r.URL, r.Header.Get(httpclient.HeaderRequestID))
	e.log.Warn("http request failed", logger.MergeWithError(fields, err))
}

// restyLogger routes resty's internal messages to the structured logger.
type restyLogger struct {
	log *logger.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	z := l.log.Zerolog()
	z.Error().Msgf(format, v...)
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	z := l.log.Zerolog()
	z.Warn().Msgf(format, v...)
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	z := l.log.Zerolog()
	z.Debug().Msgf(format, v...)
}
