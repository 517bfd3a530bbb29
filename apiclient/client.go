package apiclient

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/restkit/codec"
	"github.com/kbukum/restkit/httpclient"
	"github.com/kbukum/restkit/httpclient/restyengine"
	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/observability"
	"github.com/kbukum/restkit/version"
)

const instrumentationName = "github.com/kbukum/restkit/apiclient"

// Transport sends a request and returns the raw response. Implementations
// return non-2xx responses as an error carrying the HTTP status.
type Transport interface {
	Do(ctx context.Context, req httpclient.Request) (*httpclient.Response, error)
}

// Client issues API calls over a Transport. It holds no per-call state and
// is safe for concurrent use.
type Client struct {
	transport Transport
	codec     codec.Codec
	log       *logger.Logger
	tracer    trace.Tracer
	metrics   *observability.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithCodec sets the codec used for request and response bodies.
func WithCodec(c codec.Codec) Option {
	return func(cl *Client) { cl.codec = c }
}

// WithLogger sets the logger for call outcomes.
func WithLogger(l *logger.Logger) Option {
	return func(cl *Client) { cl.log = l }
}

// WithTracerProvider sets the tracer provider used for call spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(cl *Client) { cl.tracer = tp.Tracer(instrumentationName) }
}

// WithMeterProvider sets the meter provider used for call metrics.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(cl *Client) {
		if m, err := observability.NewMetrics(mp.Meter(instrumentationName)); err == nil {
			cl.metrics = m
		}
	}
}

// New creates a Client over transport.
func New(transport Transport, opts ...Option) *Client {
	c := &Client{
		transport: transport,
		codec:     codec.DefaultJSON(),
		log:       logger.NewNop(),
		tracer:    observability.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics, _ = observability.NewMetrics(observability.Meter(instrumentationName))
	}
	c.log = c.log.WithComponent("apiclient")
	return c
}

// NewFromConfig builds the configured transport engine and a Client over
// it. The logger given with WithLogger is shared with the transport.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	probe := &Client{log: logger.NewNop()}
	for _, opt := range opts {
		opt(probe)
	}

	httpCfg := cfg.HTTPConfig()
	if httpCfg.UserAgent == "" {
		httpCfg.UserAgent = version.UserAgent()
	}

	var (
		transport Transport
		err       error
	)
	bodyCodec := cfg.Codec()
	switch cfg.Engine {
	case EngineResty:
		transport, err = restyengine.New(httpCfg, restyengine.WithLogger(probe.log), restyengine.WithCodec(bodyCodec))
	default:
		transport, err = httpclient.New(httpCfg, httpclient.WithLogger(probe.log), httpclient.WithCodec(bodyCodec))
	}
	if err != nil {
		return nil, err
	}

	return New(transport, append([]Option{WithCodec(bodyCodec)}, opts...)...), nil
}

// Transport returns the transport the client sends requests through.
func (c *Client) Transport() Transport {
	return c.transport
}
