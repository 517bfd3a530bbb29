package httpclient

import (
	"fmt"
	"time"

	"github.com/kbukum/restkit/resilience"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 2
)

// Config configures the HTTP client.
type Config struct {
	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds a whole request, connect and body read included.
	// Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// UserAgent is sent unless a request sets its own.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries is how many times a request failing with a server error is
	// retried. Zero disables retry.
	MaxRetries int `yaml:"max_retries" mapstructure:"max_retries"`

	// Retry overrides the backoff policy built from MaxRetries.
	Retry *resilience.RetryConfig `yaml:"-" mapstructure:"-"`

	// Logging logs every request and response at info level.
	Logging bool `yaml:"logging" mapstructure:"logging"`

	// HTTP2 configures the transport for HTTP/2 over TLS.
	HTTP2 bool `yaml:"http2" mapstructure:"http2"`
}

// DefaultConfig returns a config with a 30s timeout, two retries on server
// errors and logging enabled.
func DefaultConfig() Config {
	return Config{
		Timeout:    defaultTimeout,
		MaxRetries: defaultMaxRetries,
		Logging:    true,
	}
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("httpclient: max_retries must not be negative (got: %d)", c.MaxRetries)
	}
	return nil
}

// RetryConfig returns the retry policy for this config: Retry if set,
// otherwise exponential backoff over MaxRetries retrying server errors only.
func (c *Config) RetryConfig() resilience.RetryConfig {
	if c.Retry != nil {
		return *c.Retry
	}
	cfg := resilience.DefaultRetryConfig()
	cfg.MaxRetries = c.MaxRetries
	cfg.RetryIf = IsServerError
	return cfg
}
