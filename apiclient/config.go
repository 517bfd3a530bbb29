package apiclient

import (
	"fmt"
	"time"

	"github.com/kbukum/restkit/codec"
	"github.com/kbukum/restkit/httpclient"
	"github.com/kbukum/restkit/validation"
)

// Transport engines selectable by Config.Engine.
const (
	EngineStd   = "std"
	EngineResty = "resty"
)

// Config configures a Client built by NewFromConfig.
type Config struct {
	BaseURL     string            `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,http_url"`
	Timeout     time.Duration     `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`
	MaxRetries  int               `yaml:"max_retries" mapstructure:"max_retries" validate:"gte=0"`
	Logging     bool              `yaml:"logging" mapstructure:"logging"`
	Engine      string            `yaml:"engine" mapstructure:"engine" validate:"oneof=std resty"`
	LenientJSON bool              `yaml:"lenient_json" mapstructure:"lenient_json"`
	StrictJSON  bool              `yaml:"strict_json" mapstructure:"strict_json"`
	HTTP2       bool              `yaml:"http2" mapstructure:"http2"`
	UserAgent   string            `yaml:"user_agent" mapstructure:"user_agent"`
	Headers     map[string]string `yaml:"headers" mapstructure:"headers"`
}

// DefaultConfig returns a 30s timeout, two retries on server errors,
// logging on and lenient JSON over the net/http engine.
func DefaultConfig() Config {
	return Config{
		Timeout:     30 * time.Second,
		MaxRetries:  2,
		Logging:     true,
		Engine:      EngineStd,
		LenientJSON: true,
	}
}

// ApplyDefaults fills in zero-value fields that have no meaningful zero.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.Engine == "" {
		c.Engine = EngineStd
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("apiclient: %w", err)
	}
	return nil
}

// Codec returns the JSON codec described by the config.
func (c *Config) Codec() codec.JSON {
	return codec.JSON{Lenient: c.LenientJSON, Strict: c.StrictJSON}
}

// HTTPConfig returns the transport configuration.
func (c *Config) HTTPConfig() httpclient.Config {
	return httpclient.Config{
		BaseURL:    c.BaseURL,
		Timeout:    c.Timeout,
		Headers:    c.Headers,
		UserAgent:  c.UserAgent,
		MaxRetries: c.MaxRetries,
		Logging:    c.Logging,
		HTTP2:      c.HTTP2,
	}
}
