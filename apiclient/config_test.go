package apiclient

import (
	"errors"
	"testing"
	"time"

	"github.com/kbukum/restkit/codec"
	"github.com/kbukum/restkit/validation"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.Timeout)
	}
	if cfg.MaxRetries != 2 {
		t.Errorf("expected 2 retries, got %d", cfg.MaxRetries)
	}
	if !cfg.Logging || !cfg.LenientJSON || cfg.Engine != EngineStd {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Timeout != 30*time.Second || cfg.Engine != EngineStd {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{"valid", Config{BaseURL: "https://api.example.com", Timeout: time.Second, Engine: EngineResty}, ""},
		{"empty base url", Config{Timeout: time.Second, Engine: EngineStd}, ""},
		{"bad base url", Config{BaseURL: "not a url", Timeout: time.Second, Engine: EngineStd}, "base_url"},
		{"bad engine", Config{Timeout: time.Second, Engine: "curl"}, "engine"},
		{"negative retries", Config{Timeout: time.Second, Engine: EngineStd, MaxRetries: -1}, "max_retries"},
		{"zero timeout", Config{Engine: EngineStd}, "timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var verr *validation.Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected *validation.Error, got %v", err)
			}
			if len(verr.Fields) != 1 || verr.Fields[0].Field != tt.field {
				t.Errorf("expected error on %q, got %+v", tt.field, verr.Fields)
			}
		})
	}
}

func TestConfig_Codec(t *testing.T) {
	cfg := Config{LenientJSON: true, StrictJSON: true}
	if got := cfg.Codec(); got != (codec.JSON{Lenient: true, Strict: true}) {
		t.Errorf("got %+v", got)
	}
}

func TestConfig_HTTPConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = "https://api.example.com"
	cfg.UserAgent = "ua"
	h := cfg.HTTPConfig()
	if h.BaseURL != cfg.BaseURL || h.Timeout != cfg.Timeout || h.MaxRetries != 2 || !h.Logging || h.UserAgent != "ua" {
		t.Errorf("unexpected transport config: %+v", h)
	}
}

func TestNewFromConfig_Invalid(t *testing.T) {
	if _, err := NewFromConfig(Config{Engine: "curl"}); err == nil {
		t.Fatal("expected error for unknown engine")
	}
}
