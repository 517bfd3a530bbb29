package main

import (
	"fmt"

	"github.com/kbukum/restkit/apiclient"
	"github.com/kbukum/restkit/config"
)

type cliConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Client    apiclient.Config `yaml:"client" mapstructure:"client"`
	Telemetry telemetryConfig  `yaml:"telemetry" mapstructure:"telemetry"`
}

type telemetryConfig struct {
	// Endpoint is the OTLP/HTTP collector host:port. Telemetry is off when empty.
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

func defaultCLIConfig() cliConfig {
	return cliConfig{
		ServiceConfig: config.ServiceConfig{Name: "apicall"},
		Client:        apiclient.DefaultConfig(),
		Telemetry:     telemetryConfig{Insecure: true, SampleRate: 1.0},
	}
}

func (c *cliConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "apicall"
	}
	c.ServiceConfig.ApplyDefaults()
	c.Client.ApplyDefaults()
}

func (c *cliConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Client.Validate(); err != nil {
		return fmt.Errorf("config.client: %w", err)
	}
	return nil
}
