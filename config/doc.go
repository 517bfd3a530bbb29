// Package config loads application configuration from a YAML file, a .env
// file and the process environment using Viper.
//
//	type Config struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Client apiclient.Config `yaml:"client" mapstructure:"client"`
//	}
//
//	var cfg Config
//	err := config.LoadConfig("apicall", &cfg)
//
// Environment variables prefixed with the upper-cased service name override
// file values: for service "apicall", APICALL_CLIENT_BASE_URL sets
// client.base_url.
package config
