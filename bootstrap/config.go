package bootstrap

import (
	"github.com/kbukum/restkit/config"
)

// Config is the constraint for program configuration types. Any struct that
// embeds config.ServiceConfig satisfies it through promoted methods
// provided it also defines its own Validate when it adds sections.
//
//	type CLIConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Client apiclient.Config `yaml:"client" mapstructure:"client"`
//	}
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
