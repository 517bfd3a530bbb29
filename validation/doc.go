// Package validation validates configuration structs using
// go-playground/validator struct tags.
//
//	type Config struct {
//	    BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
//	    Engine  string `mapstructure:"engine" validate:"oneof=std resty"`
//	}
//	if err := validation.Validate(cfg); err != nil { ... }
//
// Field names in error messages come from the mapstructure tag, then the
// json tag, then the snake_cased Go field name, so messages match the keys
// a user writes in config.yml.
package validation
