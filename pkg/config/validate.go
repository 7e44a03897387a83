package config

import (
	"os"
	"strings"

	"github.com/caroline-insar/caroline-download/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-version"
)

func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "notset", "debug", "info", "warn", "warning", "error", "critical":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "text", "json":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("fileexists", func(fl validator.FieldLevel) bool {
		info, err := os.Stat(fl.Field().String())
		return err == nil && info.Mode().IsRegular()
	})

	return validate
}

// Validate checks the configuration for missing or malformed values.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if err := newValidator().Struct(c); err != nil {
		return errors.Wrap(errors.ErrConfigValidation, err.Error())
	}
	if c.GeoSearch == nil && c.ProductSearch == "" {
		return errors.ErrNoSearch
	}
	if c.Requires != "" {
		if _, err := version.NewConstraint(c.Requires); err != nil {
			return errors.Wrapf(errors.ErrConfigValidation, "requires %q: %v", c.Requires, err)
		}
	}
	return nil
}

// CheckVersion reports whether current satisfies the requires constraint.
// Builds without a semantic version, such as "dev", always pass.
func (c *Config) CheckVersion(current string) error {
	if c.Requires == "" {
		return nil
	}
	constraints, err := version.NewConstraint(c.Requires)
	if err != nil {
		return errors.Wrapf(errors.ErrConfigValidation, "requires %q: %v", c.Requires, err)
	}
	v, err := version.NewVersion(current)
	if err != nil {
		return nil
	}
	if !constraints.Check(v) {
		return errors.Wrapf(errors.ErrVersionConstraint, "have %s, want %s", v, c.Requires)
	}
	return nil
}
