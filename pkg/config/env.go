package config

import (
	"path/filepath"

	"github.com/caroline-insar/caroline-download/pkg/errors"
	"github.com/kelseyhightower/envconfig"
)

// Environment holds the settings read from the process environment.
type Environment struct {
	ConfigDir      string `envconfig:"CAROLINE_DOWNLOAD_CONFIG_DIR"`
	EarthdataToken string `envconfig:"EARTHDATA_TOKEN"`
	NetrcFile      string `envconfig:"NETRC"`
}

// LoadEnvironment reads Environment from the process environment.
func LoadEnvironment() (Environment, error) {
	var env Environment
	if err := envconfig.Process("", &env); err != nil {
		return Environment{}, errors.Wrap(errors.ErrConfigParse, err.Error())
	}
	return env, nil
}

// ResolvePath picks the config file: flagPath when given, otherwise
// FileName inside the environment's config directory.
func ResolvePath(flagPath string, env Environment) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	if env.ConfigDir != "" {
		return filepath.Join(env.ConfigDir, FileName), nil
	}
	return "", errors.ErrNoConfig
}

// applyEnvironment fills credentials the config file leaves empty.
func (c *Config) applyEnvironment(env Environment) {
	if c.Archive.Token == "" {
		c.Archive.Token = env.EarthdataToken
	}
	if c.Archive.NetrcFile == "" {
		c.Archive.NetrcFile = env.NetrcFile
	}
}
