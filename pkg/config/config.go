// Package config loads the run configuration of caroline-download.
// A run is described by one YAML file, optionally extended by a
// geo-search YAML file and overridden by command line flags.
package config

import (
	"io"
	"os"
	"time"

	"github.com/caroline-insar/caroline-download/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config represents the configuration of one run.
type Config struct {
	Download      Download   `yaml:"download"`
	GeoSearch     *GeoSearch `yaml:"geo_search,omitempty"`
	ProductSearch string     `yaml:"product_search,omitempty"`
	Logging       Logging    `yaml:"logging"`
	Archive       Archive    `yaml:"archive"`
	Metrics       Metrics    `yaml:"metrics,omitempty"`

	// Requires is a version constraint on the program, e.g. ">= 1.2, < 2".
	Requires string `yaml:"requires,omitempty"`
}

// Download controls where and how products are stored.
type Download struct {
	BaseDirectory     string                 `yaml:"base_directory" validate:"required"`
	Force             bool                   `yaml:"force"`
	DryRun            bool                   `yaml:"dry_run"`
	Verify            bool                   `yaml:"verify"`
	Concurrency       int                    `yaml:"concurrency" validate:"gte=1,lte=32"`
	ChecksumAlgorithm string                 `yaml:"checksum_algorithm" validate:"omitempty,oneof=md5 sha256"`
	InspectArchive    bool                   `yaml:"inspect_archive"`
	HooksDir          string                 `yaml:"hooks_dir,omitempty"`
	HookVars          map[string]interface{} `yaml:"hook_vars,omitempty"`
}

// GeoSearch describes a spatio-temporal search.
type GeoSearch struct {
	Dataset        string    `yaml:"dataset" validate:"required"`
	Start          Timestamp `yaml:"start" validate:"required"`
	End            Timestamp `yaml:"end" validate:"required"`
	ROIWKTFile     string    `yaml:"roi_wkt_file" validate:"required,fileexists"`
	RelativeOrbits []int     `yaml:"relative_orbits" validate:"dive,gte=1,lte=175"`
	ProductType    string    `yaml:"product_type" validate:"required"`
}

// Logging configures console and file output.
type Logging struct {
	ConsoleLog ConsoleLog `yaml:"console_log"`
	FileLog    FileLog    `yaml:"file_log"`
}

// ConsoleLog configures logging to stdout.
type ConsoleLog struct {
	Enable bool   `yaml:"enable"`
	Level  string `yaml:"level" validate:"loglevel"`
	Format string `yaml:"format" validate:"logformat"`
}

// FileLog configures the rotating log file. No file is written when File is empty.
type FileLog struct {
	File       string `yaml:"file,omitempty"`
	Level      string `yaml:"level" validate:"loglevel"`
	Format     string `yaml:"format" validate:"logformat"`
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" validate:"gte=0"`
}

// Archive configures access to the ASF search and download endpoints.
type Archive struct {
	SearchURL string        `yaml:"search_url" validate:"omitempty,url"`
	NetrcFile string        `yaml:"netrc_file,omitempty"`
	Token     string        `yaml:"token,omitempty"`
	Timeout   time.Duration `yaml:"timeout" validate:"gte=0"`
	UserAgent string        `yaml:"user_agent,omitempty"`
}

// Metrics configures the Prometheus textfile written at the end of a run.
type Metrics struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// Default configuration values.
const (
	// FileName is the config file looked up in CAROLINE_DOWNLOAD_CONFIG_DIR.
	FileName = "caroline-download.yml"

	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultConcurrency = 1
	DefaultTimeout     = 60 * time.Second
	DefaultMaxSizeMB   = 100
	DefaultMaxBackups  = 31

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultConfig returns a configuration with defaults for everything but
// the base directory and the searches.
func DefaultConfig() *Config {
	return &Config{
		Download: Download{
			Verify:      true,
			Concurrency: DefaultConcurrency,
		},
		Logging: Logging{
			ConsoleLog: ConsoleLog{
				Enable: true,
				Level:  DefaultLogLevel,
				Format: DefaultLogFormat,
			},
			FileLog: FileLog{
				Level:      DefaultLogLevel,
				Format:     DefaultLogFormat,
				MaxSizeMB:  DefaultMaxSizeMB,
				MaxBackups: DefaultMaxBackups,
			},
		},
		Archive: Archive{
			Timeout: DefaultTimeout,
		},
	}
}

// LoadConfig reads the config file at path on top of the defaults.
// The result is not validated; see Load.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrConfigNotFound, "%s", path)
		}
		return nil, errors.Wrap(errors.ErrIO, err.Error())
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader reads YAML configuration from r on top of the defaults.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.decode(r); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// MergeFile decodes the YAML file at path onto c. Keys present in the file
// replace the values already loaded; absent keys are left alone.
func (c *Config) MergeFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(errors.ErrConfigNotFound, "%s", path)
		}
		return errors.Wrap(errors.ErrIO, err.Error())
	}
	defer func() { _ = file.Close() }()

	if err := c.decode(file); err != nil {
		return errors.Wrapf(err, "%s", path)
	}
	c.applyDefaults()
	return nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return errors.Wrap(errors.ErrConfigParse, err.Error())
	}
	return nil
}

// ToYAML renders the configuration with the archive token redacted.
func (c *Config) ToYAML() ([]byte, error) {
	redacted := *c
	if redacted.Archive.Token != "" {
		redacted.Archive.Token = "********"
	}
	data, err := yaml.Marshal(&redacted)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}
	return data, nil
}

// applyDefaults fills in values an explicit YAML zero would otherwise leave invalid.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Download.Concurrency == 0 {
		c.Download.Concurrency = defaults.Download.Concurrency
	}
	if c.Logging.ConsoleLog.Level == "" {
		c.Logging.ConsoleLog.Level = defaults.Logging.ConsoleLog.Level
	}
	if c.Logging.ConsoleLog.Format == "" {
		c.Logging.ConsoleLog.Format = defaults.Logging.ConsoleLog.Format
	}
	if c.Logging.FileLog.Level == "" {
		c.Logging.FileLog.Level = defaults.Logging.FileLog.Level
	}
	if c.Logging.FileLog.Format == "" {
		c.Logging.FileLog.Format = defaults.Logging.FileLog.Format
	}
	if c.Archive.Timeout == 0 {
		c.Archive.Timeout = defaults.Archive.Timeout
	}
}
