package config

import (
	"strings"

	"github.com/caroline-insar/caroline-download/pkg/checksum"
	"github.com/caroline-insar/caroline-download/pkg/download"
	"github.com/caroline-insar/caroline-download/pkg/orchestrator"
)

// Overrides are values given on the command line. Zero values leave the
// configuration untouched.
type Overrides struct {
	GeoSearchFile string
	ProductSearch string
	Force         bool
	Verify        bool
	DryRun        bool
	LogFile       string
	LogLevel      string
	Quiet         bool
	Concurrency   int
	MetricsFile   string
}

// Options control Load.
type Options struct {
	ConfigFile string
	Env        Environment
	Overrides  Overrides
	// Version of the running binary, checked against Config.Requires.
	Version string
}

// Load resolves, reads, merges, overrides and validates the configuration
// for one run.
func Load(opts Options) (*Config, error) {
	path, err := ResolvePath(opts.ConfigFile, opts.Env)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	if opts.Overrides.GeoSearchFile != "" {
		if err := cfg.MergeFile(opts.Overrides.GeoSearchFile); err != nil {
			return nil, err
		}
	}

	cfg.ApplyOverrides(opts.Overrides)
	cfg.applyEnvironment(opts.Env)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.CheckVersion(opts.Version); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides applies command line values on top of the configuration.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.ProductSearch != "" {
		c.ProductSearch = o.ProductSearch
	}
	if o.Force {
		c.Download.Force = true
	}
	if o.Verify {
		c.Download.Verify = true
	}
	if o.DryRun {
		c.Download.DryRun = true
	}
	if o.Concurrency > 0 {
		c.Download.Concurrency = o.Concurrency
	}
	if o.LogFile != "" {
		c.Logging.FileLog.File = o.LogFile
	}
	if o.LogLevel != "" {
		level := strings.ToLower(o.LogLevel)
		c.Logging.ConsoleLog.Level = level
		c.Logging.FileLog.Level = level
	}
	if o.Quiet {
		c.Logging.ConsoleLog.Enable = false
	}
	if o.MetricsFile != "" {
		c.Metrics.Textfile = o.MetricsFile
	}
}

// DownloadConfig converts the download section for the engine.
func (c *Config) DownloadConfig() (download.Config, error) {
	alg, err := checksum.ParseAlgorithm(c.Download.ChecksumAlgorithm)
	if err != nil {
		return download.Config{}, err
	}
	return download.Config{
		BaseDirectory:     c.Download.BaseDirectory,
		Force:             c.Download.Force,
		DryRun:            c.Download.DryRun,
		Verify:            c.Download.Verify,
		ChecksumAlgorithm: alg,
		InspectArchive:    c.Download.InspectArchive,
		Concurrency:       c.Download.Concurrency,
	}, nil
}

// Search converts the geo search section for the orchestrator.
// It returns nil when no geo search is configured.
func (g *GeoSearch) Search() *orchestrator.GeoSearch {
	if g == nil {
		return nil
	}
	return &orchestrator.GeoSearch{
		Dataset:        g.Dataset,
		Start:          g.Start.Time,
		End:            g.End.Time,
		ROIWKTFile:     g.ROIWKTFile,
		RelativeOrbits: append([]int(nil), g.RelativeOrbits...),
		ProductType:    g.ProductType,
	}
}
