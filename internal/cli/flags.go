package cli

import (
	"github.com/caroline-insar/caroline-download/pkg/config"
	"github.com/spf13/pflag"
)

// Flags holds the root command flags.
type Flags struct {
	Config        string
	GeoSearch     string
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

// Bind registers the flags. The config file flags are persistent so the
// config sub-commands see them too.
func (f *Flags) Bind(persistent, fs *pflag.FlagSet) {
	persistent.StringVar(&f.Config, "config", "", "configuration file to use (default: $CAROLINE_DOWNLOAD_CONFIG_DIR/"+config.FileName+")")
	persistent.StringVar(&f.GeoSearch, "geo-search", "", "download based on the geo search in this YAML file")
	fs.StringVar(&f.ProductSearch, "product-search", "", "download a single product by scene name")
	fs.BoolVar(&f.Force, "force", false, "force downloading, even if a product already exists locally")
	fs.BoolVar(&f.Verify, "verify", false, "verify checksum after downloading")
	fs.BoolVar(&f.DryRun, "dry-run", false, "perform dry run, do not actually download anything")
	fs.StringVar(&f.LogFile, "log-file", "", "log to LOG_FILE")
	fs.StringVar(&f.LogLevel, "log-level", "", "set log level (debug, info, warning, error, critical)")
	fs.BoolVar(&f.Quiet, "quiet", false, "do not log anything to the console")
	fs.IntVar(&f.Concurrency, "concurrency", 0, "number of parallel downloads per query (0: from config)")
	fs.StringVar(&f.MetricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
}

func (f *Flags) overrides() config.Overrides {
	return config.Overrides{
		GeoSearchFile: f.GeoSearch,
		ProductSearch: f.ProductSearch,
		Force:         f.Force,
		Verify:        f.Verify,
		DryRun:        f.DryRun,
		LogFile:       f.LogFile,
		LogLevel:      f.LogLevel,
		Quiet:         f.Quiet,
		Concurrency:   f.Concurrency,
		MetricsFile:   f.MetricsFile,
	}
}

// loadConfig resolves the configuration for a run from flags and environment.
func (f *Flags) loadConfig() (*config.Config, error) {
	env, err := config.LoadEnvironment()
	if err != nil {
		return nil, err
	}
	return config.Load(config.Options{
		ConfigFile: f.Config,
		Env:        env,
		Overrides:  f.overrides(),
		Version:    Version,
	})
}
