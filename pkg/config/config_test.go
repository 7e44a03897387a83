package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/caroline-insar/caroline-download/pkg/checksum"
	"github.com/caroline-insar/caroline-download/pkg/errors"
	"github.com/caroline-insar/caroline-download/pkg/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseConfig = `download:
  base_directory: /data/s1
logging:
  console_log:
    level: debug
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), fsutil.FileModeDefault))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Download.Verify)
	assert.False(t, cfg.Download.Force)
	assert.Equal(t, 1, cfg.Download.Concurrency)
	assert.True(t, cfg.Logging.ConsoleLog.Enable)
	assert.Equal(t, "info", cfg.Logging.ConsoleLog.Level)
	assert.Equal(t, 31, cfg.Logging.FileLog.MaxBackups)
	assert.Equal(t, 60*time.Second, cfg.Archive.Timeout)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, FileName, `download:
  base_directory: /data/s1
  force: true
  concurrency: 4
  checksum_algorithm: sha256
  hook_vars:
    project: nl_amsterdam
product_search: S1A_IW_SLC__1SDV_20190103T170131_20190103T170158_025306_02CC4C_519D-SLC
logging:
  file_log:
    file: /var/log/caroline-download.log
archive:
  timeout: 2m
requires: ">= 1.0"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/s1", cfg.Download.BaseDirectory)
	assert.True(t, cfg.Download.Force)
	assert.True(t, cfg.Download.Verify, "unset keys keep their defaults")
	assert.Equal(t, 4, cfg.Download.Concurrency)
	assert.Equal(t, "nl_amsterdam", cfg.Download.HookVars["project"])
	assert.Equal(t, "/var/log/caroline-download.log", cfg.Logging.FileLog.File)
	assert.Equal(t, "info", cfg.Logging.FileLog.Level)
	assert.Equal(t, 2*time.Minute, cfg.Archive.Timeout)
	assert.Equal(t, ">= 1.0", cfg.Requires)
	assert.Nil(t, cfg.GeoSearch)
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("empty path", func(t *testing.T) {
		_, err := LoadConfig("")
		assert.ErrorIs(t, err, errors.ErrEmptyConfigPath)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "nope.yml"))
		assert.ErrorIs(t, err, errors.ErrConfigNotFound)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeFile(t, dir, "bad.yml", "download: [")
		_, err := LoadConfig(path)
		assert.ErrorIs(t, err, errors.ErrConfigParse)
	})

	t.Run("unknown key", func(t *testing.T) {
		path := writeFile(t, dir, "typo.yml", "download:\n  base_dir: /data\n")
		_, err := LoadConfig(path)
		assert.ErrorIs(t, err, errors.ErrConfigParse)
	})
}

func TestLoadConfigFromReader_Empty(t *testing.T) {
	cfg, err := LoadConfigFromReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFromReader_ExplicitZeroRestoresDefault(t *testing.T) {
	cfg, err := LoadConfigFromReader(strings.NewReader("download:\n  concurrency: 0\nlogging:\n  console_log:\n    level: \"\"\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConcurrency, cfg.Download.Concurrency)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.ConsoleLog.Level)
}

func TestMergeFile_GeoSearch(t *testing.T) {
	dir := t.TempDir()
	roi := writeFile(t, dir, "amsterdam.wkt", "POLYGON((4.7 52.3, 5.0 52.3, 5.0 52.4, 4.7 52.4, 4.7 52.3))")
	geo := writeFile(t, dir, "geo.yml", `geo_search:
  dataset: SENTINEL-1
  start: 2024-01-15
  end: "2024-03-10T12:00:00"
  roi_wkt_file: `+roi+`
  relative_orbits: [88, 37]
  product_type: SLC
download:
  force: true
`)

	cfg, err := LoadConfigFromReader(strings.NewReader(baseConfig))
	require.NoError(t, err)
	require.NoError(t, cfg.MergeFile(geo))

	require.NotNil(t, cfg.GeoSearch)
	assert.Equal(t, "SENTINEL-1", cfg.GeoSearch.Dataset)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), cfg.GeoSearch.Start.Time)
	assert.Equal(t, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC), cfg.GeoSearch.End.Time)
	assert.Equal(t, []int{88, 37}, cfg.GeoSearch.RelativeOrbits)
	assert.True(t, cfg.Download.Force)
	assert.Equal(t, "/data/s1", cfg.Download.BaseDirectory, "keys absent from the merged file are kept")
	assert.Equal(t, "debug", cfg.Logging.ConsoleLog.Level)

	err = cfg.MergeFile(filepath.Join(dir, "missing.yml"))
	assert.ErrorIs(t, err, errors.ErrConfigNotFound)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"2024-01-15T10:30:00", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-01-15 10:30:00", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-01-15T10:30:00Z", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{" 2024-01-15T12:30:00+02:00 ", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Time), "got %s", got.Time)
		})
	}

	_, err := ParseTimestamp("last tuesday")
	assert.ErrorIs(t, err, errors.ErrConfigParse)
}

func TestApplyOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Download.Verify = false

	cfg.ApplyOverrides(Overrides{
		ProductSearch: "S1B_X",
		Force:         true,
		Verify:        true,
		DryRun:        true,
		LogFile:       "/tmp/run.log",
		LogLevel:      "DEBUG",
		Quiet:         true,
		Concurrency:   3,
		MetricsFile:   "/tmp/caroline.prom",
	})

	assert.Equal(t, "S1B_X", cfg.ProductSearch)
	assert.True(t, cfg.Download.Force)
	assert.True(t, cfg.Download.Verify)
	assert.True(t, cfg.Download.DryRun)
	assert.Equal(t, 3, cfg.Download.Concurrency)
	assert.Equal(t, "/tmp/run.log", cfg.Logging.FileLog.File)
	assert.Equal(t, "debug", cfg.Logging.ConsoleLog.Level)
	assert.Equal(t, "debug", cfg.Logging.FileLog.Level)
	assert.False(t, cfg.Logging.ConsoleLog.Enable)
	assert.Equal(t, "/tmp/caroline.prom", cfg.Metrics.Textfile)
}

func TestApplyOverrides_ZeroValuesKeepConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Download.Force = true
	cfg.ProductSearch = "S1A_Y"

	cfg.ApplyOverrides(Overrides{})

	assert.True(t, cfg.Download.Force)
	assert.Equal(t, "S1A_Y", cfg.ProductSearch)
	assert.True(t, cfg.Logging.ConsoleLog.Enable)
}

func validConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Download.BaseDirectory = dir
	cfg.GeoSearch = &GeoSearch{
		Dataset:        "SENTINEL-1",
		Start:          Timestamp{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		End:            Timestamp{time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		ROIWKTFile:     writeFile(t, dir, "roi.wkt", "POINT(4.9 52.37)"),
		RelativeOrbits: []int{88},
		ProductType:    "SLC",
	}
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "product search only", mutate: func(c *Config) { c.GeoSearch = nil; c.ProductSearch = "S1A_X" }},
		{name: "no search", mutate: func(c *Config) { c.GeoSearch = nil }, wantErr: errors.ErrNoSearch},
		{name: "missing base directory", mutate: func(c *Config) { c.Download.BaseDirectory = "" }, wantErr: errors.ErrConfigValidation},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.ConsoleLog.Level = "loud" }, wantErr: errors.ErrConfigValidation},
		{name: "warning level accepted", mutate: func(c *Config) { c.Logging.FileLog.Level = "WARNING" }},
		{name: "critical level accepted", mutate: func(c *Config) { c.Logging.ConsoleLog.Level = "CRITICAL" }},
		{name: "notset level accepted", mutate: func(c *Config) { c.Logging.FileLog.Level = "NOTSET" }},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.FileLog.Format = "xml" }, wantErr: errors.ErrConfigValidation},
		{name: "bad checksum algorithm", mutate: func(c *Config) { c.Download.ChecksumAlgorithm = "crc32" }, wantErr: errors.ErrConfigValidation},
		{name: "concurrency too high", mutate: func(c *Config) { c.Download.Concurrency = 100 }, wantErr: errors.ErrConfigValidation},
		{name: "missing roi file", mutate: func(c *Config) { c.GeoSearch.ROIWKTFile = "/does/not/exist.wkt" }, wantErr: errors.ErrConfigValidation},
		{name: "missing start", mutate: func(c *Config) { c.GeoSearch.Start = Timestamp{} }, wantErr: errors.ErrConfigValidation},
		{name: "orbit out of range", mutate: func(c *Config) { c.GeoSearch.RelativeOrbits = []int{0} }, wantErr: errors.ErrConfigValidation},
		{name: "bad search url", mutate: func(c *Config) { c.Archive.SearchURL = "not a url" }, wantErr: errors.ErrConfigValidation},
		{name: "bad requires", mutate: func(c *Config) { c.Requires = "~~1" }, wantErr: errors.ErrConfigValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		name     string
		requires string
		current  string
		wantErr  error
	}{
		{name: "no constraint", current: "0.1.0"},
		{name: "satisfied", requires: ">= 1.2, < 2", current: "1.4.0"},
		{name: "too old", requires: ">= 1.2", current: "1.1.9", wantErr: errors.ErrVersionConstraint},
		{name: "too new", requires: "~> 1.2", current: "2.0.0", wantErr: errors.ErrVersionConstraint},
		{name: "dev build", requires: ">= 1.2", current: "dev"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Requires = tt.requires
			err := cfg.CheckVersion(tt.current)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestResolvePath(t *testing.T) {
	path, err := ResolvePath("/etc/cd.yml", Environment{ConfigDir: "/opt/caroline"})
	require.NoError(t, err)
	assert.Equal(t, "/etc/cd.yml", path)

	path, err = ResolvePath("", Environment{ConfigDir: "/opt/caroline"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/opt/caroline", FileName), path)

	_, err = ResolvePath("", Environment{})
	assert.ErrorIs(t, err, errors.ErrNoConfig)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("CAROLINE_DOWNLOAD_CONFIG_DIR", "/opt/caroline")
	t.Setenv("EARTHDATA_TOKEN", "tok")
	t.Setenv("NETRC", "/home/caroline/.netrc")

	env, err := LoadEnvironment()
	require.NoError(t, err)
	assert.Equal(t, Environment{
		ConfigDir:      "/opt/caroline",
		EarthdataToken: "tok",
		NetrcFile:      "/home/caroline/.netrc",
	}, env)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, baseConfig)
	roi := writeFile(t, dir, "roi.wkt", "POINT(4.9 52.37)")
	geo := writeFile(t, dir, "geo.yml", `geo_search:
  dataset: SENTINEL-1
  start: 2024-01-01
  end: 2024-02-01
  roi_wkt_file: `+roi+`
  relative_orbits: [88]
  product_type: SLC
`)

	cfg, err := Load(Options{
		Env:       Environment{ConfigDir: dir, EarthdataToken: "tok"},
		Overrides: Overrides{GeoSearchFile: geo, DryRun: true, Quiet: true},
		Version:   "1.0.0",
	})
	require.NoError(t, err)

	assert.NotNil(t, cfg.GeoSearch)
	assert.True(t, cfg.Download.DryRun)
	assert.False(t, cfg.Logging.ConsoleLog.Enable)
	assert.Equal(t, "tok", cfg.Archive.Token)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "c.yml", baseConfig)

	_, err := Load(Options{})
	assert.ErrorIs(t, err, errors.ErrNoConfig)

	_, err = Load(Options{ConfigFile: path})
	assert.ErrorIs(t, err, errors.ErrNoSearch)

	_, err = Load(Options{ConfigFile: path, Overrides: Overrides{GeoSearchFile: filepath.Join(dir, "missing.yml")}})
	assert.ErrorIs(t, err, errors.ErrConfigNotFound)

	strict := writeFile(t, dir, "strict.yml", baseConfig+"requires: \">= 9\"\n")
	_, err = Load(Options{ConfigFile: strict, Overrides: Overrides{ProductSearch: "S1A_X"}, Version: "1.0.0"})
	assert.ErrorIs(t, err, errors.ErrVersionConstraint)
}

func TestConversions(t *testing.T) {
	cfg := validConfig(t)
	cfg.Download.ChecksumAlgorithm = "sha256"
	cfg.Download.Concurrency = 2

	dl, err := cfg.DownloadConfig()
	require.NoError(t, err)
	assert.Equal(t, cfg.Download.BaseDirectory, dl.BaseDirectory)
	assert.Equal(t, checksum.SHA256, dl.ChecksumAlgorithm)
	assert.True(t, dl.Verify)
	assert.Equal(t, 2, dl.Concurrency)

	geo := cfg.GeoSearch.Search()
	require.NotNil(t, geo)
	assert.Equal(t, cfg.GeoSearch.Start.Time, geo.Start)
	assert.Equal(t, []int{88}, geo.RelativeOrbits)

	var none *GeoSearch
	assert.Nil(t, none.Search())
}

func TestToYAML_RedactsToken(t *testing.T) {
	cfg := validConfig(t)
	cfg.Archive.Token = "secret-token"

	data, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret-token")
	assert.Contains(t, string(data), "2024-01-01T00:00:00Z")
	assert.Equal(t, "secret-token", cfg.Archive.Token)
}
