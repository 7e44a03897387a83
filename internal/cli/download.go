package cli

import (
	"context"
	"time"

	"github.com/caroline-insar/caroline-download/internal/logger"
	"github.com/caroline-insar/caroline-download/pkg/archive"
	"github.com/caroline-insar/caroline-download/pkg/asf"
	"github.com/caroline-insar/caroline-download/pkg/auth"
	"github.com/caroline-insar/caroline-download/pkg/config"
	"github.com/caroline-insar/caroline-download/pkg/download"
	"github.com/caroline-insar/caroline-download/pkg/errors"
	"github.com/caroline-insar/caroline-download/pkg/hooks"
	"github.com/caroline-insar/caroline-download/pkg/metrics"
	"github.com/caroline-insar/caroline-download/pkg/orchestrator"
)

// RunDownload executes one download run as configured by flags and the environment.
func RunDownload(ctx context.Context, flags *Flags) error {
	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}

	_, closer, err := logger.Setup(loggerOptions(cfg.Logging))
	if err != nil {
		return errors.Wrap(err, "failed to create log file")
	}
	defer func() { _ = closer.Close() }()

	logger.Info("starting "+ProgramName, logger.Fields{"version": Version})
	if data, err := cfg.ToYAML(); err == nil {
		logger.Debug("configuration", logger.Fields{"config": string(data)})
	}

	orch, rec, err := newOrchestrator(cfg)
	if err != nil {
		return err
	}

	dlCfg, err := cfg.DownloadConfig()
	if err != nil {
		return err
	}

	start := time.Now()
	summary, runErr := orch.Run(ctx, dlCfg, cfg.GeoSearch.Search(), cfg.ProductSearch)
	rec.RunFinished(time.Now(), time.Since(start))
	logSummary(summary)

	if cfg.Metrics.Textfile != "" {
		if err := rec.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logger.Error("failed to write metrics", logger.Fields{"file": cfg.Metrics.Textfile, "error": err.Error()})
		}
	}

	if runErr != nil {
		return runErr
	}
	if summary.Failed() {
		return errors.Wrapf(errors.ErrRunFailed, "%d failed queries, %d failed products",
			summary.FailedQueries, summary.Count(download.Error)+summary.Count(download.VerificationFailed))
	}
	return nil
}

func newOrchestrator(cfg *config.Config) (*orchestrator.Orchestrator, *metrics.Recorder, error) {
	authenticator, err := auth.Resolve(cfg.Archive.Token, cfg.Archive.NetrcFile)
	if err != nil {
		return nil, nil, err
	}
	if authenticator == nil {
		logger.Warn("no Earthdata credentials found, downloads requiring login will fail")
	} else {
		logger.Debug("using Earthdata credentials", logger.Fields{"type": string(authenticator.Type())})
	}

	client, err := asf.NewClient(asf.Options{
		SearchURL: cfg.Archive.SearchURL,
		Timeout:   cfg.Archive.Timeout,
		UserAgent: userAgent(cfg),
		Auth:      authenticator,
	})
	if err != nil {
		return nil, nil, err
	}

	hookManager := hooks.NewHookManager(cfg.Download.HookVars)
	if cfg.Download.HooksDir != "" {
		if err := hooks.LoadFromDir(hookManager, cfg.Download.HooksDir); err != nil {
			return nil, nil, err
		}
	}

	var inspector download.ArchiveInspector
	if cfg.Download.InspectArchive {
		inspector = archive.NewInspector()
	}

	rec := metrics.New()
	engine := download.NewEngine(client, inspector, hookManager)
	rep := newReporter(rec, cfg.Download.DryRun)
	return orchestrator.New(client, engine, orchestrator.Hooks{OnEvent: rep.OnEvent}), rec, nil
}

func loggerOptions(l config.Logging) logger.Options {
	return logger.Options{
		Console: logger.ConsoleOptions{
			Enable: l.ConsoleLog.Enable,
			Level:  l.ConsoleLog.Level,
			Format: logger.OutputFormat(l.ConsoleLog.Format),
		},
		File: logger.FileOptions{
			Path:       l.FileLog.File,
			Level:      l.FileLog.Level,
			Format:     logger.OutputFormat(l.FileLog.Format),
			MaxSizeMB:  l.FileLog.MaxSizeMB,
			MaxBackups: l.FileLog.MaxBackups,
		},
	}
}

func userAgent(cfg *config.Config) string {
	if cfg.Archive.UserAgent != "" {
		return cfg.Archive.UserAgent
	}
	return ProgramName + "/" + Version
}
