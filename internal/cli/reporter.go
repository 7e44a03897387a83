package cli

import (
	"os"

	"github.com/caroline-insar/caroline-download/internal/logger"
	"github.com/caroline-insar/caroline-download/pkg/download"
	"github.com/caroline-insar/caroline-download/pkg/metrics"
	"github.com/caroline-insar/caroline-download/pkg/orchestrator"
)

// reporter turns orchestrator events into log records and metrics.
type reporter struct {
	metrics      *metrics.Recorder
	dryRun       bool
	pendingQuery bool
}

func newReporter(rec *metrics.Recorder, dryRun bool) *reporter {
	return &reporter{metrics: rec, dryRun: dryRun}
}

func (r *reporter) OnEvent(e orchestrator.Event) {
	switch e.Phase {
	case orchestrator.PhaseSearching:
		r.finishQuery()
		r.pendingQuery = true
		logger.Info(e.Msg, logger.Fields{"query": e.ID})
	case orchestrator.PhaseQueryFailed:
		r.pendingQuery = false
		r.metrics.Query(true)
		logger.Error(e.Msg, logger.Fields{"query": e.ID, "error": errString(e.Err)})
	case orchestrator.PhaseWarning:
		logger.Warn(e.Msg, logger.Fields{"query": e.ID})
	case orchestrator.PhaseProduct:
		r.product(e)
	case orchestrator.PhaseDone:
		r.finishQuery()
		if e.Err != nil {
			logger.Error(e.Msg, logger.Fields{"error": e.Err.Error()})
			return
		}
		logger.Info(e.Msg)
	}
}

// finishQuery counts the last started query as successful unless it failed.
func (r *reporter) finishQuery() {
	if r.pendingQuery {
		r.metrics.Query(false)
		r.pendingQuery = false
	}
}

func (r *reporter) product(e orchestrator.Event) {
	r.metrics.Product(e.Outcome.String())

	fields := logger.Fields{"product": e.ID, "path": e.Msg, "outcome": e.Outcome.String()}
	if r.dryRun {
		fields["dry_run"] = true
	}

	switch e.Outcome {
	case download.Skipped:
		logger.Info("product exists, skipping", fields)
	case download.Fetched, download.Replaced:
		if !r.dryRun {
			if info, err := os.Stat(e.Msg); err == nil {
				r.metrics.Downloaded(info.Size())
			}
		}
		logger.Success("product downloaded", fields)
	case download.VerificationFailed:
		if e.Err != nil {
			fields["hook_error"] = e.Err.Error()
		}
		logger.Error("checksum verification failed", fields)
	default:
		fields["error"] = errString(e.Err)
		logger.Error("product failed", fields)
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func logSummary(s orchestrator.Summary) {
	fields := logger.Fields{
		"queries":        s.Queries,
		"failed_queries": s.FailedQueries,
		"products":       s.Products,
		"dry_run":        s.DryRun,
	}
	for _, o := range download.Outcomes() {
		fields[o.String()] = s.Count(o)
	}
	if s.Failed() {
		logger.Warn("download finished with failures", fields)
		return
	}
	logger.Success("download finished", fields)
}
