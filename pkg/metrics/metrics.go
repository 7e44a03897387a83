// Package metrics records run outcomes and writes them in the node_exporter
// textfile format, so cron driven runs can be scraped without a listener.
package metrics

import (
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/caroline-insar/caroline-download/pkg/errors"
	"github.com/caroline-insar/caroline-download/pkg/fsutil"
)

const namespace = "caroline_download"

// Query statuses.
const (
	QueryOK     = "ok"
	QueryFailed = "failed"
)

// Recorder holds the run metrics on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	productsTotal *prometheus.CounterVec
	queriesTotal  *prometheus.CounterVec
	bytesTotal    prometheus.Counter
	lastRun       prometheus.Gauge
	runDuration   prometheus.Gauge
}

// New creates a Recorder with all metrics registered.
func New() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.productsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "products_total",
			Help:      "Products processed, by outcome.",
		},
		[]string{"outcome"},
	)
	r.queriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Archive search queries issued, by status.",
		},
		[]string{"status"},
	)
	r.bytesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "downloaded_bytes_total",
		Help:      "Bytes of product archives downloaded.",
	})
	r.lastRun = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time the last run finished.",
	})
	r.runDuration = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_duration_seconds",
		Help:      "Wall clock duration of the last run.",
	})

	r.registry.MustRegister(r.productsTotal, r.queriesTotal, r.bytesTotal, r.lastRun, r.runDuration)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Product counts one product with the given outcome.
func (r *Recorder) Product(outcome string) {
	r.productsTotal.WithLabelValues(outcome).Inc()
}

// Downloaded adds n bytes to the download volume.
func (r *Recorder) Downloaded(n int64) {
	if n > 0 {
		r.bytesTotal.Add(float64(n))
	}
}

// Query counts one search query.
func (r *Recorder) Query(failed bool) {
	status := QueryOK
	if failed {
		status = QueryFailed
	}
	r.queriesTotal.WithLabelValues(status).Inc()
}

// RunFinished records when the run ended and how long it took.
func (r *Recorder) RunFinished(end time.Time, took time.Duration) {
	r.lastRun.Set(float64(end.Unix()))
	r.runDuration.Set(took.Seconds())
}

// WriteTextfile writes all metrics to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := fsutil.EnsureDir(filepath.Dir(path)); err != nil {
		return errors.Wrapf(errors.ErrIO, "metrics directory: %v", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.Wrapf(errors.ErrIO, "write metrics: %v", err)
	}
	return nil
}
