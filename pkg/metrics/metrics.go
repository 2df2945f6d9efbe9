package metrics

import (
	"context"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"keyword-radar/pkg/logger"
)

const namespace = "keyword_radar"

var (
	storedRunsDesc = prometheus.NewDesc(
		namespace+"_history_runs",
		"Number of analysis runs kept in the history store",
		nil,
		nil,
	)
)

// RunCounter is implemented by the history store.
type RunCounter interface {
	CountRuns(ctx context.Context) (int, error)
}

// HistoryCollector reads the stored run count from the history store on
// each scrape.
type HistoryCollector struct {
	store RunCounter
}

// Describe sends the metric descriptor to the channel.
func (c *HistoryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- storedRunsDesc
}

// Collect emits the current run count.
func (c *HistoryCollector) Collect(ch chan<- prometheus.Metric) {
	n, err := c.store.CountRuns(context.Background())
	if err != nil {
		logger.GetLogger().WithError(err).Error("failed to collect history metrics")
		return
	}
	ch <- prometheus.MustNewConstMetric(storedRunsDesc, prometheus.GaugeValue, float64(n))
}

// Recorder holds the lookup and run instruments.
type Recorder struct {
	registry    *prometheus.Registry
	lookups     *prometheus.CounterVec
	runs        *prometheus.CounterVec
	runDuration prometheus.Histogram
	tiers       *prometheus.CounterVec
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init creates the registry and instruments. store may be nil when no
// history store is configured. Only the first call has an effect.
func Init(store RunCounter) {
	recorderOnce.Do(func() {
		recorder = newRecorder(store)
	})
}

func newRecorder(store RunCounter) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Outbound lookups by source and outcome",
		}, []string{"source", "outcome"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Analysis runs by result",
		}, []string{"result"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of one analysis run",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),
		tiers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keywords_scored_total",
			Help:      "Scored keywords by competition tier",
		}, []string{"tier"}),
	}

	r.registry.MustRegister(
		r.lookups,
		r.runs,
		r.runDuration,
		r.tiers,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if store != nil {
		r.registry.MustRegister(&HistoryCollector{store: store})
	}
	return r
}

// RecordLookup counts one outbound lookup. outcome is "ok" or an error kind.
func RecordLookup(source, outcome string) {
	if recorder == nil {
		return
	}
	recorder.lookups.WithLabelValues(source, outcome).Inc()
}

// RecordRun observes a finished run.
func RecordRun(result string, seconds float64) {
	if recorder == nil {
		return
	}
	recorder.runs.WithLabelValues(result).Inc()
	recorder.runDuration.Observe(seconds)
}

// RecordTier counts one scored keyword in tier.
func RecordTier(tier string) {
	if recorder == nil {
		return
	}
	recorder.tiers.WithLabelValues(tier).Inc()
}

// Handler serves the registry in the Prometheus text format. Before Init it
// serves an empty registry.
func Handler() http.Handler {
	if recorder == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(recorder.registry, promhttp.HandlerOpts{})
}
