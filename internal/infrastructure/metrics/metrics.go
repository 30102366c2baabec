package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "edutrack"

// Metrics holds the Prometheus collectors for HTTP traffic and dataset events.
// It satisfies ports.Metrics.
type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	progressIncrements  prometheus.Counter
	recordsCreated      *prometheus.CounterVec
	certificatesIssued  prometheus.Counter
	coursesPruned       prometheus.Counter
	snapshotSaves       *prometheus.CounterVec
	snapshotSaveSeconds prometheus.Histogram
	loadFallbacks       prometheus.Counter
	externalChanges     prometheus.Counter
}

// New creates and registers every collector on a fresh registry
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		progressIncrements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "progress_increments_total",
			Help:      "Progress increments applied to users",
		}),
		recordsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_created_total",
			Help:      "Records created, by collection",
		}, []string{"kind"}),
		certificatesIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "certificates_issued_total",
			Help:      "Certificates created by issuance runs",
		}),
		coursesPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "courses_pruned_total",
			Help:      "Courses removed for having no comments",
		}),
		snapshotSaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_saves_total",
			Help:      "Full snapshot writes, by outcome",
		}, []string{"outcome"}),
		snapshotSaveSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "snapshot_save_duration_seconds",
			Help:      "Time spent writing the data file",
			Buckets:   prometheus.DefBuckets,
		}),
		loadFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_load_failures_total",
			Help:      "Loads that fell back to an empty dataset",
		}),
		externalChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_external_changes_total",
			Help:      "Writes to the data file observed by the watcher",
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestsTotal,
		m.RequestDuration,
		m.progressIncrements,
		m.recordsCreated,
		m.certificatesIssued,
		m.coursesPruned,
		m.snapshotSaves,
		m.snapshotSaveSeconds,
		m.loadFallbacks,
		m.externalChanges,
	)

	return m
}

func (m *Metrics) ProgressIncremented() {
	m.progressIncrements.Inc()
}

func (m *Metrics) RecordCreated(kind string) {
	m.recordsCreated.WithLabelValues(kind).Inc()
}

func (m *Metrics) CertificatesIssued(n int) {
	m.certificatesIssued.Add(float64(n))
}

func (m *Metrics) CoursesPruned(n int) {
	m.coursesPruned.Add(float64(n))
}

func (m *Metrics) SnapshotSaved(d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.snapshotSaves.WithLabelValues(outcome).Inc()
	m.snapshotSaveSeconds.Observe(d.Seconds())
}

func (m *Metrics) SnapshotLoadFallback() {
	m.loadFallbacks.Inc()
}

func (m *Metrics) StoreChangedExternally() {
	m.externalChanges.Inc()
}
