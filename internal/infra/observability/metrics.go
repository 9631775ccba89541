package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// PipelineSnapshot is a point-in-time view of pipeline counters, served by
// GET /payguard/metrics/pipeline for the frontend event monitor.
type PipelineSnapshot struct {
	ScanRuns          int64 `json:"scanRuns"`
	ScanFailures      int64 `json:"scanFailures"`
	BillsChecked      int64 `json:"billsChecked"`
	OverdueEvents     int64 `json:"overdueEvents"`
	Escalations       int64 `json:"escalations"`
	NotificationsSent int64 `json:"notificationsSent"`
	SummariesEmitted  int64 `json:"summariesEmitted"`
}

// Metrics holds all Prometheus metrics for PayGuard.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	eventsEmitted *prometheus.CounterVec
	jobRuns       *prometheus.CounterVec
	jobDuration   *prometheus.HistogramVec
	billsChecked  prometheus.Counter
	escalations   *prometheus.CounterVec
	notifications *prometheus.CounterVec
	requestsTotal *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		eventsEmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payguard_events_emitted_total",
				Help: "Total events emitted on the bus, by topic.",
			},
			[]string{"topic"},
		),
		jobRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payguard_job_runs_total",
				Help: "Total scheduled job runs, by job and result.",
			},
			[]string{"job", "result"},
		),
		jobDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payguard_job_duration_seconds",
				Help:    "Duration of scheduled job runs.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"job"},
		),
		billsChecked: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "payguard_bills_checked_total",
				Help: "Total bills examined by the overdue scan.",
			},
		),
		escalations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payguard_escalations_total",
				Help: "Total escalations evaluated, by level.",
			},
			[]string{"level"},
		),
		notifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payguard_notifications_total",
				Help: "Total notification intents emitted, by template.",
			},
			[]string{"template"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payguard_requests_total",
				Help: "Total API requests processed, by status.",
			},
			[]string{"status"},
		),
	}
}

// IncrEventEmitted increments the per-topic emission counter.
func (m *Metrics) IncrEventEmitted(topic string) {
	m.eventsEmitted.WithLabelValues(topic).Inc()
}

// IncrJobRun records one scheduled job run outcome ("success" or "error").
func (m *Metrics) IncrJobRun(job, result string) {
	m.jobRuns.WithLabelValues(job, result).Inc()
}

// RecordJobDuration records the duration of one scheduled job run.
func (m *Metrics) RecordJobDuration(job string, d time.Duration) {
	m.jobDuration.WithLabelValues(job).Observe(d.Seconds())
}

// AddBillsChecked adds to the scan coverage counter.
func (m *Metrics) AddBillsChecked(n int) {
	m.billsChecked.Add(float64(n))
}

// IncrEscalation increments the per-level escalation counter.
func (m *Metrics) IncrEscalation(level string) {
	m.escalations.WithLabelValues(level).Inc()
}

// IncrNotification increments the per-template notification counter.
func (m *Metrics) IncrNotification(template string) {
	m.notifications.WithLabelValues(template).Inc()
}

// IncrRequest increments the request counter with a status label.
func (m *Metrics) IncrRequest(status string) {
	m.requestsTotal.WithLabelValues(status).Inc()
}

// GetPipelineSnapshot reads current counter values for the pipeline snapshot
// endpoint. Prometheus counters expose cumulative values.
func (m *Metrics) GetPipelineSnapshot() *PipelineSnapshot {
	return &PipelineSnapshot{
		ScanRuns:          int64(getCounterValue(m.jobRuns, "overdue-scan", "success") + getCounterValue(m.jobRuns, "overdue-scan", "error")),
		ScanFailures:      int64(getCounterValue(m.jobRuns, "overdue-scan", "error")),
		BillsChecked:      int64(getSingleCounterValue(m.billsChecked)),
		OverdueEvents:     int64(getCounterValue(m.eventsEmitted, "bill.overdue")),
		Escalations:       int64(getCounterValue(m.eventsEmitted, "escalation.evaluate")),
		NotificationsSent: int64(getCounterValue(m.eventsEmitted, "notification.send")),
		SummariesEmitted:  int64(getCounterValue(m.eventsEmitted, "daily.summary.generated")),
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for the
// given labels.
func getCounterValue(cv *prometheus.CounterVec, labels ...string) float64 {
	counter := cv.WithLabelValues(labels...)
	metric := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(metric); err != nil {
		return 0
	}
	if metric.Counter != nil && metric.Counter.Value != nil {
		return *metric.Counter.Value
	}
	return 0
}

func getSingleCounterValue(c prometheus.Counter) float64 {
	metric := &dto.Metric{}
	if err := c.Write(metric); err != nil {
		return 0
	}
	if metric.Counter != nil && metric.Counter.Value != nil {
		return *metric.Counter.Value
	}
	return 0
}
