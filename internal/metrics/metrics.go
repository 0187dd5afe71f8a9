// Package metrics exports validation run results as Prometheus metrics.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jonathan/college-directory/internal/types"
)

// Recorder holds the metrics for one validation run on a private registry.
type Recorder struct {
	namespace    string
	subsystem    string
	scoreBuckets []float64
	registry     *prometheus.Registry

	collegesValidated prometheus.Counter
	collegesPassed    prometheus.Counter
	collegesFailed    prometheus.Counter
	averageScore      prometheus.Gauge
	threshold         prometheus.Gauge
	lastRun           prometheus.Gauge
	scores            prometheus.Histogram
	issues            *prometheus.CounterVec
	deductions        *prometheus.CounterVec
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(r *Recorder) {
		if namespace != "" {
			r.namespace = namespace
		}
	}
}

// WithSubsystem sets the subsystem for all metrics.
func WithSubsystem(subsystem string) Option {
	return func(r *Recorder) {
		if subsystem != "" {
			r.subsystem = subsystem
		}
	}
}

// WithScoreBuckets sets the histogram buckets for per-college scores.
func WithScoreBuckets(buckets []float64) Option {
	return func(r *Recorder) {
		if len(buckets) > 0 {
			r.scoreBuckets = buckets
		}
	}
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		namespace:    "college_directory",
		subsystem:    "validation",
		scoreBuckets: prometheus.LinearBuckets(10, 10, 10),
		registry:     prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.initializeMetrics()
	return r
}

func (r *Recorder) initializeMetrics() {
	auto := promauto.With(r.registry)

	r.collegesValidated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "colleges_validated_total",
		Help:      "Colleges scored in the run",
	})
	r.collegesPassed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "colleges_passed_total",
		Help:      "Colleges scoring at or above the pass threshold",
	})
	r.collegesFailed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "colleges_failed_total",
		Help:      "Colleges scoring below the pass threshold",
	})
	r.averageScore = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "average_score",
		Help:      "Mean college score of the run",
	})
	r.threshold = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "pass_threshold",
		Help:      "Score a college needs to pass",
	})
	r.lastRun = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time the run's report was generated",
	})
	r.scores = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "college_score",
		Help:      "Distribution of per-college scores",
		Buckets:   r.scoreBuckets,
	})
	r.issues = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "issues_total",
		Help:      "Issues found, by rule category and severity",
	}, []string{"category", "severity"})
	r.deductions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "deduction_points_total",
		Help:      "Score points deducted, by rule category",
	}, []string{"category"})
}

// ObserveReport records a finished validation run.
func (r *Recorder) ObserveReport(report *types.ValidationReport) {
	r.collegesValidated.Add(float64(report.TotalColleges))
	r.collegesPassed.Add(float64(report.PassedColleges))
	r.collegesFailed.Add(float64(report.FailedColleges))
	r.averageScore.Set(report.AverageScore)
	r.threshold.Set(float64(report.Threshold))
	if !report.GeneratedAt.IsZero() {
		r.lastRun.Set(float64(report.GeneratedAt.Unix()))
	}

	for _, verdict := range report.Results {
		r.scores.Observe(float64(verdict.Score))
		for _, issue := range verdict.Issues {
			r.issues.WithLabelValues(string(issue.Category), string(issue.Severity)).Inc()
			if issue.Deduction > 0 {
				r.deductions.WithLabelValues(string(issue.Category)).Add(float64(issue.Deduction))
			}
		}
	}
}

// Registry exposes the underlying registry, e.g. for an HTTP handler.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the metrics in text exposition format for a
// node-exporter textfile collector. The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
