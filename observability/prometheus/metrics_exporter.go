// Package prometheus adapts taskrunner metrics to Prometheus collectors.
package prometheus

import (
	"errors"
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/basekit-go/basekit/taskrunner"
)

// ExporterOptions controls collector configuration.
type ExporterOptions struct {
	DurationBuckets []float64
}

// MetricsExporter implements taskrunner.Metrics on top of Prometheus
// collectors.
type MetricsExporter struct {
	taskPostedTotal     *prom.CounterVec
	taskDurationSeconds *prom.HistogramVec
	taskPanicTotal      *prom.CounterVec
	queueDepth          *prom.GaugeVec
}

var _ taskrunner.Metrics = (*MetricsExporter)(nil)

// NewMetricsExporter creates and registers the collectors. Registration is
// idempotent: collectors already present in reg are reused.
func NewMetricsExporter(namespace string, reg prom.Registerer, opts ExporterOptions) (*MetricsExporter, error) {
	if namespace == "" {
		namespace = "basekit"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	buckets := opts.DurationBuckets
	if len(buckets) == 0 {
		buckets = prom.DefBuckets
	}

	postedVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "task_posted_total",
		Help:      "Total number of posted tasks.",
	}, []string{"runner"})
	durationVec := prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "task_duration_seconds",
		Help:      "Task execution duration in seconds.",
		Buckets:   buckets,
	}, []string{"runner"})
	panicVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "task_panic_total",
		Help:      "Total number of task panics.",
	}, []string{"runner"})
	queueDepthVec := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "queue_depth",
		Help:      "Pending-queue depth observed after a post.",
	}, []string{"runner"})

	var err error
	if postedVec, err = registerCollector(reg, postedVec); err != nil {
		return nil, err
	}
	if durationVec, err = registerCollector(reg, durationVec); err != nil {
		return nil, err
	}
	if panicVec, err = registerCollector(reg, panicVec); err != nil {
		return nil, err
	}
	if queueDepthVec, err = registerCollector(reg, queueDepthVec); err != nil {
		return nil, err
	}

	return &MetricsExporter{
		taskPostedTotal:     postedVec,
		taskDurationSeconds: durationVec,
		taskPanicTotal:      panicVec,
		queueDepth:          queueDepthVec,
	}, nil
}

// RecordTaskPosted counts posted tasks.
func (m *MetricsExporter) RecordTaskPosted(runnerName string) {
	if m == nil {
		return
	}
	m.taskPostedTotal.WithLabelValues(normalizeLabel(runnerName)).Inc()
}

// RecordTaskDuration records task execution duration.
func (m *MetricsExporter) RecordTaskDuration(runnerName string, duration time.Duration) {
	if m == nil {
		return
	}
	m.taskDurationSeconds.WithLabelValues(normalizeLabel(runnerName)).Observe(duration.Seconds())
}

// RecordTaskPanic counts task panics.
func (m *MetricsExporter) RecordTaskPanic(runnerName string, panicInfo any) {
	if m == nil {
		return
	}
	m.taskPanicTotal.WithLabelValues(normalizeLabel(runnerName)).Inc()
}

// RecordQueueDepth tracks the pending-queue depth.
func (m *MetricsExporter) RecordQueueDepth(runnerName string, depth int) {
	if m == nil {
		return
	}
	m.queueDepth.WithLabelValues(normalizeLabel(runnerName)).Set(float64(depth))
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

func registerCollector[T prom.Collector](reg prom.Registerer, collector T) (T, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var alreadyRegisteredErr prom.AlreadyRegisteredError
	if errors.As(err, &alreadyRegisteredErr) {
		existing, ok := alreadyRegisteredErr.ExistingCollector.(T)
		if !ok {
			return collector, fmt.Errorf("collector type mismatch for %T", collector)
		}
		return existing, nil
	}

	return collector, err
}
