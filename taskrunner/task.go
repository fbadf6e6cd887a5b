package taskrunner

import (
	"time"

	"github.com/basekit-go/basekit/logger"
)

// Task is the unit of work (Closure).
//
// A task is opaque to the scheduler: it takes no arguments, returns nothing,
// and is expected to handle its own failures. A task that panics is recovered
// by the worker and reported through Metrics; it is never re-executed.
type Task func()

// Clock returns the current time as a duration since an arbitrary but
// consistent epoch. Production code injects MonotonicClock(); tests inject a
// controllable fake so delay ordering is deterministic without real time
// passing.
type Clock func() time.Duration

// MonotonicClock returns a Clock backed by the monotonic system clock.
func MonotonicClock() Clock {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}

// =============================================================================
// TaskRunner: task submission interface
// =============================================================================

// TaskRunner is the capability both runner flavors implement. Callers should
// depend on this interface rather than on a concrete execution strategy.
//
// Posting is non-blocking and safe to call concurrently from any goroutine,
// including from within a task running on the same runner.
type TaskRunner interface {
	// PostTask schedules task for immediate execution. Equivalent to
	// PostDelayedTask(task, 0).
	PostTask(task Task)

	// PostDelayedTask schedules task to become eligible after delay has
	// elapsed on the runner's clock. A negative delay is a caller bug and
	// panics.
	PostDelayedTask(task Task, delay time.Duration)
}

// =============================================================================
// Metrics: interface for observability and monitoring
// =============================================================================

// Metrics collects scheduler execution metrics. Implementations can forward
// to monitoring systems (Prometheus, StatsD, etc.).
//
// Methods must be safe for concurrent use and fast; they are called on hot
// paths, never under the scheduler lock.
type Metrics interface {
	// RecordTaskPosted is called once per posted task.
	RecordTaskPosted(runnerName string)

	// RecordTaskDuration records how long a task took to execute.
	RecordTaskDuration(runnerName string, duration time.Duration)

	// RecordTaskPanic records that a task panicked during execution.
	RecordTaskPanic(runnerName string, panicInfo any)

	// RecordQueueDepth records the pending-queue depth observed after a post.
	RecordQueueDepth(runnerName string, depth int)
}

// NilMetrics is a no-op Metrics implementation, used when no metrics
// collector is configured.
type NilMetrics struct{}

// RecordTaskPosted is a no-op.
func (m *NilMetrics) RecordTaskPosted(runnerName string) {}

// RecordTaskDuration is a no-op.
func (m *NilMetrics) RecordTaskDuration(runnerName string, duration time.Duration) {}

// RecordTaskPanic is a no-op.
func (m *NilMetrics) RecordTaskPanic(runnerName string, panicInfo any) {}

// RecordQueueDepth is a no-op.
func (m *NilMetrics) RecordQueueDepth(runnerName string, depth int) {}

// =============================================================================
// Config: optional runner configuration
// =============================================================================

// Config holds optional knobs shared by both runner flavors. The zero value
// (or a nil *Config) selects a no-op metrics collector and no logging.
type Config struct {
	// Name labels the runner in metrics and log lines.
	Name string

	// Metrics receives execution metrics. Defaults to NilMetrics.
	Metrics Metrics

	// Logger receives worker-level diagnostics such as task panics. A nil
	// logger discards them.
	Logger *logger.Logger
}

func (c *Config) name(fallback string) string {
	if c == nil || c.Name == "" {
		return fallback
	}
	return c.Name
}

func (c *Config) metrics() Metrics {
	if c == nil || c.Metrics == nil {
		return &NilMetrics{}
	}
	return c.Metrics
}

func (c *Config) logger() *logger.Logger {
	if c == nil {
		return nil
	}
	return c.Logger
}
