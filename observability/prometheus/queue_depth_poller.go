package prometheus

import (
	"sync/atomic"
	"time"

	"github.com/basekit-go/basekit/taskrunner"
)

// PendingCounter is the sampling surface both runner flavors expose.
type PendingCounter interface {
	PendingTaskCount() int
}

// QueueDepthPoller periodically samples a runner's pending-queue depth into a
// metrics collector. Posts only update the depth gauge at post time; the
// poller keeps it fresh while a queue drains without new posts.
//
// The poller drives itself with a dedicated ThreadTaskRunner and a
// self-reposting delayed task.
type QueueDepthPoller struct {
	name     string
	target   PendingCounter
	metrics  taskrunner.Metrics
	interval time.Duration

	sampler *taskrunner.ThreadTaskRunner
	stopped atomic.Bool
}

// NewQueueDepthPoller starts sampling target every interval, reporting under
// runnerName. Call Stop to shut the poller down.
func NewQueueDepthPoller(runnerName string, target PendingCounter, metrics taskrunner.Metrics, interval time.Duration) *QueueDepthPoller {
	if target == nil {
		panic("prometheus: nil target")
	}
	if metrics == nil {
		panic("prometheus: nil metrics")
	}
	if interval <= 0 {
		panic("prometheus: interval must be positive")
	}

	p := &QueueDepthPoller{
		name:     runnerName,
		target:   target,
		metrics:  metrics,
		interval: interval,
		sampler:  taskrunner.NewThreadTaskRunner(taskrunner.MonotonicClock()),
	}
	p.sampler.PostDelayedTask(p.sample, interval)
	return p
}

func (p *QueueDepthPoller) sample() {
	if p.stopped.Load() {
		return
	}
	p.metrics.RecordQueueDepth(p.name, p.target.PendingTaskCount())
	p.sampler.PostDelayedTask(p.sample, p.interval)
}

// Stop halts sampling and joins the sampler. Idempotent.
func (p *QueueDepthPoller) Stop() {
	p.stopped.Store(true)
	p.sampler.Stop()
}
