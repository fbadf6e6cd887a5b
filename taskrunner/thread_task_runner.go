package taskrunner

import (
	"sync"
	"sync/atomic"
	"time"
)

// ThreadTaskRunner runs tasks on one dedicated worker goroutine.
//
// A single worker yields a total execution order: for items A and B, A runs
// before B whenever A's deadline is earlier, or the deadlines are equal and A
// was posted first.
//
// Example:
//
//	runner := taskrunner.NewThreadTaskRunner(taskrunner.MonotonicClock())
//	defer runner.Stop()
//	runner.PostTask(func() { ... })
//	runner.PostDelayedTask(func() { ... }, 100*time.Millisecond)
type ThreadTaskRunner struct {
	core     *schedulerCore
	wg       sync.WaitGroup
	detached atomic.Bool
	stopOnce sync.Once
}

var _ TaskRunner = (*ThreadTaskRunner)(nil)

// NewThreadTaskRunner creates a runner with one dedicated worker driven by
// clock.
func NewThreadTaskRunner(clock Clock) *ThreadTaskRunner {
	return NewThreadTaskRunnerWithConfig(clock, nil)
}

// NewThreadTaskRunnerWithConfig is NewThreadTaskRunner with optional metrics
// and logging configuration.
func NewThreadTaskRunnerWithConfig(clock Clock, config *Config) *ThreadTaskRunner {
	if clock == nil {
		panic("taskrunner: nil clock")
	}

	r := &ThreadTaskRunner{core: newSchedulerCore(1, clock, config)}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.core.waitAndRunTasks()
	}()
	return r
}

// PostTask schedules task for immediate execution.
func (r *ThreadTaskRunner) PostTask(task Task) {
	r.core.postDelayedTask(task, 0)
}

// PostDelayedTask schedules task to become eligible after delay. Panics on a
// negative delay.
func (r *ThreadTaskRunner) PostDelayedTask(task Task, delay time.Duration) {
	r.core.postDelayedTask(task, delay)
}

// Detach releases the worker so it outlives this wrapper. Detaching is
// one-way: a later Stop neither drains nor joins, and the worker keeps
// cycling on the scheduler core, which stays alive through the worker's own
// reference.
func (r *ThreadTaskRunner) Detach() {
	r.detached.Store(true)
}

// Stop drains and joins the worker unless the runner has been detached.
//
// Every item already queued runs before Stop returns, regardless of how much
// of its delay remains; nothing is discarded. Tasks posted while the drain is
// in progress (for example by draining tasks themselves) run as well. Stop is
// idempotent; posting after Stop has returned panics.
func (r *ThreadTaskRunner) Stop() {
	if r.detached.Load() {
		return
	}
	r.stopOnce.Do(func() {
		r.core.requestExit()
		r.wg.Wait()
		r.core.stopped.Store(true)
	})
}

// PendingTaskCount returns the number of items currently queued.
func (r *ThreadTaskRunner) PendingTaskCount() int {
	return r.core.pendingTaskCount()
}
