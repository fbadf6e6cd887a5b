package taskrunner

import (
	"fmt"
	"sync"
	"time"
)

// ThreadPoolTaskRunner runs tasks on a pool of worker goroutines sharing one
// scheduler core.
//
// With more than one worker there is no total execution order: ready items
// become eligible in approximately deadline order but may run concurrently on
// different workers and complete in arbitrary relative order. An item is
// still never executed before its deadline elapses. This is a deliberate
// throughput-over-ordering trade-off; use ThreadTaskRunner when order
// matters.
//
// Example:
//
//	runner := taskrunner.NewThreadPoolTaskRunner(8, taskrunner.MonotonicClock())
//	defer runner.Stop()
//	runner.PostTask(func() { ... })
type ThreadPoolTaskRunner struct {
	core       *schedulerCore
	threadsNum int
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

var _ TaskRunner = (*ThreadPoolTaskRunner)(nil)

// NewThreadPoolTaskRunner creates a runner with threadsNum workers driven by
// clock. threadsNum < 1 is a caller bug and panics.
func NewThreadPoolTaskRunner(threadsNum int, clock Clock) *ThreadPoolTaskRunner {
	return NewThreadPoolTaskRunnerWithConfig(threadsNum, clock, nil)
}

// NewThreadPoolTaskRunnerWithConfig is NewThreadPoolTaskRunner with optional
// metrics and logging configuration.
func NewThreadPoolTaskRunnerWithConfig(threadsNum int, clock Clock, config *Config) *ThreadPoolTaskRunner {
	if threadsNum < 1 {
		panic(fmt.Sprintf("taskrunner: threadsNum must be positive, got %d", threadsNum))
	}
	if clock == nil {
		panic("taskrunner: nil clock")
	}

	r := &ThreadPoolTaskRunner{
		core:       newSchedulerCore(threadsNum, clock, config),
		threadsNum: threadsNum,
	}
	for i := 0; i < threadsNum; i++ {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			r.core.waitAndRunTasks()
		}()
	}
	return r
}

// PostTask schedules task for immediate execution.
func (r *ThreadPoolTaskRunner) PostTask(task Task) {
	r.core.postDelayedTask(task, 0)
}

// PostDelayedTask schedules task to become eligible after delay. Panics on a
// negative delay.
func (r *ThreadPoolTaskRunner) PostDelayedTask(task Task, delay time.Duration) {
	r.core.postDelayedTask(task, delay)
}

// ThreadsNum returns the configured, immutable worker count.
func (r *ThreadPoolTaskRunner) ThreadsNum() int {
	return r.threadsNum
}

// Stop drains the queue and joins all workers. There is no detach option for
// pools.
//
// Every item already queued runs before Stop returns, regardless of how much
// of its delay remains; nothing is discarded. Stop is idempotent; posting
// after Stop has returned panics.
func (r *ThreadPoolTaskRunner) Stop() {
	r.stopOnce.Do(func() {
		r.core.requestExit()
		r.wg.Wait()
		r.core.stopped.Store(true)
	})
}

// PendingTaskCount returns the number of items currently queued.
func (r *ThreadPoolTaskRunner) PendingTaskCount() int {
	return r.core.pendingTaskCount()
}
