package taskrunner

import (
	"container/heap"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/basekit-go/basekit/logger"
)

// schedulerCore is the state shared between a runner wrapper and every worker
// goroutine bound to it: the deadline-ordered queue, the lock guarding it, the
// wake/exit channels and the monotonic sequence counter.
//
// The core is held by reference from both sides, so it outlives whichever
// side goes away first. That is what makes ThreadTaskRunner.Detach safe: the
// wrapper can be dropped while the worker keeps the core alive.
type schedulerCore struct {
	clock   Clock
	name    string
	metrics Metrics
	log     *logger.Logger

	mu      sync.Mutex
	queue   itemHeap
	nextSeq uint64
	exiting bool

	// wake carries "the queue minimum changed" hints to idle workers. It is
	// buffered to the worker count so concurrent posts cannot lose a hint.
	wake chan struct{}

	// done is closed exactly once when exit is requested; it wakes every
	// worker regardless of how many wake hints are buffered.
	done chan struct{}

	// stopped flips after all workers have been joined. Posting past this
	// point would queue work nothing can ever run.
	stopped atomic.Bool
}

func newSchedulerCore(workers int, clock Clock, config *Config) *schedulerCore {
	return &schedulerCore{
		clock:   clock,
		name:    config.name("taskrunner"),
		metrics: config.metrics(),
		log:     config.logger(),
		wake:    make(chan struct{}, workers),
		done:    make(chan struct{}),
	}
}

// postDelayedTask builds an item and pushes it into the queue. The lock is
// held only for the queue mutation; waking a worker happens outside it.
func (c *schedulerCore) postDelayedTask(task Task, delay time.Duration) {
	if task == nil {
		panic("taskrunner: nil task")
	}
	if delay < 0 {
		panic("taskrunner: negative delay")
	}
	if c.stopped.Load() {
		panic("taskrunner: post after Stop")
	}

	deadline := c.clock() + delay

	c.mu.Lock()
	it := &item{deadline: deadline, seq: c.nextSeq, task: task}
	c.nextSeq++
	heap.Push(&c.queue, it)
	newMin := c.queue[0] == it
	depth := len(c.queue)
	c.mu.Unlock()

	c.metrics.RecordTaskPosted(c.name)
	c.metrics.RecordQueueDepth(c.name, depth)

	// Only a new queue minimum changes what a waiting worker should be
	// waiting for. Workers re-evaluate the queue themselves between batches.
	if newMin {
		select {
		case c.wake <- struct{}{}:
		default:
		}
	}
}

func (c *schedulerCore) pendingTaskCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// requestExit flips the exit flag and wakes every worker. Workers then drain
// the queue, running the remaining items regardless of their deadlines, and
// exit once it is empty.
func (c *schedulerCore) requestExit() {
	c.mu.Lock()
	c.exiting = true
	c.mu.Unlock()
	close(c.done)
}

// waitAndRunTasks is the worker loop. Each worker cycles through
// Idle-Waiting, Draining and Executing until exit is requested and the queue
// has been fully drained.
//
// Invariant: the lock is held only while mutating the queue, never while a
// task runs. Tasks may therefore post to the same runner without deadlocking,
// and a slow task never blocks admissions or the other workers.
func (c *schedulerCore) waitAndRunTasks() {
	var batch []Task // reused across iterations

	for {
		c.mu.Lock()

		if c.exiting {
			// Shutdown drain: everything still queued runs now, remaining
			// delays included. Tasks posted by draining tasks are picked up
			// on the next pass.
			batch = c.popAllLocked(batch[:0])
			c.mu.Unlock()
			if len(batch) == 0 {
				return
			}
			c.runBatch(batch)
			continue
		}

		now := c.clock()
		batch = c.popReadyLocked(batch[:0], now)
		if len(batch) > 0 {
			c.mu.Unlock()
			c.runBatch(batch)
			continue
		}

		// Nothing ready. Wait indefinitely on an empty queue, or until the
		// earliest deadline otherwise. Any wake, timeout or stale hint just
		// leads back to re-checking the queue under the lock.
		var timer *time.Timer
		var timeout <-chan time.Time
		if len(c.queue) > 0 {
			timer = time.NewTimer(c.queue[0].deadline - now)
			timeout = timer.C
		}
		c.mu.Unlock()

		select {
		case <-timeout:
		case <-c.wake:
		case <-c.done:
		}
		if timer != nil {
			timer.Stop()
		}
	}
}

// popReadyLocked moves every item with deadline <= now into batch, in
// ascending (deadline, seq) order. Caller holds the lock.
func (c *schedulerCore) popReadyLocked(batch []Task, now time.Duration) []Task {
	for len(c.queue) > 0 && c.queue[0].deadline <= now {
		batch = append(batch, heap.Pop(&c.queue).(*item).task)
	}
	return batch
}

// popAllLocked moves the entire queue into batch in (deadline, seq) order,
// ignoring deadlines. Caller holds the lock.
func (c *schedulerCore) popAllLocked(batch []Task) []Task {
	for len(c.queue) > 0 {
		batch = append(batch, heap.Pop(&c.queue).(*item).task)
	}
	return batch
}

func (c *schedulerCore) runBatch(batch []Task) {
	for i, task := range batch {
		c.runTask(task)
		batch[i] = nil // release the closure before the next iteration
	}
}

func (c *schedulerCore) runTask(task Task) {
	start := time.Now()
	defer func() {
		c.metrics.RecordTaskDuration(c.name, time.Since(start))
		if r := recover(); r != nil {
			c.metrics.RecordTaskPanic(c.name, r)
			c.log.Errorf("[%s] task panicked: %v\n%s", c.name, r, debug.Stack())
		}
	}()
	task()
}
