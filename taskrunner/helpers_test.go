package taskrunner_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeClock is a controllable Clock for deterministic delay tests. Advancing
// it never blocks; workers re-check deadlines on their own timed waits.
type fakeClock struct {
	now atomic.Int64
}

func newFakeClock() *fakeClock {
	return &fakeClock{}
}

func (c *fakeClock) Now() time.Duration {
	return time.Duration(c.now.Load())
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now.Add(int64(d))
}

// frozenClock returns a Clock stuck at zero, making every immediate task
// ready and every delayed task perpetually pending.
func frozenClock() func() time.Duration {
	return func() time.Duration { return 0 }
}

// recorder collects executed task identifiers under its own lock.
type recorder struct {
	mu   sync.Mutex
	str  string
	seen map[int]int
}

func newRecorder() *recorder {
	return &recorder{seen: make(map[int]int)}
}

func (r *recorder) record(id int, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.str += text
	r.seen[id]++
}

func (r *recorder) snapshot() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.str
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}

func (r *recorder) exactlyOnce(n int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.seen) != n {
		return false
	}
	for _, c := range r.seen {
		if c != 1 {
			return false
		}
	}
	return true
}

// waitForCondition polls cond until it holds or the timeout expires.
func waitForCondition(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}

// expectPanic asserts that fn panics.
func expectPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Error("expected panic, got none")
		}
	}()
	fn()
}

// recordingMetrics counts metric callbacks for assertions.
type recordingMetrics struct {
	posted    atomic.Int64
	executed  atomic.Int64
	panics    atomic.Int64
	lastDepth atomic.Int64
}

func (m *recordingMetrics) RecordTaskPosted(runnerName string) {
	m.posted.Add(1)
}

func (m *recordingMetrics) RecordTaskDuration(runnerName string, duration time.Duration) {
	m.executed.Add(1)
}

func (m *recordingMetrics) RecordTaskPanic(runnerName string, panicInfo any) {
	m.panics.Add(1)
}

func (m *recordingMetrics) RecordQueueDepth(runnerName string, depth int) {
	m.lastDepth.Store(int64(depth))
}
