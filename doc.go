// Package basekit provides foundational runtime primitives for Go programs:
// a concurrent task scheduler, a coded error type, a JSON-like tagged-union
// value, weak object observation, file helpers, a leveled logger and a typed
// preferences store.
//
// The core subsystem is the task scheduler under basekit/taskrunner. The
// root package re-exports its commonly used types, so most callers only need
// this import:
//
//	runner := basekit.NewThreadPoolTaskRunner(4, basekit.MonotonicClock())
//	defer runner.Stop()
//
//	runner.PostTask(func() {
//		// runs on one of the pool workers
//	})
//	runner.PostDelayedTask(func() {
//		// runs once 100ms have elapsed
//	}, 100*time.Millisecond)
//
// When execution order matters, use a dedicated-thread runner; a single
// worker turns the (deadline, post order) queue into a total execution order:
//
//	seq := basekit.NewThreadTaskRunner(basekit.MonotonicClock())
//	defer seq.Stop()
//
// Stopping a runner drains it: every task already posted runs before Stop
// returns, whatever delay it was posted with. ThreadTaskRunner.Detach gives
// up that guarantee in exchange for a worker that outlives its wrapper.
//
// The remaining packages are self-contained utilities: see basekit/status,
// basekit/value, basekit/weakref, basekit/files, basekit/logger and
// basekit/preferences.
package basekit
