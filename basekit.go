package basekit

import "github.com/basekit-go/basekit/taskrunner"

// Re-export commonly used scheduler types so most callers only import the
// root package.

// Task is the unit of work (Closure).
type Task = taskrunner.Task

// Clock returns the current time as a duration since an arbitrary epoch.
type Clock = taskrunner.Clock

// TaskRunner is the interface for posting tasks.
type TaskRunner = taskrunner.TaskRunner

// ThreadTaskRunner runs tasks on one dedicated worker goroutine.
type ThreadTaskRunner = taskrunner.ThreadTaskRunner

// ThreadPoolTaskRunner runs tasks on a pool of worker goroutines.
type ThreadPoolTaskRunner = taskrunner.ThreadPoolTaskRunner

// Config holds optional runner configuration.
type Config = taskrunner.Config

// Constructors and helpers, re-exported for convenience.
var (
	MonotonicClock                    = taskrunner.MonotonicClock
	NewThreadTaskRunner               = taskrunner.NewThreadTaskRunner
	NewThreadTaskRunnerWithConfig     = taskrunner.NewThreadTaskRunnerWithConfig
	NewThreadPoolTaskRunner           = taskrunner.NewThreadPoolTaskRunner
	NewThreadPoolTaskRunnerWithConfig = taskrunner.NewThreadPoolTaskRunnerWithConfig
)
