// Package jobs holds the recurring maintenance jobs and their registry.
package jobs

import (
	"context"
	"sync"
)

// Runner describes a schedulable job. Spec returns the cron expression and
// Func the closure the scheduler runs.
type Runner interface {
	Spec(context.Context) string
	Func(context.Context) func()
}

// Job is a registered job. ID is assigned by the scheduler once the job is
// added.
type Job struct {
	ID     int
	Runner Runner
}

var (
	mtx      sync.Mutex
	registry = make(map[string]*Job)
)

// Register adds a job to the registry. Jobs register themselves from init.
func Register(name string, runner Runner) {
	mtx.Lock()
	defer mtx.Unlock()
	registry[name] = &Job{Runner: runner}
}

// List returns the registered jobs by name.
func List() map[string]*Job {
	mtx.Lock()
	defer mtx.Unlock()
	return registry
}
