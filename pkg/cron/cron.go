// Package cron schedules recurring maintenance jobs.
package cron

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
)

// shutdownTimeout bounds how long Shutdown waits for running jobs.
const shutdownTimeout = 30 * time.Second

// Scheduler runs registered jobs on their cron schedules.
type Scheduler struct {
	cron   *cron.Cron
	logger *log.Logger
}

// cronLogger adapts our logger to the cron logger interface. Routine
// messages are demoted to debug.
type cronLogger struct {
	logger *log.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append(keysAndValues, "err", err)...)
}

// NewScheduler returns a new Scheduler.
func NewScheduler(ctx context.Context) *Scheduler {
	logger := log.FromContext(ctx).WithPrefix("cron")
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cronLogger{logger})),
		logger: logger,
	}
}

// Start starts the Scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Shutdown stops the Scheduler and waits for running jobs to finish, up to
// the shutdown timeout.
func (s *Scheduler) Shutdown() {
	ctx, cancel := context.WithTimeout(s.cron.Stop(), shutdownTimeout)
	defer cancel()
	<-ctx.Done()
}

// AddFunc schedules a function and returns its entry id.
func (s *Scheduler) AddFunc(spec string, fn func()) (int, error) {
	id, err := s.cron.AddFunc(spec, fn)
	if err != nil {
		return 0, err //nolint:wrapcheck
	}
	s.logger.Debug("scheduled job", "id", int(id), "spec", spec)
	return int(id), nil
}

// Remove removes a scheduled job.
func (s *Scheduler) Remove(id int) {
	s.cron.Remove(cron.EntryID(id))
}
