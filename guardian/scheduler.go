package main

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// SchedulerHandle owns the guardian's cron entries and their lifecycle.
// Jobs are chained with a re-entrancy guard, so a sweep that overruns its
// interval causes the next tick to be skipped rather than stacked, and
// with panic recovery, so no single job can crash the process.
type SchedulerHandle struct {
	cron   *cron.Cron
	logger zerolog.Logger
}

func NewScheduler(logger zerolog.Logger) *SchedulerHandle {
	cronLogger := cronLogAdapter{logger: logger}
	return &SchedulerHandle{
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cronLogger),
			cron.Recover(cronLogger),
		)),
		logger: logger,
	}
}

// AddJob registers fn under the given cron spec.
func (s *SchedulerHandle) AddJob(spec string, fn func()) error {
	_, err := s.cron.AddFunc(spec, fn)
	return err
}

// Start launches the scheduler on its own goroutine.
func (s *SchedulerHandle) Start() {
	s.cron.Start()
}

// Stop prevents further ticks and returns a context that completes once
// in-flight jobs have finished.
func (s *SchedulerHandle) Stop() context.Context {
	return s.cron.Stop()
}

// cronLogAdapter bridges robfig/cron logging onto zerolog.
type cronLogAdapter struct {
	logger zerolog.Logger
}

func (l cronLogAdapter) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info().Fields(keysAndValues).Msg(msg)
}

func (l cronLogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
