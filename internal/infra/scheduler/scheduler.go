package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job is one unit of periodic work. Failures are the job's own business.
type Job func(ctx context.Context)

// PollScheduler runs a job, then waits a fixed delay, forever. The wait
// always happens, whatever the job did, including panicking.
type PollScheduler struct {
	schedule cron.ConstantDelaySchedule
	job      Job
	logger   logrus.FieldLogger
	now      func() time.Time
	wait     func(ctx context.Context, until time.Time) bool
}

func NewPollScheduler(interval time.Duration, job Job, logger logrus.FieldLogger) *PollScheduler {
	return &PollScheduler{
		schedule: cron.Every(interval), // rounds to whole seconds, minimum 1s
		job:      job,
		logger:   logger,
		now:      time.Now,
		wait:     waitUntil,
	}
}

// Interval returns the effective delay between cycles.
func (s *PollScheduler) Interval() time.Duration {
	return s.schedule.Delay
}

// Run blocks until ctx is cancelled. Concurrent Run calls are independent,
// each cycle sees the context of its own call.
func (s *PollScheduler) Run(ctx context.Context) error {
	// cron.Recover keeps a panicking cycle from skipping the wait or killing the loop.
	job := cron.NewChain(cron.Recover(cronLogger{s.logger})).Then(cron.FuncJob(func() {
		s.job(ctx)
	}))
	s.logger.WithField("interval", s.schedule.Delay.String()).Info("Starting poll scheduler...")

	for {
		job.Run()

		next := s.schedule.Next(s.now())
		s.logger.WithField("next_run", next.Format(time.RFC3339)).Debug("Poll cycle finished, sleeping")
		if !s.wait(ctx, next) {
			s.logger.Info("Poll scheduler gracefully stopped.")
			return ctx.Err()
		}
	}
}

// waitUntil sleeps until the given moment. It returns false if ctx ended first.
func waitUntil(ctx context.Context, until time.Time) bool {
	timer := time.NewTimer(time.Until(until))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// cronLogger adapts logrus to the cron.Logger interface.
type cronLogger struct {
	logger logrus.FieldLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.WithFields(fields(keysAndValues)).Info(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.WithFields(fields(keysAndValues)).WithError(err).Error(msg)
}

func fields(keysAndValues []interface{}) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			f[key] = keysAndValues[i+1]
		}
	}
	return f
}
