package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/Lukk17/exchangeApp/internal/metrics"
	"github.com/Lukk17/exchangeApp/internal/middleware"
)

// Job is one unit of scheduled work.
type Job func(ctx context.Context) error

// Scheduler runs jobs in the background with a fixed delay between the end of
// one run and the start of the next. A failing or panicking run is logged and
// the job keeps its schedule.
type Scheduler struct {
	logger  *slog.Logger
	metrics *metrics.Metrics // Optional
	wg      sync.WaitGroup
}

// New creates a Scheduler. m may be nil.
func New(logger *slog.Logger, m *metrics.Metrics) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{logger: logger, metrics: m}
}

// Every starts job in its own goroutine until ctx is cancelled. When runAtStart
// is set the first run happens immediately, otherwise after one delay.
func (s *Scheduler) Every(ctx context.Context, name string, delay time.Duration, runAtStart bool, job Job) error {
	if delay <= 0 {
		return fmt.Errorf("scheduler: job %q needs a positive delay, got %s", name, delay)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(ctx, name, delay, runAtStart, job)
	}()

	s.logger.Info("Scheduled job registered", slog.String("job", name), slog.Duration("delay", delay))
	return nil
}

// Wait blocks until every job goroutine has returned.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, name string, delay time.Duration, runAtStart bool, job Job) {
	if runAtStart {
		s.RunOnce(ctx, name, job)
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Stopping scheduled job", slog.String("job", name))
			return
		case <-timer.C:
			s.RunOnce(ctx, name, job)
			timer.Reset(delay)
		}
	}
}

// RunOnce executes a single run of job, converting a panic into a logged failure.
func (s *Scheduler) RunOnce(ctx context.Context, name string, job Job) (err error) {
	logger := s.logger.With(slog.String("job", name))
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", name, r)
			logger.Error("Scheduled job panicked",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
		}

		outcome := "success"
		if err != nil {
			outcome = "failure"
		}
		if s.metrics != nil {
			s.metrics.JobRunsTotal.WithLabelValues(name, outcome).Inc()
		}
	}()

	err = job(middleware.WithLogger(ctx, logger))
	if err != nil {
		logger.Error("Scheduled job failed", slog.String("error", err.Error()), slog.Duration("duration", time.Since(start)))
		return err
	}

	logger.Debug("Scheduled job finished", slog.Duration("duration", time.Since(start)))
	return nil
}
