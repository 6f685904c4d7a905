package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// RefreshFunc rebuilds the dataset. It is called from cron goroutines.
type RefreshFunc func(ctx context.Context) error

// Scheduler runs the dataset refresh on a cron schedule.
type Scheduler struct {
	Cron    *cron.Cron
	Refresh RefreshFunc
	Logger  *slog.Logger
	Ctx     context.Context
}

// NewScheduler creates a new Scheduler. Specs carry a leading seconds field and
// a refresh still in flight when the next tick fires is skipped.
func NewScheduler(ctx context.Context, refresh RefreshFunc, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		Refresh: refresh,
		Logger:  logger,
		Ctx:     ctx,
	}
}

// Register schedules the refresh job on spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	s.Logger.Info("refresh scheduled", slog.String("cron", spec))
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("scheduler started")
}

// Stop stops the scheduler and waits for a running refresh to return.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Logger.Info("scheduler stopped")
}

// RunNow executes the refresh immediately and reports its error.
func (s *Scheduler) RunNow() error {
	return s.run()
}

// Next returns when the first registered job fires next.
func (s *Scheduler) Next() (time.Time, bool) {
	entries := s.Cron.Entries()
	if len(entries) == 0 {
		return time.Time{}, false
	}
	return entries[0].Next, true
}

func (s *Scheduler) refreshTask() {
	if err := s.run(); err != nil {
		s.Logger.Error("scheduled refresh failed", slog.Any("error", err))
	}
}

func (s *Scheduler) run() error {
	if err := s.Ctx.Err(); err != nil {
		return err
	}
	s.Logger.Info("running refresh task")
	began := time.Now()
	if err := s.Refresh(s.Ctx); err != nil {
		return err
	}
	s.Logger.Info("refresh task done", slog.Duration("elapsed", time.Since(began)))
	return nil
}
