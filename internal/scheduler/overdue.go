// Package scheduler runs the periodic overdue scan on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mrlokans/smartlibrary/internal/config"
)

// SourceCron marks scans started by the schedule.
const SourceCron = "cron"

// Trigger starts one overdue scan. The task queue client enqueues it;
// TriggerFunc can run it in-process.
type Trigger interface {
	TriggerOverdueScan(ctx context.Context, source string) error
}

// TriggerFunc adapts a function to Trigger.
type TriggerFunc func(ctx context.Context, source string) error

func (f TriggerFunc) TriggerOverdueScan(ctx context.Context, source string) error {
	return f(ctx, source)
}

func newParser() cron.Parser {
	return cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
}

// ValidateSchedule checks a standard five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := newParser().Parse(schedule)
	return err
}

// OverdueScheduler fires the overdue scan on a cron schedule evaluated in the
// library's time zone.
type OverdueScheduler struct {
	trigger  Trigger
	schedule string
	loc      *time.Location
	logger   *zap.Logger

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
	done      chan struct{}
}

// NewOverdueScheduler creates a new scheduler instance
func NewOverdueScheduler(trigger Trigger, cfg config.Overdue, loc *time.Location, logger *zap.Logger) *OverdueScheduler {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OverdueScheduler{
		trigger:  trigger,
		schedule: cfg.ScanSchedule,
		loc:      loc,
		logger:   logger.Named("scheduler"),
	}
}

// Start schedules the scan. The scheduler stops on its own when ctx is
// cancelled.
func (s *OverdueScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	c := cron.New(cron.WithParser(newParser()), cron.WithLocation(s.loc))
	entryID, err := c.AddFunc(s.schedule, func() {
		s.run(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to schedule overdue scan: %w", err)
	}

	s.cron = c
	s.entryID = entryID
	s.done = make(chan struct{})
	s.cron.Start()
	s.isRunning = true

	s.logger.Info("overdue scheduler started",
		zap.String("schedule", s.schedule),
		zap.String("time_zone", s.loc.String()),
		zap.Time("next_run", s.cron.Entry(entryID).Next))

	go func(done chan struct{}) {
		select {
		case <-ctx.Done():
			s.Stop()
		case <-done:
		}
	}(s.done)

	return nil
}

// Stop waits for a running scan to complete and stops the schedule.
func (s *OverdueScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	close(s.done)
	<-s.cron.Stop().Done()
	s.isRunning = false

	s.logger.Info("overdue scheduler stopped")
}

// RunNow triggers a scan immediately and waits for the trigger to return.
func (s *OverdueScheduler) RunNow(ctx context.Context, source string) error {
	return s.trigger.TriggerOverdueScan(ctx, source)
}

// IsRunning returns whether the scheduler is active
func (s *OverdueScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the next scan will occur, or nil when stopped.
func (s *OverdueScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	entry := s.cron.Entry(s.entryID)
	if !entry.Valid() {
		return nil
	}
	t := entry.Next
	return &t
}

func (s *OverdueScheduler) run(ctx context.Context) {
	if err := s.trigger.TriggerOverdueScan(ctx, SourceCron); err != nil {
		s.logger.Error("scheduled overdue scan failed", zap.Error(err))
	}
}
