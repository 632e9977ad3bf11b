// Package scheduler drives the periodic reminder check for the daemon.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ljmonteiro/companheiro/internal/config"
	"github.com/ljmonteiro/companheiro/internal/logging"
)

// Scheduler runs the reminder check on a fixed cadence (every minute on the
// minute by default). It is owned by the daemon lifecycle: started once on
// session init and stopped on teardown.
type Scheduler struct {
	cron      *cron.Cron
	checker   *ReminderChecker
	cfg       config.SchedulerConfig
	lastCheck time.Time
	mu        sync.Mutex
}

// NewScheduler creates a scheduler for the given checker.
func NewScheduler(checker *ReminderChecker, cfg config.SchedulerConfig) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		checker: checker,
		cfg:     cfg,
	}
}

// Start registers the minute tick and starts the cron loop.
func (s *Scheduler) Start() error {
	s.lastCheck = time.Now()

	_, err := s.cron.AddFunc(s.cfg.TickSpec, s.runTick)
	if err != nil {
		return fmt.Errorf("failed to add reminder tick: %w", err)
	}

	s.cron.Start()
	logging.DebugLog("scheduler started", "spec", s.cfg.TickSpec)
	return nil
}

// Stop stops the scheduler and waits for a running tick to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	logging.DebugLog("scheduler stopped")
}

// runTick runs one reminder check. Ticks after a suspend gap are skipped
// rather than caught up; missed ticks are simply not retried.
func (s *Scheduler) runTick() {
	s.mu.Lock()
	elapsed := time.Since(s.lastCheck)
	s.lastCheck = time.Now()
	s.mu.Unlock()

	if elapsed > s.cfg.SleepThreshold {
		logging.DebugLog("skipping stale tick after sleep", "elapsed", elapsed.Round(time.Second).String())
		return
	}

	if s.checker != nil {
		s.checker.Check()
	}
}

// NextRun returns the next scheduled tick time.
func (s *Scheduler) NextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
