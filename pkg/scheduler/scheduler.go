// Package scheduler refreshes watched tickers on a cron schedule by
// dispatching ingestions for a trailing window of days.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/robfig/cron/v3"

	"github.com/pricebars/pkg/models"
)

// Dispatcher starts ingestions.
type Dispatcher interface {
	Save(req models.IngestionRequest) error
}

// Option wires a Scheduler.
type Option struct {
	Schedule   Schedule
	Dispatcher Dispatcher
	Logger     log.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Scheduler dispatches one ingestion per watch on every tick.
type Scheduler struct {
	cron       *cron.Cron
	watches    []Watch
	dispatcher Dispatcher
	logger     log.Logger
	now        func() time.Time
}

// New validates the cron expression and registers the refresh job.
func New(opt Option) (*Scheduler, error) {
	logger := opt.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	now := opt.Now
	if now == nil {
		now = time.Now
	}
	s := &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		watches:    opt.Schedule.Watches,
		dispatcher: opt.Dispatcher,
		logger:     logger,
		now:        now,
	}
	if _, err := s.cron.AddFunc(opt.Schedule.Cron, func() { s.RunNow() }); err != nil {
		return nil, fmt.Errorf("register refresh %q: %w", opt.Schedule.Cron, err)
	}
	return s, nil
}

// Start runs the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	_ = level.Info(s.logger).Log("msg", "scheduler started", "watches", len(s.watches))
}

// Stop stops the cron loop and waits for a running refresh, or for ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		_ = level.Info(s.logger).Log("msg", "scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunNow dispatches every watch immediately and returns how many were
// accepted. Only dispatch is synchronous; outcomes go to the pipeline reporter.
func (s *Scheduler) RunNow() int {
	today := models.DateOf(s.now())
	var dispatched int
	for _, w := range s.watches {
		req := models.IngestionRequest{
			OwnerID: w.Owner,
			Ticker:  w.Ticker,
			Start:   today.AddDays(-w.LookbackDays),
			End:     today,
		}
		if err := s.dispatcher.Save(req); err != nil {
			_ = level.Error(s.logger).Log("msg", "scheduled refresh rejected", "owner", w.Owner, "ticker", w.Ticker, "err", err)
			continue
		}
		dispatched++
	}
	_ = level.Debug(s.logger).Log("msg", "scheduled refresh dispatched", "dispatched", dispatched, "date", today)
	return dispatched
}
