package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// BillingRunner is the slice of the billing service the scheduler drives.
type BillingRunner interface {
	BillingEnabled(ctx context.Context) bool
	BillingDay(ctx context.Context) int
	GenerateMonthlyInvoices(ctx context.Context, now time.Time) (int, error)
}

// Scheduler runs the recurring billing check. It is an ordinary value
// constructed at startup and stopped at shutdown, not a process-wide
// singleton. Start runs one tick immediately, then one per interval; a
// tick only generates invoices when the day-of-month matches the billing
// day setting.
type Scheduler struct {
	billing  BillingRunner
	cron     *cron.Cron
	interval time.Duration

	mu      sync.Mutex
	started bool

	now func() time.Time
}

func New(billing BillingRunner, interval time.Duration) *Scheduler {
	return &Scheduler{
		billing:  billing,
		cron:     cron.New(),
		interval: interval,
		now:      time.Now,
	}
}

// Start begins the recurring tick. When billing is disabled in settings it
// logs and stays inactive; calling Start again on a running scheduler is a
// no-op.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if !s.billing.BillingEnabled(context.Background()) {
		log.Println("scheduler: automatic billing is disabled in settings")
		return nil
	}

	s.Tick()

	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.interval), s.Tick); err != nil {
		return fmt.Errorf("scheduling billing tick: %w", err)
	}

	s.cron.Start()
	s.started = true
	log.Printf("scheduler: billing tick scheduled every %s", s.interval)

	return nil
}

// Stop cancels future ticks. An in-flight tick is allowed to complete.
// No-op if the scheduler never started.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.started = false
	log.Println("scheduler: stopped")
}

// Tick performs one billing check: generate invoices when today's
// day-of-month matches the billing day, otherwise do nothing. Failures are
// logged; the next tick retries. The enabled flag is read once in Start,
// so disabling billing on a running scheduler takes effect after restart.
func (s *Scheduler) Tick() {
	ctx := context.Background()
	now := s.now()

	billingDay := s.billing.BillingDay(ctx)
	if now.Day() != billingDay {
		log.Printf("scheduler: not billing day (today %d, billing day %d)", now.Day(), billingDay)
		return
	}

	log.Println("scheduler: billing day, generating invoices")
	created, err := s.billing.GenerateMonthlyInvoices(ctx, now)
	if err != nil {
		log.Printf("scheduler: invoice generation failed: %v", err)
		return
	}

	log.Printf("scheduler: generated %d invoices", created)
}
