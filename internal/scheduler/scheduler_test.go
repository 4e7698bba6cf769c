package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeBilling struct {
	mu         sync.Mutex
	enabled    bool
	billingDay int
	runs       []time.Time
}

func (f *fakeBilling) BillingEnabled(ctx context.Context) bool { return f.enabled }
func (f *fakeBilling) BillingDay(ctx context.Context) int      { return f.billingDay }

func (f *fakeBilling) GenerateMonthlyInvoices(ctx context.Context, now time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, now)
	return len(f.runs), nil
}

func (f *fakeBilling) runCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.runs)
}

func fixedNow(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 9, 0, 0, 0, time.UTC)
	}
}

func TestStart_DisabledStaysInactive(t *testing.T) {
	billing := &fakeBilling{enabled: false, billingDay: 1}
	s := New(billing, 24*time.Hour)
	s.now = fixedNow(2025, time.March, 1)

	assert.NoError(t, s.Start())
	assert.Equal(t, 0, billing.runCount())

	// Stop on a never-started scheduler is a no-op.
	s.Stop()
}

func TestStart_RunsImmediateTickOnBillingDay(t *testing.T) {
	billing := &fakeBilling{enabled: true, billingDay: 1}
	s := New(billing, 24*time.Hour)
	s.now = fixedNow(2025, time.March, 1)

	assert.NoError(t, s.Start())
	defer s.Stop()

	assert.Equal(t, 1, billing.runCount())
}

func TestStart_IsReentrant(t *testing.T) {
	billing := &fakeBilling{enabled: true, billingDay: 1}
	s := New(billing, 24*time.Hour)
	s.now = fixedNow(2025, time.March, 1)

	assert.NoError(t, s.Start())
	defer s.Stop()

	// A second Start must not run another immediate tick.
	assert.NoError(t, s.Start())
	assert.Equal(t, 1, billing.runCount())
}

func TestTick_SkipsWhenNotBillingDay(t *testing.T) {
	billing := &fakeBilling{enabled: true, billingDay: 1}
	s := New(billing, 24*time.Hour)
	s.now = fixedNow(2025, time.March, 15)

	s.Tick()

	assert.Equal(t, 0, billing.runCount())
}

func TestTick_GeneratesOnBillingDay(t *testing.T) {
	billing := &fakeBilling{enabled: true, billingDay: 15}
	s := New(billing, 24*time.Hour)
	s.now = fixedNow(2025, time.March, 15)

	s.Tick()
	s.Tick()

	// Each matching tick runs generation; idempotence lives in the store,
	// not the scheduler.
	assert.Equal(t, 2, billing.runCount())
	assert.Equal(t, 15, billing.runs[0].Day())
}
