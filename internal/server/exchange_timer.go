package server

import (
	"sync"
	"time"

	"github.com/coder/quartz"
)

// ExchangeTimers holds the one-shot exchange-phase deadline per game.
// The clock is injected so tests can drive expiry with a mock.
type ExchangeTimers struct {
	clock  quartz.Clock
	mu     sync.Mutex
	timers map[string]*quartz.Timer
}

// NewExchangeTimers creates a timer set on the given clock
func NewExchangeTimers(clock quartz.Clock) *ExchangeTimers {
	return &ExchangeTimers{
		clock:  clock,
		timers: make(map[string]*quartz.Timer),
	}
}

// Schedule arms (or re-arms) the deadline for a game. fn runs once on
// expiry unless Cancel is called first.
func (t *ExchangeTimers) Schedule(gameID string, d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if timer, ok := t.timers[gameID]; ok {
		timer.Stop()
	}
	t.timers[gameID] = t.clock.AfterFunc(d, func() {
		t.mu.Lock()
		delete(t.timers, gameID)
		t.mu.Unlock()
		fn()
	})
}

// Cancel disarms the deadline for a game
func (t *ExchangeTimers) Cancel(gameID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if timer, ok := t.timers[gameID]; ok {
		timer.Stop()
		delete(t.timers, gameID)
	}
}
