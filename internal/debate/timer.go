package debate

import (
	"sync"
	"time"

	"github.com/foxseedlab/wasit/internal/clock"
)

// TurnTimer is a re-armable one-shot timer. Every Arm gets a generation; a
// callback whose generation is no longer current is dropped, so each arm fires
// at most once and never after a Cancel or re-Arm that happened before expiry.
type TurnTimer struct {
	clock clock.Clock

	mu        sync.Mutex
	gen       uint64
	pending   clock.Timer
	expiresAt time.Time
}

func NewTurnTimer(c clock.Clock) *TurnTimer {
	return &TurnTimer{clock: c}
}

func (t *TurnTimer) Arm(d time.Duration, onExpiry func()) time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	t.gen++
	gen := t.gen
	t.expiresAt = t.clock.Now().Add(d)
	t.pending = t.clock.AfterFunc(d, func() {
		t.mu.Lock()
		if t.gen != gen {
			t.mu.Unlock()
			return
		}
		t.pending = nil
		t.expiresAt = time.Time{}
		t.mu.Unlock()
		onExpiry()
	})
	return t.expiresAt
}

// Cancel reports whether an armed timer was cancelled.
func (t *TurnTimer) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	armed := t.pending != nil
	t.stopLocked()
	t.gen++
	return armed
}

func (t *TurnTimer) ExpiresAt() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending == nil {
		return time.Time{}, false
	}
	return t.expiresAt, true
}

func (t *TurnTimer) stopLocked() {
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
	t.expiresAt = time.Time{}
}
