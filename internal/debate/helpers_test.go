package debate

import (
	"sync"
	"testing"
	"time"

	"github.com/foxseedlab/wasit/internal/clock"
)

var testStart = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu    sync.Mutex
	items []Notification
}

func (r *recordingNotifier) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

func (r *recordingNotifier) kinds() []NotificationKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]NotificationKind, 0, len(r.items))
	for _, n := range r.items {
		out = append(out, n.Kind)
	}
	return out
}

func (r *recordingNotifier) last() Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[len(r.items)-1]
}

func newTestDirectory(t *testing.T) (*Directory, *clock.Fake, *recordingNotifier) {
	t.Helper()
	fc := clock.NewFake(testStart)
	n := &recordingNotifier{}
	return NewDirectory(fc, n, DefaultLimits()), fc, n
}

func createParams(channelID string, seconds, rounds int) CreateParams {
	return CreateParams{
		GuildID:   "guild-1",
		ChannelID: channelID,
		Initiator: "mod-1",
		Settings: Settings{
			Topic:         "X",
			RoundDuration: time.Duration(seconds) * time.Second,
			RoundCount:    rounds,
		},
	}
}

func mustCreate(t *testing.T, d *Directory, p CreateParams) *Session {
	t.Helper()
	s, err := d.Create(p)
	if err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}
	return s
}

func mustJoin(t *testing.T, d *Directory, channelID, userID string, side Side) {
	t.Helper()
	if _, err := d.Join(channelID, userID, side); err != nil {
		t.Fatalf("unexpected join error for %s: %v", userID, err)
	}
}

func equalKinds(a, b []NotificationKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
