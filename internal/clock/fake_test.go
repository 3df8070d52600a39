package clock

import (
	"testing"
	"time"
)

func TestFake_AdvanceFiresDueTimersInOrder(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := NewFake(start)
	var fired []string
	f.AfterFunc(2*time.Second, func() { fired = append(fired, "b") })
	f.AfterFunc(1*time.Second, func() { fired = append(fired, "a") })
	f.AfterFunc(5*time.Second, func() { fired = append(fired, "c") })

	f.Advance(2 * time.Second)

	if len(fired) != 2 || fired[0] != "a" || fired[1] != "b" {
		t.Fatalf("unexpected fire order: %v", fired)
	}
	if !f.Now().Equal(start.Add(2 * time.Second)) {
		t.Fatalf("unexpected now: %v", f.Now())
	}
	if f.Pending() != 1 {
		t.Fatalf("expected one pending timer, got %d", f.Pending())
	}
}

func TestFake_StopPreventsCallback(t *testing.T) {
	f := NewFake(time.Unix(0, 0))
	called := false
	timer := f.AfterFunc(time.Second, func() { called = true })

	if !timer.Stop() {
		t.Fatal("expected first stop to report an armed timer")
	}
	if timer.Stop() {
		t.Fatal("expected second stop to report false")
	}
	f.Advance(time.Minute)
	if called {
		t.Fatal("stopped timer must not fire")
	}
}

func TestFake_TimerArmedDuringCallbackFiresWithinSameAdvance(t *testing.T) {
	f := NewFake(time.Unix(0, 0))
	count := 0
	var rearm func()
	rearm = func() {
		count++
		if count < 3 {
			f.AfterFunc(10*time.Second, rearm)
		}
	}
	f.AfterFunc(10*time.Second, rearm)

	f.Advance(25 * time.Second)
	if count != 2 {
		t.Fatalf("expected two fires within 25s, got %d", count)
	}
	f.Advance(5 * time.Second)
	if count != 3 {
		t.Fatalf("expected third fire at 30s, got %d", count)
	}
}

func TestFake_StopAfterFireReportsFalse(t *testing.T) {
	f := NewFake(time.Unix(0, 0))
	timer := f.AfterFunc(time.Second, func() {})
	f.Advance(time.Second)
	if timer.Stop() {
		t.Fatal("expected stop after fire to report false")
	}
}
