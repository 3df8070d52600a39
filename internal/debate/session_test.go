package debate

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestScenario_TwoRoundDebateRunsToCompletion(t *testing.T) {
	d, fc, n := newTestDirectory(t)
	s := mustCreate(t, d, createParams("ch-1", 30, 2))
	mustJoin(t, d, "ch-1", "A", SidePro)
	mustJoin(t, d, "ch-1", "B", SideKontra)

	started, err := d.Start("ch-1")
	if err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	if started.Phase != PhaseActive || started.CurrentRound != 1 {
		t.Fatalf("expected active round 1, got %s round %d", started.Phase, started.CurrentRound)
	}
	if !started.RoundEndsAt.Equal(testStart.Add(30 * time.Second)) {
		t.Fatalf("unexpected round deadline: %v", started.RoundEndsAt)
	}

	p, err := d.RecordPoint("ch-1", "A", "first argument")
	if err != nil {
		t.Fatalf("unexpected point error: %v", err)
	}
	if p.Seq != 1 || p.Round != 1 || p.Side != SidePro {
		t.Fatalf("unexpected point: %+v", p)
	}

	fc.Advance(30 * time.Second)
	mid, err := d.Summarize("ch-1")
	if err != nil {
		t.Fatalf("unexpected summary error: %v", err)
	}
	if mid.CurrentRound != 2 || mid.Phase != PhaseActive {
		t.Fatalf("expected active round 2, got %s round %d", mid.Phase, mid.CurrentRound)
	}
	if !mid.RoundEndsAt.Equal(testStart.Add(60 * time.Second)) {
		t.Fatalf("expected re-armed timer, got %v", mid.RoundEndsAt)
	}

	fc.Advance(30 * time.Second)
	if s.Phase() != PhaseEnded {
		t.Fatalf("expected ended, got %s", s.Phase())
	}
	if d.Len() != 0 {
		t.Fatalf("expected directory to be empty, got %d", d.Len())
	}
	if _, err := d.Summarize("ch-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound from directory, got %v", err)
	}

	final, err := s.Summarize()
	if err != nil {
		t.Fatalf("held reference summary must succeed, got %v", err)
	}
	if final.EndReason != EndReasonCompleted || len(final.Points) != 1 || final.Totals[SidePro] != 1 {
		t.Fatalf("unexpected final summary: %+v", final)
	}

	want := []NotificationKind{NotificationRoundStarted, NotificationRoundAdvanced, NotificationDebateEnded}
	if got := n.kinds(); !equalKinds(got, want) {
		t.Fatalf("unexpected notifications: %v", got)
	}
	if fc.Pending() != 0 {
		t.Fatalf("expected no armed timers, got %d", fc.Pending())
	}
}

func TestStart_OnlyAcceptedOnce(t *testing.T) {
	d, _, _ := newTestDirectory(t)
	mustCreate(t, d, createParams("ch-1", 30, 3))
	mustJoin(t, d, "ch-1", "A", SidePro)
	mustJoin(t, d, "ch-1", "B", SideKontra)

	if _, err := d.Start("ch-1"); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	if _, err := d.Start("ch-1"); !errors.Is(err, ErrInvalidPhase) {
		t.Fatalf("expected ErrInvalidPhase on second start, got %v", err)
	}
}

func TestStart_RequiresParticipantOnEachSide(t *testing.T) {
	d, _, _ := newTestDirectory(t)
	mustCreate(t, d, createParams("ch-1", 30, 1))

	if _, err := d.Start("ch-1"); !errors.Is(err, ErrInsufficientParticipants) {
		t.Fatalf("expected ErrInsufficientParticipants with empty rosters, got %v", err)
	}
	mustJoin(t, d, "ch-1", "A", SidePro)
	if _, err := d.Start("ch-1"); !errors.Is(err, ErrInsufficientParticipants) {
		t.Fatalf("expected ErrInsufficientParticipants with empty kontra, got %v", err)
	}
	mustJoin(t, d, "ch-1", "B", SideKontra)
	if _, err := d.Start("ch-1"); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
}

func TestJoin_SwitchingSidesMovesParticipant(t *testing.T) {
	d, _, _ := newTestDirectory(t)
	s := mustCreate(t, d, createParams("ch-1", 30, 1))

	res, err := d.Join("ch-1", "A", SidePro)
	if err != nil || res.Switched || res.AlreadyJoined || res.Previous != "" {
		t.Fatalf("unexpected first join result: %+v %v", res, err)
	}
	res, err = d.Join("ch-1", "A", SidePro)
	if err != nil || !res.AlreadyJoined || res.Switched {
		t.Fatalf("expected idempotent re-join, got %+v %v", res, err)
	}
	res, err = d.Join("ch-1", "A", SideKontra)
	if err != nil || !res.Switched || res.Previous != SidePro || res.Side != SideKontra {
		t.Fatalf("expected switch to kontra, got %+v %v", res, err)
	}

	s.mu.RLock()
	pro, kontra := s.roster.list(SidePro), s.roster.list(SideKontra)
	s.mu.RUnlock()
	if len(pro) != 0 || len(kontra) != 1 || kontra[0] != "A" {
		t.Fatalf("unexpected rosters after switch: pro=%v kontra=%v", pro, kontra)
	}
}

func TestJoin_RejectedOutsideSetupAndForUnknownSide(t *testing.T) {
	d, _, _ := newTestDirectory(t)
	mustCreate(t, d, createParams("ch-1", 30, 1))

	if _, err := d.Join("ch-1", "A", Side("neutral")); !errors.Is(err, ErrInvalidSide) {
		t.Fatalf("expected ErrInvalidSide, got %v", err)
	}
	mustJoin(t, d, "ch-1", "A", SidePro)
	mustJoin(t, d, "ch-1", "B", SideKontra)
	if _, err := d.Start("ch-1"); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	if _, err := d.Join("ch-1", "C", SidePro); !errors.Is(err, ErrInvalidPhase) {
		t.Fatalf("expected ErrInvalidPhase for join while active, got %v", err)
	}
}

func TestRecordPoint_RejectsNonParticipant(t *testing.T) {
	d, _, _ := newTestDirectory(t)
	s := mustCreate(t, d, createParams("ch-1", 30, 1))
	mustJoin(t, d, "ch-1", "A", SidePro)
	mustJoin(t, d, "ch-1", "B", SideKontra)
	if _, err := d.Start("ch-1"); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}

	if _, err := d.RecordPoint("ch-1", "stranger", "hello"); !errors.Is(err, ErrNotAParticipant) {
		t.Fatalf("expected ErrNotAParticipant, got %v", err)
	}
	summary, err := s.Summarize()
	if err != nil {
		t.Fatalf("unexpected summary error: %v", err)
	}
	if len(summary.Points) != 0 {
		t.Fatalf("ledger must be unchanged, got %d points", len(summary.Points))
	}
}

func TestRecordPoint_RequiresActiveAndText(t *testing.T) {
	d, _, _ := newTestDirectory(t)
	mustCreate(t, d, createParams("ch-1", 30, 1))
	mustJoin(t, d, "ch-1", "A", SidePro)
	mustJoin(t, d, "ch-1", "B", SideKontra)

	if _, err := d.RecordPoint("ch-1", "A", "too early"); !errors.Is(err, ErrInvalidPhase) {
		t.Fatalf("expected ErrInvalidPhase in setup, got %v", err)
	}
	if _, err := d.Start("ch-1"); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	if _, err := d.RecordPoint("ch-1", "A", "   "); !errors.Is(err, ErrEmptyPoint) {
		t.Fatalf("expected ErrEmptyPoint, got %v", err)
	}
	p, err := d.RecordPoint("ch-1", "B", "  trimmed  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Text != "trimmed" || p.Side != SideKontra || p.Seq != 1 {
		t.Fatalf("unexpected point: %+v", p)
	}
}

func TestRecordPoint_ConcurrentSequencesAreGapFree(t *testing.T) {
	d, _, _ := newTestDirectory(t)
	s := mustCreate(t, d, createParams("ch-1", 30, 1))
	const users = 8
	const perUser = 25
	for i := 0; i < users; i++ {
		side := SidePro
		if i%2 == 1 {
			side = SideKontra
		}
		mustJoin(t, d, "ch-1", fmt.Sprintf("user-%d", i), side)
	}
	if _, err := d.Start("ch-1"); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			for j := 0; j < perUser; j++ {
				if _, err := d.RecordPoint("ch-1", userID, "point"); err != nil {
					t.Errorf("unexpected point error: %v", err)
					return
				}
			}
		}(fmt.Sprintf("user-%d", i))
	}
	wg.Wait()

	summary, err := s.Summarize()
	if err != nil {
		t.Fatalf("unexpected summary error: %v", err)
	}
	if len(summary.Points) != users*perUser {
		t.Fatalf("expected %d points, got %d", users*perUser, len(summary.Points))
	}
	for i, p := range summary.Points {
		if p.Seq != i+1 {
			t.Fatalf("sequence gap at index %d: seq %d", i, p.Seq)
		}
	}
	if summary.Totals[SidePro]+summary.Totals[SideKontra] != users*perUser {
		t.Fatalf("unexpected totals: %v", summary.Totals)
	}
}

func TestSummarize_RejectedInSetup(t *testing.T) {
	d, _, _ := newTestDirectory(t)
	mustCreate(t, d, createParams("ch-1", 30, 1))
	if _, err := d.Summarize("ch-1"); !errors.Is(err, ErrInvalidPhase) {
		t.Fatalf("expected ErrInvalidPhase, got %v", err)
	}
}

func TestStop_ThenPendingExpiryIsNoop(t *testing.T) {
	d, fc, n := newTestDirectory(t)
	s := mustCreate(t, d, createParams("ch-1", 30, 3))
	mustJoin(t, d, "ch-1", "A", SidePro)
	mustJoin(t, d, "ch-1", "B", SideKontra)
	if _, err := d.Start("ch-1"); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}

	summary, err := d.Stop("ch-1")
	if err != nil {
		t.Fatalf("unexpected stop error: %v", err)
	}
	if summary.Phase != PhaseEnded || summary.EndReason != EndReasonStopped {
		t.Fatalf("unexpected stop summary: %+v", summary)
	}

	// A callback that was already scheduled must not re-arm or advance.
	s.onRoundExpired(1)
	fc.Advance(5 * time.Minute)

	final, _ := s.Summarize()
	if final.CurrentRound != 1 || final.Phase != PhaseEnded {
		t.Fatalf("stopped session mutated by expiry: %+v", final)
	}
	want := []NotificationKind{NotificationRoundStarted, NotificationDebateStopped}
	if got := n.kinds(); !equalKinds(got, want) {
		t.Fatalf("unexpected notifications: %v", got)
	}
	if fc.Pending() != 0 {
		t.Fatalf("expected no armed timers, got %d", fc.Pending())
	}
}

func TestStaleRoundExpiryIgnored(t *testing.T) {
	d, fc, _ := newTestDirectory(t)
	s := mustCreate(t, d, createParams("ch-1", 30, 3))
	mustJoin(t, d, "ch-1", "A", SidePro)
	mustJoin(t, d, "ch-1", "B", SideKontra)
	if _, err := d.Start("ch-1"); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	fc.Advance(30 * time.Second)

	s.onRoundExpired(1)

	summary, _ := s.Summarize()
	if summary.CurrentRound != 2 {
		t.Fatalf("expected stale expiry to leave round 2, got %d", summary.CurrentRound)
	}
}

func TestSessionStop_HeldReferenceAfterEnd(t *testing.T) {
	d, _, _ := newTestDirectory(t)
	s := mustCreate(t, d, createParams("ch-1", 30, 1))

	if _, err := s.Stop(); err != nil {
		t.Fatalf("unexpected stop error from setup: %v", err)
	}
	if _, err := s.Stop(); !errors.Is(err, ErrInvalidPhase) {
		t.Fatalf("expected ErrInvalidPhase on ended session, got %v", err)
	}
	if _, err := s.Join("A", SidePro); !errors.Is(err, ErrInvalidPhase) {
		t.Fatalf("expected ErrInvalidPhase for join on ended session, got %v", err)
	}
	if d.Len() != 0 {
		t.Fatalf("expected session removed, got %d", d.Len())
	}
}

func TestSetupTimeoutAbandonsIdleSession(t *testing.T) {
	d, fc, n := newTestDirectory(t)
	s := mustCreate(t, d, createParams("ch-1", 30, 1))
	mustJoin(t, d, "ch-1", "A", SidePro)

	fc.Advance(DefaultLimits().SetupTimeout)

	if s.Phase() != PhaseEnded {
		t.Fatalf("expected idle session to end, got %s", s.Phase())
	}
	if _, err := d.Get("ch-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	last := n.last()
	if last.Kind != NotificationDebateAbandoned || last.Summary.EndReason != EndReasonIdle {
		t.Fatalf("unexpected notification: %+v", last)
	}
}

func TestSetupTimeoutCancelledByStart(t *testing.T) {
	d, fc, _ := newTestDirectory(t)
	s := mustCreate(t, d, createParams("ch-1", 3000, 1))
	mustJoin(t, d, "ch-1", "A", SidePro)
	mustJoin(t, d, "ch-1", "B", SideKontra)
	if _, err := d.Start("ch-1"); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}

	fc.Advance(DefaultLimits().SetupTimeout)
	if s.Phase() != PhaseActive {
		t.Fatalf("started session must not be abandoned, got %s", s.Phase())
	}
}
