package debate

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/foxseedlab/wasit/internal/clock"
)

type JoinResult struct {
	Side          Side
	Previous      Side
	Switched      bool
	AlreadyJoined bool
}

// Session is one channel's debate. Exported methods take the session lock;
// the Directory calls the unexported variants under a lock it already holds.
type Session struct {
	id        string
	guildID   string
	channelID string
	createdBy string
	createdAt time.Time
	settings  Settings

	clock    clock.Clock
	notifier Notifier
	release  func(*Session)

	mu           sync.RWMutex
	phase        Phase
	currentRound int
	startedAt    time.Time
	endedAt      time.Time
	endReason    EndReason
	detached     bool
	roster       *roster
	ledger       ledger
	turn         *TurnTimer
	idle         *TurnTimer
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

func (s *Session) Join(userID string, side Side) (JoinResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.join(userID, side)
}

func (s *Session) Start() (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.start()
}

func (s *Session) RecordPoint(userID, text string) (Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordPoint(userID, text)
}

func (s *Session) Summarize() (Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summarize()
}

func (s *Session) Stop() (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop(EndReasonStopped)
}

func (s *Session) join(userID string, side Side) (JoinResult, error) {
	if s.phase != PhaseSetup {
		return JoinResult{}, fmt.Errorf("%w: join requires setup, session is %s", ErrInvalidPhase, s.phase)
	}
	if !side.Valid() {
		return JoinResult{}, fmt.Errorf("%w: %q", ErrInvalidSide, side)
	}
	previous := s.roster.assign(userID, side)
	return JoinResult{
		Side:          side,
		Previous:      previous,
		Switched:      previous != "" && previous != side,
		AlreadyJoined: previous == side,
	}, nil
}

func (s *Session) start() (Summary, error) {
	if s.phase != PhaseSetup {
		return Summary{}, fmt.Errorf("%w: start requires setup, session is %s", ErrInvalidPhase, s.phase)
	}
	for _, side := range Sides {
		if s.roster.count(side) == 0 {
			return Summary{}, fmt.Errorf("%w: %s has no participants", ErrInsufficientParticipants, side.Label())
		}
	}
	s.idle.Cancel()
	s.phase = PhaseActive
	s.startedAt = s.clock.Now()
	s.currentRound = 1
	s.armRoundLocked()
	slog.Info("debate started", "session_id", s.id, "channel_id", s.channelID, "rounds", s.settings.RoundCount)
	summary := s.snapshotLocked()
	s.notifier.Notify(Notification{Kind: NotificationRoundStarted, Summary: summary})
	return summary, nil
}

func (s *Session) recordPoint(userID, text string) (Point, error) {
	if s.phase != PhaseActive {
		return Point{}, fmt.Errorf("%w: points require an active debate, session is %s", ErrInvalidPhase, s.phase)
	}
	side, ok := s.roster.sideOf(userID)
	if !ok {
		return Point{}, ErrNotAParticipant
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Point{}, ErrEmptyPoint
	}
	return s.ledger.append(side, userID, text, s.currentRound, s.clock.Now()), nil
}

func (s *Session) summarize() (Summary, error) {
	if s.phase == PhaseSetup {
		return Summary{}, fmt.Errorf("%w: summary is available once the debate has started", ErrInvalidPhase)
	}
	return s.snapshotLocked(), nil
}

func (s *Session) stop(reason EndReason) (Summary, error) {
	if s.phase == PhaseEnded {
		return Summary{}, fmt.Errorf("%w: session already ended", ErrInvalidPhase)
	}
	s.endLocked(reason)
	summary := s.snapshotLocked()
	s.notifier.Notify(Notification{Kind: NotificationDebateStopped, Summary: summary})
	return summary, nil
}

func (s *Session) armRoundLocked() {
	round := s.currentRound
	s.turn.Arm(s.settings.RoundDuration, func() {
		s.onRoundExpired(round)
	})
}

func (s *Session) onRoundExpired(round int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseActive || s.currentRound != round {
		slog.Debug("stale round expiry ignored", "session_id", s.id, "round", round, "phase", s.phase)
		return
	}
	if s.currentRound < s.settings.RoundCount {
		s.currentRound++
		s.armRoundLocked()
		slog.Info("debate round advanced", "session_id", s.id, "channel_id", s.channelID, "round", s.currentRound)
		s.notifier.Notify(Notification{Kind: NotificationRoundAdvanced, Summary: s.snapshotLocked()})
		return
	}
	s.endLocked(EndReasonCompleted)
	s.notifier.Notify(Notification{Kind: NotificationDebateEnded, Summary: s.snapshotLocked()})
}

func (s *Session) onSetupExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseSetup {
		return
	}
	s.endLocked(EndReasonIdle)
	s.notifier.Notify(Notification{Kind: NotificationDebateAbandoned, Summary: s.snapshotLocked()})
}

func (s *Session) endLocked(reason EndReason) {
	s.turn.Cancel()
	s.idle.Cancel()
	s.phase = PhaseEnded
	s.endedAt = s.clock.Now()
	s.endReason = reason
	if !s.detached {
		s.detached = true
		if s.release != nil {
			s.release(s)
		}
	}
	slog.Info("debate ended", "session_id", s.id, "channel_id", s.channelID, "reason", reason, "points", len(s.ledger.points))
}

func (s *Session) snapshotLocked() Summary {
	summary := Summary{
		SessionID:     s.id,
		GuildID:       s.guildID,
		ChannelID:     s.channelID,
		Topic:         s.settings.Topic,
		CreatedBy:     s.createdBy,
		Phase:         s.phase,
		CurrentRound:  s.currentRound,
		RoundCount:    s.settings.RoundCount,
		RoundDuration: s.settings.RoundDuration,
		Pro:           s.roster.list(SidePro),
		Kontra:        s.roster.list(SideKontra),
		Points:        s.ledger.snapshot(),
		Totals:        s.ledger.totals(),
		CreatedAt:     s.createdAt,
		StartedAt:     s.startedAt,
		EndedAt:       s.endedAt,
		EndReason:     s.endReason,
	}
	if at, ok := s.turn.ExpiresAt(); ok {
		summary.RoundEndsAt = at
	}
	return summary
}
