package debate

import (
	"log/slog"
	"sync"

	"github.com/foxseedlab/wasit/internal/clock"
	"github.com/google/uuid"
)

type CreateParams struct {
	GuildID   string
	ChannelID string
	Initiator string
	Settings  Settings
}

// Directory maps channel IDs to their live session. All commands for a channel
// pass through here and are serialized on that channel's session lock.
type Directory struct {
	clock    clock.Clock
	notifier Notifier
	limits   Limits

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
}

func NewDirectory(c clock.Clock, notifier Notifier, limits Limits) *Directory {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &Directory{
		clock:    c,
		notifier: notifier,
		limits:   limits,
		sessions: make(map[string]*Session),
	}
}

func (d *Directory) Limits() Limits {
	return d.limits
}

// GetOrCreate returns the channel's live session, or registers a new one in
// setup. created reports which of the two happened. Settings are only
// validated when a session is created.
func (d *Directory) GetOrCreate(p CreateParams) (s *Session, created bool, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if existing, ok := d.sessions[p.ChannelID]; ok {
		return existing, false, nil
	}
	if d.closed {
		return nil, false, ErrClosed
	}
	if err := d.limits.Validate(p.Settings); err != nil {
		return nil, false, err
	}
	s = d.newSession(p)
	d.sessions[p.ChannelID] = s
	if d.limits.SetupTimeout > 0 {
		s.idle.Arm(d.limits.SetupTimeout, s.onSetupExpired)
	}
	slog.Info("debate session created",
		"session_id", s.id,
		"guild_id", p.GuildID,
		"channel_id", p.ChannelID,
		"created_by", p.Initiator,
		"round_duration", p.Settings.RoundDuration.String(),
		"round_count", p.Settings.RoundCount)
	return s, true, nil
}

func (d *Directory) Create(p CreateParams) (*Session, error) {
	s, created, err := d.GetOrCreate(p)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, ErrAlreadyExists
	}
	return s, nil
}

func (d *Directory) Get(channelID string) (*Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.sessions[channelID]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Remove ends the channel's session as stopped and drops it from the directory.
func (d *Directory) Remove(channelID string) error {
	_, err := d.Stop(channelID)
	return err
}

func (d *Directory) Join(channelID, userID string, side Side) (JoinResult, error) {
	var res JoinResult
	err := d.apply(channelID, func(s *Session) error {
		var err error
		res, err = s.join(userID, side)
		return err
	})
	return res, err
}

func (d *Directory) Start(channelID string) (Summary, error) {
	var summary Summary
	err := d.apply(channelID, func(s *Session) error {
		var err error
		summary, err = s.start()
		return err
	})
	return summary, err
}

func (d *Directory) RecordPoint(channelID, userID, text string) (Point, error) {
	var p Point
	err := d.apply(channelID, func(s *Session) error {
		var err error
		p, err = s.recordPoint(userID, text)
		return err
	})
	return p, err
}

func (d *Directory) Stop(channelID string) (Summary, error) {
	var summary Summary
	err := d.apply(channelID, func(s *Session) error {
		var err error
		summary, err = s.stop(EndReasonStopped)
		return err
	})
	return summary, err
}

func (d *Directory) Summarize(channelID string) (Summary, error) {
	s, err := d.Get(channelID)
	if err != nil {
		return Summary{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.detached {
		return Summary{}, ErrNotFound
	}
	return s.summarize()
}

func (d *Directory) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sessions)
}

// Shutdown ends every live session and returns how many were ended. The
// directory refuses new sessions afterwards.
func (d *Directory) Shutdown() int {
	d.mu.Lock()
	d.closed = true
	live := make([]*Session, 0, len(d.sessions))
	for _, s := range d.sessions {
		live = append(live, s)
	}
	d.mu.Unlock()

	ended := 0
	for _, s := range live {
		s.mu.Lock()
		if !s.detached {
			if _, err := s.stop(EndReasonShutdown); err == nil {
				ended++
			}
		}
		s.mu.Unlock()
	}
	return ended
}

func (d *Directory) apply(channelID string, fn func(s *Session) error) error {
	s, err := d.Get(channelID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detached {
		return ErrNotFound
	}
	return fn(s)
}

func (d *Directory) newSession(p CreateParams) *Session {
	return &Session{
		id:        uuid.NewString(),
		guildID:   p.GuildID,
		channelID: p.ChannelID,
		createdBy: p.Initiator,
		createdAt: d.clock.Now(),
		settings:  p.Settings,
		clock:     d.clock,
		notifier:  d.notifier,
		release:   d.release,
		phase:     PhaseSetup,
		roster:    newRoster(),
		turn:      NewTurnTimer(d.clock),
		idle:      NewTurnTimer(d.clock),
	}
}

// release drops s only if it is still the registered session for its channel.
func (d *Directory) release(s *Session) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if current, ok := d.sessions[s.channelID]; ok && current == s {
		delete(d.sessions, s.channelID)
	}
}
