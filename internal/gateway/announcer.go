package gateway

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/foxseedlab/wasit/internal/debate"
	"github.com/foxseedlab/wasit/internal/repository"
	"github.com/foxseedlab/wasit/internal/telemetry"
	"github.com/foxseedlab/wasit/internal/webhook"
)

const archiveTimeout = 15 * time.Second

type MessageSender interface {
	SendChannelMessage(channelID, content string) error
}

// Announcer delivers session notifications to their channel. Notify never
// blocks; a single worker posts messages and archives ended debates in the
// order the notifications were queued.
type Announcer struct {
	sender   MessageSender
	repo     repository.DebateRepository
	webhook  webhook.Sender
	metrics  *telemetry.Metrics
	location *time.Location

	mu     sync.RWMutex
	closed bool
	queue  chan debate.Notification
	done   chan struct{}
	once   sync.Once
}

func NewAnnouncer(sender MessageSender, repo repository.DebateRepository, wh webhook.Sender, metrics *telemetry.Metrics, loc *time.Location, queueSize int) *Announcer {
	if loc == nil {
		loc = time.UTC
	}
	if queueSize < 1 {
		queueSize = 1
	}
	a := &Announcer{
		sender:   sender,
		repo:     repo,
		webhook:  wh,
		metrics:  metrics,
		location: loc,
		queue:    make(chan debate.Notification, queueSize),
		done:     make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *Announcer) Notify(n debate.Notification) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		slog.Warn("notification after announcer close dropped", "kind", n.Kind, "session_id", n.Summary.SessionID)
		return
	}
	select {
	case a.queue <- n:
	default:
		a.metrics.NotificationDropped()
		slog.Warn("announcer queue full; notification dropped", "kind", n.Kind, "session_id", n.Summary.SessionID, "channel_id", n.Summary.ChannelID)
	}
}

// Close stops accepting notifications and waits for queued ones to finish.
func (a *Announcer) Close() {
	a.once.Do(func() {
		a.mu.Lock()
		a.closed = true
		close(a.queue)
		a.mu.Unlock()
	})
	<-a.done
}

func (a *Announcer) run() {
	defer close(a.done)
	for n := range a.queue {
		a.handle(n)
	}
}

func (a *Announcer) handle(n debate.Notification) {
	s := n.Summary
	switch n.Kind {
	case debate.NotificationRoundStarted:
		a.send(s, renderRoundStarted(s))
	case debate.NotificationRoundAdvanced:
		a.metrics.RoundAdvanced()
		a.send(s, renderRoundProgress(s))
	case debate.NotificationDebateEnded:
		a.send(s, truncateMessage(messageDebateEnded+"\n\n"+renderSummary(s, a.location)))
	case debate.NotificationDebateStopped:
		// A stop command already replied with the summary.
		if s.EndReason == debate.EndReasonShutdown {
			a.send(s, truncateMessage(messageDebateShutdown+"\n\n"+renderSummary(s, a.location)))
		}
	case debate.NotificationDebateAbandoned:
		a.send(s, messageDebateAbandoned)
	}
	if n.Terminal() {
		a.metrics.SessionEnded(string(s.EndReason))
		a.archive(s)
	}
}

func (a *Announcer) send(s debate.Summary, content string) {
	if err := a.sender.SendChannelMessage(s.ChannelID, content); err != nil {
		slog.Error("failed to send debate announcement", "session_id", s.SessionID, "channel_id", s.ChannelID, "error", err)
	}
}

func (a *Announcer) archive(s debate.Summary) {
	ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
	defer cancel()
	if err := a.repo.SaveDebate(ctx, debateRecord(s)); err != nil {
		slog.Error("failed to archive debate", "session_id", s.SessionID, "channel_id", s.ChannelID, "error", err)
	}
	if err := a.webhook.SendDebateSummary(ctx, webhookPayload(s, a.location)); err != nil {
		slog.Error("failed to send debate webhook", "session_id", s.SessionID, "channel_id", s.ChannelID, "error", err)
	}
}

func debateRecord(s debate.Summary) repository.DebateRecord {
	rec := repository.DebateRecord{
		ID:                   s.SessionID,
		GuildID:              s.GuildID,
		ChannelID:            s.ChannelID,
		Topic:                s.Topic,
		CreatedBy:            s.CreatedBy,
		RoundDurationSeconds: int64(s.RoundDuration / time.Second),
		RoundCount:           s.RoundCount,
		RoundsPlayed:         s.CurrentRound,
		EndReason:            string(s.EndReason),
		Pro:                  s.Pro,
		Kontra:               s.Kontra,
		CreatedAt:            s.CreatedAt,
		EndedAt:              s.EndedAt,
	}
	if !s.StartedAt.IsZero() {
		startedAt := s.StartedAt
		rec.StartedAt = &startedAt
	}
	rec.Points = make([]repository.DebatePoint, 0, len(s.Points))
	for _, p := range s.Points {
		rec.Points = append(rec.Points, repository.DebatePoint{
			Seq:        p.Seq,
			Side:       string(p.Side),
			UserID:     p.UserID,
			Text:       p.Text,
			Round:      p.Round,
			RecordedAt: p.RecordedAt,
		})
	}
	return rec
}

func webhookPayload(s debate.Summary, loc *time.Location) webhook.DebateSummaryPayload {
	payload := webhook.DebateSummaryPayload{
		SessionID:            s.SessionID,
		GuildID:              s.GuildID,
		ChannelID:            s.ChannelID,
		Topic:                s.Topic,
		CreatedBy:            s.CreatedBy,
		EndReason:            string(s.EndReason),
		RoundCount:           s.RoundCount,
		RoundsPlayed:         s.CurrentRound,
		RoundDurationSeconds: int64(s.RoundDuration / time.Second),
		Pro:                  nonNilStrings(s.Pro),
		Kontra:               nonNilStrings(s.Kontra),
		Totals:               make(map[string]int, len(s.Totals)),
		Points:               make([]webhook.DebatePointPayload, 0, len(s.Points)),
		CreatedAt:            s.CreatedAt.In(loc),
		EndedAt:              s.EndedAt.In(loc),
		Timezone:             loc.String(),
	}
	if !s.StartedAt.IsZero() {
		startedAt := s.StartedAt.In(loc)
		payload.StartedAt = &startedAt
	}
	for side, n := range s.Totals {
		payload.Totals[string(side)] = n
	}
	for _, p := range s.Points {
		payload.Points = append(payload.Points, webhook.DebatePointPayload{
			Seq:        p.Seq,
			Side:       string(p.Side),
			UserID:     p.UserID,
			Text:       p.Text,
			Round:      p.Round,
			RecordedAt: p.RecordedAt.In(loc),
		})
	}
	return payload
}

func nonNilStrings(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
