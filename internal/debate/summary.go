package debate

import "time"

type Phase string

const (
	PhaseSetup  Phase = "setup"
	PhaseActive Phase = "active"
	PhaseEnded  Phase = "ended"
)

type EndReason string

const (
	EndReasonCompleted EndReason = "completed"
	EndReasonStopped   EndReason = "stopped"
	EndReasonIdle      EndReason = "idle"
	EndReasonShutdown  EndReason = "shutdown"
)

// Summary is a read-only snapshot of a session.
type Summary struct {
	SessionID     string
	GuildID       string
	ChannelID     string
	Topic         string
	CreatedBy     string
	Phase         Phase
	CurrentRound  int
	RoundCount    int
	RoundDuration time.Duration
	Pro           []string
	Kontra        []string
	Points        []Point
	Totals        map[Side]int
	CreatedAt     time.Time
	StartedAt     time.Time
	EndedAt       time.Time
	RoundEndsAt   time.Time
	EndReason     EndReason
}

func (s Summary) Members(side Side) []string {
	if side == SidePro {
		return s.Pro
	}
	return s.Kontra
}
