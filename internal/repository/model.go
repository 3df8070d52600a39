package repository

import "time"

// DebateRecord is the archived form of an ended debate.
type DebateRecord struct {
	ID                   string
	GuildID              string
	ChannelID            string
	Topic                string
	CreatedBy            string
	RoundDurationSeconds int64
	RoundCount           int
	RoundsPlayed         int
	EndReason            string
	Pro                  []string
	Kontra               []string
	Points               []DebatePoint
	CreatedAt            time.Time
	StartedAt            *time.Time
	EndedAt              time.Time
}

type DebatePoint struct {
	Seq        int
	Side       string
	UserID     string
	Text       string
	Round      int
	RecordedAt time.Time
}

type VoiceLobby struct {
	GuildID   string
	ChannelID string
	UpdatedAt time.Time
}

// MoodTally holds per-day message counts. Day is the local calendar date
// normalized to midnight UTC.
type MoodTally struct {
	GuildID  string
	Day      time.Time
	Positive int
	Neutral  int
	Negative int
	Toxic    int
	Messages int
}

func (t MoodTally) Total() int {
	return t.Positive + t.Neutral + t.Negative + t.Toxic
}
