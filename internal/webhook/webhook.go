package webhook

import (
	"context"
	"time"
)

type DebatePointPayload struct {
	Seq        int       `json:"seq"`
	Side       string    `json:"side"`
	UserID     string    `json:"user_id"`
	Text       string    `json:"text"`
	Round      int       `json:"round"`
	RecordedAt time.Time `json:"recorded_at"`
}

type DebateSummaryPayload struct {
	SessionID            string               `json:"session_id"`
	GuildID              string               `json:"guild_id"`
	ChannelID            string               `json:"channel_id"`
	Topic                string               `json:"topic"`
	CreatedBy            string               `json:"created_by"`
	EndReason            string               `json:"end_reason"`
	RoundCount           int                  `json:"round_count"`
	RoundsPlayed         int                  `json:"rounds_played"`
	RoundDurationSeconds int64                `json:"round_duration_seconds"`
	Pro                  []string             `json:"pro"`
	Kontra               []string             `json:"kontra"`
	Totals               map[string]int       `json:"totals"`
	Points               []DebatePointPayload `json:"points"`
	CreatedAt            time.Time            `json:"created_at"`
	StartedAt            *time.Time           `json:"started_at,omitempty"`
	EndedAt              time.Time            `json:"ended_at"`
	Timezone             string               `json:"timezone"`
}

type Sender interface {
	SendDebateSummary(ctx context.Context, payload DebateSummaryPayload) error
}
