package repository

import (
	"context"
	"time"
)

type DebateRepository interface {
	SaveDebate(ctx context.Context, record DebateRecord) error
}

type VoiceLobbyRepository interface {
	SetVoiceLobby(ctx context.Context, lobby VoiceLobby) error
	// GetVoiceLobby returns nil without error when the guild has no lobby.
	GetVoiceLobby(ctx context.Context, guildID string) (*VoiceLobby, error)
	DeleteVoiceLobby(ctx context.Context, guildID string) error
}

type MoodRepository interface {
	// AddMoodTally adds delta's counts to the stored tally of the same guild and day.
	AddMoodTally(ctx context.Context, delta MoodTally) error
	ListMoodTallies(ctx context.Context, guildID string, from, to time.Time) ([]MoodTally, error)
}

type Repository interface {
	DebateRepository
	VoiceLobbyRepository
	MoodRepository
}
