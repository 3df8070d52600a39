package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/foxseedlab/wasit/internal/repository"
)

type moodKey struct {
	guildID string
	day     time.Time
}

// MemoryRepository keeps everything in process memory. It backs the bot when
// no database is configured.
type MemoryRepository struct {
	mu      sync.Mutex
	debates map[string]repository.DebateRecord
	lobbies map[string]repository.VoiceLobby
	moods   map[moodKey]repository.MoodTally
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		debates: make(map[string]repository.DebateRecord),
		lobbies: make(map[string]repository.VoiceLobby),
		moods:   make(map[moodKey]repository.MoodTally),
	}
}

func (r *MemoryRepository) SaveDebate(ctx context.Context, record repository.DebateRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.debates[record.ID]; ok {
		return nil
	}
	record.Points = append([]repository.DebatePoint(nil), record.Points...)
	r.debates[record.ID] = record
	return nil
}

// Debate returns an archived debate by ID.
func (r *MemoryRepository) Debate(id string) (repository.DebateRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.debates[id]
	return rec, ok
}

func (r *MemoryRepository) SetVoiceLobby(ctx context.Context, lobby repository.VoiceLobby) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lobbies[lobby.GuildID] = lobby
	return nil
}

func (r *MemoryRepository) GetVoiceLobby(ctx context.Context, guildID string) (*repository.VoiceLobby, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lobby, ok := r.lobbies[guildID]
	if !ok {
		return nil, nil
	}
	return &lobby, nil
}

func (r *MemoryRepository) DeleteVoiceLobby(ctx context.Context, guildID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lobbies, guildID)
	return nil
}

func (r *MemoryRepository) AddMoodTally(ctx context.Context, delta repository.MoodTally) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := moodKey{guildID: delta.GuildID, day: delta.Day}
	cur := r.moods[key]
	cur.GuildID = delta.GuildID
	cur.Day = delta.Day
	cur.Positive += delta.Positive
	cur.Neutral += delta.Neutral
	cur.Negative += delta.Negative
	cur.Toxic += delta.Toxic
	cur.Messages += delta.Messages
	r.moods[key] = cur
	return nil
}

func (r *MemoryRepository) ListMoodTallies(ctx context.Context, guildID string, from, to time.Time) ([]repository.MoodTally, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []repository.MoodTally
	for key, t := range r.moods {
		if key.guildID != guildID || key.day.Before(from) || key.day.After(to) {
			continue
		}
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Day.Before(list[j].Day)
	})
	return list, nil
}
