package gateway

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/foxseedlab/wasit/internal/clock"
	"github.com/foxseedlab/wasit/internal/debate"
	"github.com/foxseedlab/wasit/internal/discord"
	"github.com/foxseedlab/wasit/internal/mood"
	"github.com/foxseedlab/wasit/internal/repository"
	"github.com/foxseedlab/wasit/internal/voiceroom"
	"github.com/foxseedlab/wasit/internal/webhook"
)

var testStart = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type mockRepository struct {
	mu      sync.Mutex
	debates []repository.DebateRecord
	lobbies map[string]repository.VoiceLobby
	moods   []repository.MoodTally
}

func newMockRepository() *mockRepository {
	return &mockRepository{lobbies: make(map[string]repository.VoiceLobby)}
}

func (m *mockRepository) SaveDebate(_ context.Context, record repository.DebateRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debates = append(m.debates, record)
	return nil
}

func (m *mockRepository) SetVoiceLobby(_ context.Context, lobby repository.VoiceLobby) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lobbies[lobby.GuildID] = lobby
	return nil
}

func (m *mockRepository) GetVoiceLobby(_ context.Context, guildID string) (*repository.VoiceLobby, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lobby, ok := m.lobbies[guildID]
	if !ok {
		return nil, nil
	}
	return &lobby, nil
}

func (m *mockRepository) DeleteVoiceLobby(_ context.Context, guildID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lobbies, guildID)
	return nil
}

func (m *mockRepository) AddMoodTally(_ context.Context, delta repository.MoodTally) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moods = append(m.moods, delta)
	return nil
}

func (m *mockRepository) ListMoodTallies(_ context.Context, guildID string, _, _ time.Time) ([]repository.MoodTally, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []repository.MoodTally
	for _, t := range m.moods {
		if t.GuildID == guildID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockRepository) savedDebates() []repository.DebateRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]repository.DebateRecord(nil), m.debates...)
}

type sentMessage struct {
	channelID string
	content   string
}

type mockSender struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (m *mockSender) SendChannelMessage(channelID, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMessage{channelID: channelID, content: content})
	return nil
}

func (m *mockSender) messages() []sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMessage(nil), m.sent...)
}

type mockWebhookSender struct {
	mu       sync.Mutex
	payloads []webhook.DebateSummaryPayload
}

func (m *mockWebhookSender) SendDebateSummary(_ context.Context, payload webhook.DebateSummaryPayload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payloads = append(m.payloads, payload)
	return nil
}

type mockPlatform struct{}

func (mockPlatform) GetChannelParentID(string) (string, error) { return "", nil }
func (mockPlatform) ResolveDisplayName(_, userID string) string { return userID }
func (mockPlatform) CreateVoiceChannel(discord.VoiceChannelSpec) (string, error) {
	return "room-1", nil
}
func (mockPlatform) MoveMember(_, _, _ string) error { return nil }
func (mockPlatform) ListVoiceChannelParticipants(_, _ string) ([]discord.VoiceParticipant, error) {
	return nil, nil
}
func (mockPlatform) DeleteChannel(_, _ string) error { return nil }

type testEnv struct {
	gateway   *Gateway
	directory *debate.Directory
	announcer *Announcer
	clock     *clock.Fake
	repo      *mockRepository
	sender    *mockSender
	webhook   *mockWebhookSender
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	fc := clock.NewFake(testStart)
	repo := newMockRepository()
	sender := &mockSender{}
	wh := &mockWebhookSender{}
	announcer := NewAnnouncer(sender, repo, wh, nil, time.UTC, 64)
	t.Cleanup(announcer.Close)

	directory := debate.NewDirectory(fc, announcer, debate.DefaultLimits())
	tracker := mood.NewTracker(repo, mood.NewKeywordClassifier(), fc, time.UTC, 30, nil)
	rooms := voiceroom.NewManager(mockPlatform{}, repo, fc, nil)
	g := NewGateway(Options{
		GuildID:     "guild-1",
		MoodEnabled: true,
		Location:    time.UTC,
	}, directory, tracker, rooms, nil)

	return &testEnv{
		gateway:   g,
		directory: directory,
		announcer: announcer,
		clock:     fc,
		repo:      repo,
		sender:    sender,
		webhook:   wh,
	}
}

func (e *testEnv) dispatch(name, userID string, args map[string]string) Result {
	return e.gateway.Dispatch(context.Background(), Command{
		Name:      name,
		GuildID:   "guild-1",
		ChannelID: "chan-1",
		UserID:    userID,
		Args:      args,
	})
}

func (e *testEnv) mustDispatch(t *testing.T, name, userID string, args map[string]string) Result {
	t.Helper()
	res := e.dispatch(name, userID, args)
	if res.Ephemeral {
		t.Fatalf("%s by %s failed: %q", name, userID, res.Content)
	}
	return res
}

func (e *testEnv) createDebate(t *testing.T, seconds, rounds string) {
	t.Helper()
	e.mustDispatch(t, commandDebateCreate, "mod-1", map[string]string{
		optionSeconds: seconds,
		optionRounds:  rounds,
		optionTopic:   "Pajak karbon",
	})
}
