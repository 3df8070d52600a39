// Package voiceroom creates a personal voice room for every member who joins
// a guild's lobby channel and removes the room once it is empty.
package voiceroom

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/foxseedlab/wasit/internal/clock"
	"github.com/foxseedlab/wasit/internal/discord"
	"github.com/foxseedlab/wasit/internal/repository"
	"github.com/foxseedlab/wasit/internal/telemetry"
)

const maxChannelNameLength = 100

type Platform interface {
	GetChannelParentID(channelID string) (string, error)
	ResolveDisplayName(guildID, userID string) string
	CreateVoiceChannel(spec discord.VoiceChannelSpec) (string, error)
	MoveMember(guildID, userID, channelID string) error
	ListVoiceChannelParticipants(guildID, channelID string) ([]discord.VoiceParticipant, error)
	DeleteChannel(channelID, reason string) error
}

type Manager struct {
	platform Platform
	repo     repository.VoiceLobbyRepository
	clock    clock.Clock
	metrics  *telemetry.Metrics

	mu    sync.Mutex
	rooms map[string]string
}

func NewManager(platform Platform, repo repository.VoiceLobbyRepository, c clock.Clock, metrics *telemetry.Metrics) *Manager {
	return &Manager{
		platform: platform,
		repo:     repo,
		clock:    c,
		metrics:  metrics,
		rooms:    make(map[string]string),
	}
}

func (m *Manager) SetLobby(ctx context.Context, guildID, channelID string) error {
	return m.repo.SetVoiceLobby(ctx, repository.VoiceLobby{
		GuildID:   guildID,
		ChannelID: channelID,
		UpdatedAt: m.clock.Now(),
	})
}

// ClearLobby reports whether a lobby was configured before the call.
func (m *Manager) ClearLobby(ctx context.Context, guildID string) (bool, error) {
	lobby, err := m.repo.GetVoiceLobby(ctx, guildID)
	if err != nil {
		return false, err
	}
	if lobby == nil {
		return false, nil
	}
	return true, m.repo.DeleteVoiceLobby(ctx, guildID)
}

// Lobby returns the configured lobby channel ID, or "" when none is set.
func (m *Manager) Lobby(ctx context.Context, guildID string) (string, error) {
	lobby, err := m.repo.GetVoiceLobby(ctx, guildID)
	if err != nil || lobby == nil {
		return "", err
	}
	return lobby.ChannelID, nil
}

// IsRoom reports whether channelID is a live room created by this manager.
func (m *Manager) IsRoom(channelID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rooms[channelID]
	return ok
}

func (m *Manager) RoomCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rooms)
}

func (m *Manager) HandleVoiceStateUpdate(ctx context.Context, ev discord.VoiceStateEvent) {
	if ev.AfterChannelID != "" && !ev.UserIsBot {
		m.handleJoin(ctx, ev)
	}
	if ev.BeforeChannelID != "" && m.IsRoom(ev.BeforeChannelID) {
		m.cleanupIfEmpty(ev.GuildID, ev.BeforeChannelID)
	}
}

func (m *Manager) handleJoin(ctx context.Context, ev discord.VoiceStateEvent) {
	lobbyID, err := m.Lobby(ctx, ev.GuildID)
	if err != nil {
		slog.Error("failed to load voice lobby", "guild_id", ev.GuildID, "error", err)
		return
	}
	if lobbyID == "" || lobbyID != ev.AfterChannelID {
		return
	}
	if _, err := m.CreateRoom(ev.GuildID, lobbyID, ev.UserID); err != nil {
		slog.Error("failed to create voice room", "guild_id", ev.GuildID, "user_id", ev.UserID, "error", err)
	}
}

// CreateRoom creates a room next to the lobby and moves userID into it.
func (m *Manager) CreateRoom(guildID, lobbyID, userID string) (string, error) {
	parentID, err := m.platform.GetChannelParentID(lobbyID)
	if err != nil {
		slog.Warn("lobby category could not be resolved; creating room without category", "guild_id", guildID, "channel_id", lobbyID, "error", err)
		parentID = ""
	}
	name := roomName(m.platform.ResolveDisplayName(guildID, userID))
	roomID, err := m.platform.CreateVoiceChannel(discord.VoiceChannelSpec{
		GuildID:     guildID,
		Name:        name,
		ParentID:    parentID,
		OwnerUserID: userID,
		Reason:      fmt.Sprintf("Temporary VC created for %s", userID),
	})
	if err != nil {
		return "", fmt.Errorf("create voice channel: %w", err)
	}
	m.mu.Lock()
	m.rooms[roomID] = userID
	m.mu.Unlock()
	m.metrics.VoiceRoomCreated()
	slog.Info("voice room created", "guild_id", guildID, "channel_id", roomID, "user_id", userID)

	if err := m.platform.MoveMember(guildID, userID, roomID); err != nil {
		slog.Warn("failed to move member into voice room", "guild_id", guildID, "channel_id", roomID, "user_id", userID, "error", err)
		m.cleanupIfEmpty(guildID, roomID)
		return roomID, fmt.Errorf("move member: %w", err)
	}
	return roomID, nil
}

func (m *Manager) cleanupIfEmpty(guildID, roomID string) {
	participants, err := m.platform.ListVoiceChannelParticipants(guildID, roomID)
	if err != nil {
		slog.Warn("failed to list voice room participants", "guild_id", guildID, "channel_id", roomID, "error", err)
		return
	}
	for _, p := range participants {
		if !p.IsBot {
			return
		}
	}

	m.mu.Lock()
	if _, ok := m.rooms[roomID]; !ok {
		m.mu.Unlock()
		return
	}
	delete(m.rooms, roomID)
	m.mu.Unlock()

	if err := m.platform.DeleteChannel(roomID, "Temporary VC empty"); err != nil {
		slog.Warn("failed to delete voice room", "guild_id", guildID, "channel_id", roomID, "error", err)
		return
	}
	m.metrics.VoiceRoomDeleted()
	slog.Info("voice room deleted", "guild_id", guildID, "channel_id", roomID)
}

func roomName(displayName string) string {
	name := "Room " + displayName
	if utf8.RuneCountInString(name) <= maxChannelNameLength {
		return name
	}
	runes := []rune(name)
	return string(runes[:maxChannelNameLength])
}
