package discord

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
	discordpkg "github.com/foxseedlab/wasit/internal/discord"
)

// roomOwnerPermissions lets a room owner rename the room and manage who is in it.
const roomOwnerPermissions = discordgo.PermissionManageChannels |
	discordgo.PermissionVoiceMoveMembers |
	discordgo.PermissionVoiceMuteMembers

// ListVoiceChannelParticipants reads the gateway state cache. It fails when
// the guild is not cached yet, so callers never mistake a cold cache for an
// empty channel.
func (c *Client) ListVoiceChannelParticipants(guildID, channelID string) ([]discordpkg.VoiceParticipant, error) {
	if c.session == nil {
		return nil, fmt.Errorf("discord session is not initialized")
	}
	states, err := c.voiceStatesIn(guildID, channelID)
	if err != nil {
		return nil, err
	}
	participants := make([]discordpkg.VoiceParticipant, 0, len(states))
	for _, vs := range states {
		participants = append(participants, discordpkg.VoiceParticipant{
			UserID: vs.UserID,
			IsBot:  c.isBot(guildID, vs.UserID, vs),
		})
	}
	return participants, nil
}

// voiceStatesIn copies the channel's voice states so bot lookups can run
// without holding the state lock.
func (c *Client) voiceStatesIn(guildID, channelID string) ([]*discordgo.VoiceState, error) {
	state := c.session.State
	guild, err := state.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("guild %s is not cached: %w", guildID, err)
	}
	state.RLock()
	defer state.RUnlock()
	seen := make(map[string]struct{}, len(guild.VoiceStates))
	var out []*discordgo.VoiceState
	for _, vs := range guild.VoiceStates {
		if vs == nil || vs.ChannelID != channelID || vs.UserID == "" {
			continue
		}
		if _, dup := seen[vs.UserID]; dup {
			continue
		}
		seen[vs.UserID] = struct{}{}
		out = append(out, vs)
	}
	return out, nil
}

func (c *Client) GetChannelParentID(channelID string) (string, error) {
	ch := c.channel(channelID)
	if ch == nil {
		return "", fmt.Errorf("discord channel %s could not be resolved", channelID)
	}
	return ch.ParentID, nil
}

func (c *Client) CreateVoiceChannel(spec discordpkg.VoiceChannelSpec) (string, error) {
	data := discordgo.GuildChannelCreateData{
		Name:     spec.Name,
		Type:     discordgo.ChannelTypeGuildVoice,
		ParentID: spec.ParentID,
	}
	if spec.OwnerUserID != "" {
		data.PermissionOverwrites = []*discordgo.PermissionOverwrite{{
			ID:    spec.OwnerUserID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: roomOwnerPermissions,
		}}
	}
	ch, err := c.session.GuildChannelCreateComplex(spec.GuildID, data, discordgo.WithAuditLogReason(spec.Reason))
	if err != nil {
		return "", err
	}
	return ch.ID, nil
}

// DeleteChannel treats an already deleted channel as success.
func (c *Client) DeleteChannel(channelID, reason string) error {
	_, err := c.session.ChannelDelete(channelID, discordgo.WithAuditLogReason(reason))
	if isRESTNotFound(err) {
		return nil
	}
	return err
}

func (c *Client) MoveMember(guildID, userID, channelID string) error {
	return c.session.GuildMemberMove(guildID, userID, &channelID)
}

// ResolveDisplayName returns the guild nickname, then the global name, then
// the username. It falls back to the user ID.
func (c *Client) ResolveDisplayName(guildID, userID string) string {
	if c.session == nil {
		return userID
	}
	if m := c.member(guildID, userID); m != nil {
		if m.Nick != "" {
			return m.Nick
		}
		if m.User != nil {
			return displayName(m.User)
		}
	}
	if u, err := c.session.User(userID); err == nil && u != nil {
		return displayName(u)
	}
	return userID
}

func displayName(u *discordgo.User) string {
	switch {
	case u.GlobalName != "":
		return u.GlobalName
	case u.Username != "":
		return u.Username
	default:
		return u.ID
	}
}

// isBot consults the member attached to the voice state, then the cache, and
// only then the REST API.
func (c *Client) isBot(guildID, userID string, vs *discordgo.VoiceState) bool {
	if vs != nil && vs.Member != nil && vs.Member.User != nil {
		return vs.Member.User.Bot
	}
	if c.botUserID != "" && userID == c.botUserID {
		return true
	}
	if m, err := c.session.State.Member(guildID, userID); err == nil && m != nil && m.User != nil {
		return m.User.Bot
	}
	u, err := c.session.User(userID)
	return err == nil && u != nil && u.Bot
}

func (c *Client) channel(channelID string) *discordgo.Channel {
	if c.session == nil {
		return nil
	}
	return cachedOrFetch(
		func() (*discordgo.Channel, error) { return c.session.State.Channel(channelID) },
		func() (*discordgo.Channel, error) { return c.session.Channel(channelID) },
	)
}

func (c *Client) member(guildID, userID string) *discordgo.Member {
	return cachedOrFetch(
		func() (*discordgo.Member, error) { return c.session.State.Member(guildID, userID) },
		func() (*discordgo.Member, error) { return c.session.GuildMember(guildID, userID) },
	)
}

// cachedOrFetch prefers the gateway cache, which is cold right after startup.
func cachedOrFetch[T any](cached, fetch func() (*T, error)) *T {
	if v, err := cached(); err == nil && v != nil {
		return v
	}
	v, err := fetch()
	if err != nil {
		return nil
	}
	return v
}

func isRESTNotFound(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Response == nil {
		return false
	}
	return restErr.Response.StatusCode == http.StatusNotFound
}
