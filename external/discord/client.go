package discord

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"
	discordpkg "github.com/foxseedlab/wasit/internal/discord"
)

const gatewayIntents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsGuildVoiceStates |
	discordgo.IntentsMessageContent

type Client struct {
	session   *discordgo.Session
	token     string
	botUserID string

	closeOnce sync.Once
	closed    chan struct{}
}

func NewClient(token string) discordpkg.Client {
	return &Client{
		token:  token,
		closed: make(chan struct{}),
	}
}

// Connect opens the gateway websocket. ctx bounds the handshake only.
func (c *Client) Connect(ctx context.Context) error {
	s, err := discordgo.New("Bot " + c.token)
	if err != nil {
		return err
	}
	s.Identify.Intents = gatewayIntents
	s.State.TrackVoice = true

	opened := make(chan error, 1)
	go func() {
		opened <- s.Open()
	}()
	select {
	case err := <-opened:
		if err != nil {
			return fmt.Errorf("open discord gateway: %w", err)
		}
	case <-ctx.Done():
		go func() {
			if <-opened == nil {
				_ = s.Close()
			}
		}()
		return fmt.Errorf("open discord gateway: %w", ctx.Err())
	}

	c.session = s
	if _, err := c.GetBotUserID(); err != nil {
		return err
	}
	return nil
}

func (c *Client) Close() error {
	if c.closed != nil {
		c.closeOnce.Do(func() {
			close(c.closed)
		})
	}
	if c.session == nil {
		return nil
	}
	return c.session.Close()
}

// Run blocks until Close is called.
func (c *Client) Run() error {
	<-c.closed
	return nil
}

func (c *Client) SendChannelMessage(channelID, content string) error {
	_, err := c.session.ChannelMessageSend(channelID, content)
	return err
}

func (c *Client) GetBotUserID() (string, error) {
	if c.botUserID != "" {
		return c.botUserID, nil
	}
	if c.session == nil {
		return "", fmt.Errorf("discord session is not initialized")
	}
	if u := c.session.State.User; u != nil && u.ID != "" {
		c.botUserID = u.ID
		return c.botUserID, nil
	}
	u, err := c.session.User("@me")
	if err != nil {
		return "", fmt.Errorf("resolve bot user: %w", err)
	}
	c.botUserID = u.ID
	return c.botUserID, nil
}

func (c *Client) RegisterSlashCommandHandler(handler func(discordpkg.SlashCommandEvent)) {
	c.session.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		ev, ok := slashCommandEvent(s, ic)
		if !ok {
			return
		}
		slog.Info("slash command interaction received", "guild_id", ev.GuildID, "channel_id", ev.ChannelID, "command", ev.CommandName, "user_id", ev.UserID)
		handler(ev)
	})
}

func slashCommandEvent(s *discordgo.Session, ic *discordgo.InteractionCreate) (discordpkg.SlashCommandEvent, bool) {
	if ic == nil || ic.Type != discordgo.InteractionApplicationCommand {
		return discordpkg.SlashCommandEvent{}, false
	}
	data := ic.ApplicationCommandData()
	userID := interactionUserID(ic)
	if data.Name == "" || userID == "" {
		return discordpkg.SlashCommandEvent{}, false
	}
	reply := func(flags discordgo.MessageFlags) func(string) error {
		return func(content string) error {
			return s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Content: content,
					Flags:   flags,
				},
			})
		}
	}
	return discordpkg.SlashCommandEvent{
		GuildID:          ic.GuildID,
		ChannelID:        ic.ChannelID,
		CommandName:      data.Name,
		UserID:           userID,
		Options:          optionValues(data.Options),
		Respond:          reply(0),
		RespondEphemeral: reply(discordgo.MessageFlagsEphemeral),
	}, true
}

// interactionUserID prefers the guild member, since DMs carry User instead.
func interactionUserID(ic *discordgo.InteractionCreate) string {
	if ic.Member != nil && ic.Member.User != nil {
		return ic.Member.User.ID
	}
	if ic.User != nil {
		return ic.User.ID
	}
	return ""
}

func (c *Client) RegisterMessageHandler(handler func(discordpkg.MessageEvent)) {
	c.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m == nil || m.Message == nil || m.Author == nil {
			return
		}
		if m.GuildID == "" || m.Content == "" || m.Author.ID == c.botUserID {
			return
		}
		handler(discordpkg.MessageEvent{
			GuildID:   m.GuildID,
			ChannelID: m.ChannelID,
			UserID:    m.Author.ID,
			UserIsBot: m.Author.Bot,
			Content:   m.Content,
		})
	})
}

func (c *Client) RegisterVoiceStateUpdateHandler(handler func(discordpkg.VoiceStateEvent)) {
	c.session.AddHandler(func(s *discordgo.Session, vs *discordgo.VoiceStateUpdate) {
		ev, ok := c.voiceStateEvent(vs)
		if !ok {
			return
		}
		handler(ev)
	})
}

// voiceStateEvent drops updates that do not move the user between channels,
// such as mute or deafen toggles.
func (c *Client) voiceStateEvent(vs *discordgo.VoiceStateUpdate) (discordpkg.VoiceStateEvent, bool) {
	if vs == nil || vs.VoiceState == nil || vs.GuildID == "" || vs.UserID == "" {
		return discordpkg.VoiceStateEvent{}, false
	}
	var before string
	if vs.BeforeUpdate != nil {
		before = vs.BeforeUpdate.ChannelID
	}
	if before == vs.ChannelID {
		return discordpkg.VoiceStateEvent{}, false
	}
	return discordpkg.VoiceStateEvent{
		GuildID:         vs.GuildID,
		UserID:          vs.UserID,
		UserIsBot:       c.isBot(vs.GuildID, vs.UserID, vs.VoiceState),
		BeforeChannelID: before,
		AfterChannelID:  vs.ChannelID,
	}, true
}
