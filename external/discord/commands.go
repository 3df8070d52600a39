package discord

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/bwmarrin/discordgo"
	discordpkg "github.com/foxseedlab/wasit/internal/discord"
)

// UpsertGuildSlashCommands creates missing commands and edits drifted ones.
// Commands registered on the guild but absent from defs are left alone.
func (c *Client) UpsertGuildSlashCommands(guildID string, defs []discordpkg.SlashCommandDefinition) error {
	appID := c.applicationID()
	if appID == "" {
		return fmt.Errorf("discord application id is not available")
	}
	registered, err := c.session.ApplicationCommands(appID, guildID)
	if err != nil {
		return fmt.Errorf("list guild commands: %w", err)
	}
	byName := make(map[string]*discordgo.ApplicationCommand, len(registered))
	for _, cmd := range registered {
		if cmd != nil && cmd.Name != "" {
			byName[cmd.Name] = cmd
		}
	}

	var created, updated int
	for _, def := range defs {
		if def.Name == "" {
			continue
		}
		want := toApplicationCommand(def)
		current, ok := byName[def.Name]
		switch {
		case !ok:
			if _, err := c.session.ApplicationCommandCreate(appID, guildID, want); err != nil {
				return fmt.Errorf("create slash command %s: %w", def.Name, err)
			}
			created++
		case commandChanged(current, want):
			if _, err := c.session.ApplicationCommandEdit(appID, guildID, current.ID, want); err != nil {
				return fmt.Errorf("edit slash command %s: %w", def.Name, err)
			}
			updated++
		}
	}
	slog.Info("slash commands synced", "guild_id", guildID, "created", created, "updated", updated, "total", len(defs))
	return nil
}

func (c *Client) applicationID() string {
	if c.session == nil {
		return ""
	}
	if app := c.session.State.Application; app != nil && app.ID != "" {
		return app.ID
	}
	if u := c.session.State.User; u != nil {
		return u.ID
	}
	return ""
}

func toApplicationCommand(def discordpkg.SlashCommandDefinition) *discordgo.ApplicationCommand {
	cmd := &discordgo.ApplicationCommand{
		Name:        def.Name,
		Description: def.Description,
	}
	if perm := memberPermission(def.DefaultMemberPermissions); perm != 0 {
		cmd.DefaultMemberPermissions = &perm
	}
	for _, opt := range def.Options {
		cmd.Options = append(cmd.Options, toCommandOption(opt))
	}
	return cmd
}

func toCommandOption(opt discordpkg.SlashCommandOption) *discordgo.ApplicationCommandOption {
	o := &discordgo.ApplicationCommandOption{
		Type:        optionType(opt.Type),
		Name:        opt.Name,
		Description: opt.Description,
		Required:    opt.Required,
	}
	for _, choice := range opt.Choices {
		o.Choices = append(o.Choices, &discordgo.ApplicationCommandOptionChoice{Name: choice.Name, Value: choice.Value})
	}
	switch opt.Type {
	case discordpkg.OptionInteger:
		// Zero MaxValue means unbounded.
		if opt.MaxValue > 0 {
			minValue := float64(opt.MinValue)
			o.MinValue = &minValue
			o.MaxValue = float64(opt.MaxValue)
		}
	case discordpkg.OptionChannel:
		o.ChannelTypes = []discordgo.ChannelType{discordgo.ChannelTypeGuildVoice}
	}
	return o
}

func optionType(t discordpkg.OptionType) discordgo.ApplicationCommandOptionType {
	switch t {
	case discordpkg.OptionInteger:
		return discordgo.ApplicationCommandOptionInteger
	case discordpkg.OptionChannel:
		return discordgo.ApplicationCommandOptionChannel
	default:
		return discordgo.ApplicationCommandOptionString
	}
}

func memberPermission(p discordpkg.Permission) int64 {
	switch p {
	case discordpkg.PermissionManageMessages:
		return discordgo.PermissionManageMessages
	case discordpkg.PermissionManageChannels:
		return discordgo.PermissionManageChannels
	default:
		return 0
	}
}

func commandChanged(current, want *discordgo.ApplicationCommand) bool {
	if current.Description != want.Description || len(current.Options) != len(want.Options) {
		return true
	}
	if permissionValue(current.DefaultMemberPermissions) != permissionValue(want.DefaultMemberPermissions) {
		return true
	}
	for i, w := range want.Options {
		if optionChanged(current.Options[i], w) {
			return true
		}
	}
	return false
}

// optionChanged compares every field toCommandOption sets, so raised limits
// reach Discord on the next sync.
func optionChanged(got, want *discordgo.ApplicationCommandOption) bool {
	if got == nil || got.Name != want.Name || got.Type != want.Type || got.Required != want.Required ||
		got.Description != want.Description {
		return true
	}
	if !sameMinValue(got.MinValue, want.MinValue) || got.MaxValue != want.MaxValue {
		return true
	}
	if !slices.Equal(got.ChannelTypes, want.ChannelTypes) {
		return true
	}
	if len(got.Choices) != len(want.Choices) {
		return true
	}
	for i, w := range want.Choices {
		c := got.Choices[i]
		if c == nil || c.Name != w.Name || fmt.Sprint(c.Value) != fmt.Sprint(w.Value) {
			return true
		}
	}
	return false
}

func sameMinValue(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func permissionValue(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

// optionValues flattens interaction options into strings keyed by name.
func optionValues(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]string {
	values := make(map[string]string, len(opts))
	for _, opt := range opts {
		if opt == nil || opt.Name == "" {
			continue
		}
		switch opt.Type {
		case discordgo.ApplicationCommandOptionString:
			values[opt.Name] = opt.StringValue()
		case discordgo.ApplicationCommandOptionInteger:
			values[opt.Name] = strconv.FormatInt(opt.IntValue(), 10)
		default:
			values[opt.Name] = fmt.Sprint(opt.Value)
		}
	}
	return values
}
