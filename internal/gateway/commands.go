package gateway

import (
	"github.com/foxseedlab/wasit/internal/debate"
	"github.com/foxseedlab/wasit/internal/discord"
)

const (
	commandDebateCreate  = "debat-mulai"
	commandDebateJoin    = "debat-join"
	commandDebateStart   = "debat-start"
	commandDebatePoint   = "debat-poin"
	commandDebateSummary = "debat-ringkas"
	commandDebateStop    = "debat-stop"
	commandMood          = "mood"
	commandLobbySet      = "vclobby-set"
	commandLobbyOff      = "vclobby-off"
	commandLobbyStatus   = "vclobby-status"

	optionSeconds = "detik"
	optionRounds  = "ronde"
	optionTopic   = "topik"
	optionSide    = "sisi"
	optionPoint   = "poin"
	optionDays    = "hari"
	optionChannel = "channel"
)

// SlashCommandDefinitions returns every guild command the gateway handles.
func (g *Gateway) SlashCommandDefinitions() []discord.SlashCommandDefinition {
	limits := g.directory.Limits()
	sideChoices := make([]discord.OptionChoice, 0, len(debate.Sides))
	for _, side := range debate.Sides {
		sideChoices = append(sideChoices, discord.OptionChoice{Name: side.Label(), Value: string(side)})
	}

	return []discord.SlashCommandDefinition{
		{
			Name:                     commandDebateCreate,
			Description:              slashCommandDebateCreateDescription,
			DefaultMemberPermissions: discord.PermissionManageMessages,
			Options: []discord.SlashCommandOption{
				{
					Name:        optionSeconds,
					Description: optionSecondsDescription,
					Type:        discord.OptionInteger,
					Required:    true,
					MinValue:    int(limits.MinRoundDuration.Seconds()),
					MaxValue:    int(limits.MaxRoundDuration.Seconds()),
				},
				{
					Name:        optionRounds,
					Description: optionRoundsDescription,
					Type:        discord.OptionInteger,
					Required:    true,
					MinValue:    1,
					MaxValue:    limits.MaxRoundCount,
				},
				{
					Name:        optionTopic,
					Description: optionTopicDescription,
					Type:        discord.OptionString,
					Required:    true,
				},
			},
		},
		{
			Name:        commandDebateJoin,
			Description: slashCommandDebateJoinDescription,
			Options: []discord.SlashCommandOption{
				{
					Name:        optionSide,
					Description: optionSideDescription,
					Type:        discord.OptionString,
					Required:    true,
					Choices:     sideChoices,
				},
			},
		},
		{
			Name:                     commandDebateStart,
			Description:              slashCommandDebateStartDescription,
			DefaultMemberPermissions: discord.PermissionManageMessages,
		},
		{
			Name:        commandDebatePoint,
			Description: slashCommandDebatePointDescription,
			Options: []discord.SlashCommandOption{
				{
					Name:        optionPoint,
					Description: optionPointDescription,
					Type:        discord.OptionString,
					Required:    true,
				},
			},
		},
		{
			Name:        commandDebateSummary,
			Description: slashCommandDebateSummaryDescription,
		},
		{
			Name:                     commandDebateStop,
			Description:              slashCommandDebateStopDescription,
			DefaultMemberPermissions: discord.PermissionManageMessages,
		},
		{
			Name:        commandMood,
			Description: slashCommandMoodDescription,
			Options: []discord.SlashCommandOption{
				{
					Name:        optionDays,
					Description: optionDaysDescription,
					Type:        discord.OptionInteger,
					MinValue:    1,
					MaxValue:    g.mood.MaxDays(),
				},
			},
		},
		{
			Name:                     commandLobbySet,
			Description:              slashCommandLobbySetDescription,
			DefaultMemberPermissions: discord.PermissionManageChannels,
			Options: []discord.SlashCommandOption{
				{
					Name:        optionChannel,
					Description: optionChannelDescription,
					Type:        discord.OptionChannel,
					Required:    true,
				},
			},
		},
		{
			Name:                     commandLobbyOff,
			Description:              slashCommandLobbyOffDescription,
			DefaultMemberPermissions: discord.PermissionManageChannels,
		},
		{
			Name:        commandLobbyStatus,
			Description: slashCommandLobbyStatusDescription,
		},
	}
}

// CommandNames lists the registered command names, for startup logging.
func CommandNames(defs []discord.SlashCommandDefinition) []string {
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)
	}
	return names
}
