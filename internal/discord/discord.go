package discord

import "context"

type OptionType int

const (
	OptionString OptionType = iota + 1
	OptionInteger
	OptionChannel
)

type OptionChoice struct {
	Name  string
	Value string
}

type SlashCommandOption struct {
	Name        string
	Description string
	Type        OptionType
	Required    bool
	Choices     []OptionChoice
	MinValue    int
	MaxValue    int
}

type Permission int64

const (
	PermissionNone Permission = iota
	PermissionManageMessages
	PermissionManageChannels
)

type SlashCommandDefinition struct {
	Name                     string
	Description              string
	Options                  []SlashCommandOption
	DefaultMemberPermissions Permission
}

type SlashCommandEvent struct {
	GuildID          string
	ChannelID        string
	CommandName      string
	UserID           string
	Options          map[string]string
	Respond          func(content string) error
	RespondEphemeral func(content string) error
}

type MessageEvent struct {
	GuildID   string
	ChannelID string
	UserID    string
	UserIsBot bool
	Content   string
}

type VoiceStateEvent struct {
	GuildID         string
	UserID          string
	UserIsBot       bool
	BeforeChannelID string
	AfterChannelID  string
}

type VoiceParticipant struct {
	UserID string
	IsBot  bool
}

type VoiceChannelSpec struct {
	GuildID     string
	Name        string
	ParentID    string
	OwnerUserID string
	Reason      string
}

type Client interface {
	Connect(ctx context.Context) error
	Close() error
	SendChannelMessage(channelID, content string) error
	RegisterSlashCommandHandler(handler func(SlashCommandEvent))
	RegisterMessageHandler(handler func(MessageEvent))
	RegisterVoiceStateUpdateHandler(handler func(VoiceStateEvent))
	UpsertGuildSlashCommands(guildID string, defs []SlashCommandDefinition) error
	ListVoiceChannelParticipants(guildID, channelID string) ([]VoiceParticipant, error)
	GetChannelParentID(channelID string) (string, error)
	ResolveDisplayName(guildID, userID string) string
	CreateVoiceChannel(spec VoiceChannelSpec) (string, error)
	DeleteChannel(channelID, reason string) error
	MoveMember(guildID, userID, channelID string) error
	GetBotUserID() (string, error)
	Run() error
}
