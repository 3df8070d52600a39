// Package gateway turns platform events into debate, mood and voice room
// operations and renders their outcomes as chat replies.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/foxseedlab/wasit/internal/debate"
	"github.com/foxseedlab/wasit/internal/discord"
	"github.com/foxseedlab/wasit/internal/mood"
	"github.com/foxseedlab/wasit/internal/telemetry"
	"github.com/foxseedlab/wasit/internal/voiceroom"
)

const commandTimeout = 10 * time.Second

var errMissingOption = errors.New("missing option")

type Command struct {
	Name      string
	GuildID   string
	ChannelID string
	UserID    string
	Args      map[string]string
}

func (c Command) arg(name string) string {
	return strings.TrimSpace(c.Args[name])
}

type Result struct {
	Content   string
	Ephemeral bool
}

func reply(content string) Result {
	return Result{Content: content}
}

func ephemeral(content string) Result {
	return Result{Content: content, Ephemeral: true}
}

type Options struct {
	GuildID     string
	MoodEnabled bool
	Location    *time.Location
}

type Gateway struct {
	guildID     string
	moodEnabled bool
	location    *time.Location

	directory *debate.Directory
	mood      *mood.Tracker
	rooms     *voiceroom.Manager
	metrics   *telemetry.Metrics
}

func NewGateway(opts Options, directory *debate.Directory, tracker *mood.Tracker, rooms *voiceroom.Manager, metrics *telemetry.Metrics) *Gateway {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Gateway{
		guildID:     opts.GuildID,
		moodEnabled: opts.MoodEnabled,
		location:    loc,
		directory:   directory,
		mood:        tracker,
		rooms:       rooms,
		metrics:     metrics,
	}
}

// Dispatch runs one command and returns the reply to show the invoker.
func (g *Gateway) Dispatch(ctx context.Context, cmd Command) Result {
	var (
		res Result
		err error
	)
	switch cmd.Name {
	case commandDebateCreate:
		res, err = g.createDebate(cmd)
	case commandDebateJoin:
		res, err = g.joinDebate(cmd)
	case commandDebateStart:
		res, err = g.startDebate(cmd)
	case commandDebatePoint:
		res, err = g.recordPoint(cmd)
	case commandDebateSummary:
		res, err = g.summarizeDebate(cmd)
	case commandDebateStop:
		res, err = g.stopDebate(cmd)
	case commandMood:
		res, err = g.moodSummary(ctx, cmd)
	case commandLobbySet:
		res, err = g.setLobby(ctx, cmd)
	case commandLobbyOff:
		res, err = g.clearLobby(ctx, cmd)
	case commandLobbyStatus:
		res, err = g.lobbyStatus(ctx, cmd)
	default:
		g.metrics.CommandHandled(cmd.Name, "unknown")
		return ephemeral(messageEphemeralUnknownCommand)
	}
	if err != nil {
		res = g.errorResult(cmd, err)
	}
	g.metrics.CommandHandled(cmd.Name, outcomeOf(err))
	return res
}

func (g *Gateway) HandleSlashCommand(ev discord.SlashCommandEvent) {
	if ev.GuildID == "" {
		respond(ev, ephemeral(messageEphemeralGuildOnly))
		return
	}
	if ev.GuildID != g.guildID {
		respond(ev, ephemeral(messageEphemeralWrongGuild))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	res := g.Dispatch(ctx, Command{
		Name:      ev.CommandName,
		GuildID:   ev.GuildID,
		ChannelID: ev.ChannelID,
		UserID:    ev.UserID,
		Args:      ev.Options,
	})
	respond(ev, res)
}

func respond(ev discord.SlashCommandEvent, res Result) {
	fn := ev.Respond
	if res.Ephemeral {
		fn = ev.RespondEphemeral
	}
	if fn == nil {
		return
	}
	if err := fn(res.Content); err != nil {
		slog.Error("failed to respond to slash command", "command", ev.CommandName, "guild_id", ev.GuildID, "channel_id", ev.ChannelID, "error", err)
	}
}

func (g *Gateway) HandleMessage(ev discord.MessageEvent) {
	if !g.moodEnabled || ev.UserIsBot || ev.GuildID != g.guildID {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	if _, err := g.mood.Record(ctx, ev.GuildID, ev.Content); err != nil {
		slog.Error("failed to record mood", "guild_id", ev.GuildID, "channel_id", ev.ChannelID, "error", err)
	}
}

func (g *Gateway) HandleVoiceStateUpdate(ev discord.VoiceStateEvent) {
	if ev.GuildID != g.guildID {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	g.rooms.HandleVoiceStateUpdate(ctx, ev)
}

func (g *Gateway) createDebate(cmd Command) (Result, error) {
	limits := g.directory.Limits()
	seconds, err := boundedInt(cmd.arg(optionSeconds), int64(limits.MinRoundDuration/time.Second), int64(limits.MaxRoundDuration/time.Second))
	if err != nil {
		return Result{}, fmt.Errorf("%w: detik %v", debate.ErrInvalidSettings, err)
	}
	rounds, err := boundedInt(cmd.arg(optionRounds), 1, int64(limits.MaxRoundCount))
	if err != nil {
		return Result{}, fmt.Errorf("%w: ronde %v", debate.ErrInvalidSettings, err)
	}
	settings := debate.Settings{
		Topic:         cmd.arg(optionTopic),
		RoundDuration: time.Duration(seconds) * time.Second,
		RoundCount:    rounds,
	}
	if _, err := g.directory.Create(debate.CreateParams{
		GuildID:   cmd.GuildID,
		ChannelID: cmd.ChannelID,
		Initiator: cmd.UserID,
		Settings:  settings,
	}); err != nil {
		return Result{}, err
	}
	g.metrics.SessionCreated()
	return reply(fmt.Sprintf(messageDebateCreatedFormat, settings.Topic, seconds, rounds)), nil
}

// boundedInt parses raw and rejects values outside [lo, hi] before any
// arithmetic can overflow.
func boundedInt(raw string, lo, hi int64) (int, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New("must be a whole number")
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("must be between %d and %d, got %d", lo, hi, n)
	}
	return int(n), nil
}

func (g *Gateway) joinDebate(cmd Command) (Result, error) {
	side, err := debate.ParseSide(cmd.arg(optionSide))
	if err != nil {
		return Result{}, err
	}
	res, err := g.directory.Join(cmd.ChannelID, cmd.UserID, side)
	if err != nil {
		return Result{}, err
	}
	switch {
	case res.AlreadyJoined:
		return ephemeral(fmt.Sprintf(messageAlreadyJoinedFormat, cmd.UserID, res.Side.Label())), nil
	case res.Switched:
		return reply(fmt.Sprintf(messageSwitchedFormat, cmd.UserID, res.Previous.Label(), res.Side.Label())), nil
	default:
		return reply(fmt.Sprintf(messageJoinedFormat, cmd.UserID, res.Side.Label())), nil
	}
}

func (g *Gateway) startDebate(cmd Command) (Result, error) {
	if _, err := g.directory.Start(cmd.ChannelID); err != nil {
		return Result{}, err
	}
	return reply(messageDebateStarted), nil
}

func (g *Gateway) recordPoint(cmd Command) (Result, error) {
	p, err := g.directory.RecordPoint(cmd.ChannelID, cmd.UserID, cmd.Args[optionPoint])
	if err != nil {
		return Result{}, err
	}
	g.metrics.PointRecorded(string(p.Side))
	return reply(truncateMessage(fmt.Sprintf(messagePointFormat, p.Seq, p.Side.Label(), p.Round, p.UserID, p.Text))), nil
}

func (g *Gateway) summarizeDebate(cmd Command) (Result, error) {
	summary, err := g.directory.Summarize(cmd.ChannelID)
	if err != nil {
		return Result{}, err
	}
	return reply(renderSummary(summary, g.location)), nil
}

func (g *Gateway) stopDebate(cmd Command) (Result, error) {
	summary, err := g.directory.Stop(cmd.ChannelID)
	if err != nil {
		return Result{}, err
	}
	return reply(truncateMessage(messageDebateStopped + "\n\n" + renderSummary(summary, g.location))), nil
}

func (g *Gateway) moodSummary(ctx context.Context, cmd Command) (Result, error) {
	if !g.moodEnabled {
		return ephemeral(messageEphemeralMoodDisabled), nil
	}
	days := 1
	if raw := cmd.arg(optionDays); raw != "" {
		n, err := strconv.Atoi(raw)
		if err == nil {
			days = n
		}
	}
	tally, err := g.mood.Summary(ctx, cmd.GuildID, days)
	if err != nil {
		return Result{}, err
	}
	return reply(renderMood(tally)), nil
}

func (g *Gateway) setLobby(ctx context.Context, cmd Command) (Result, error) {
	channelID := cmd.arg(optionChannel)
	if channelID == "" {
		return Result{}, errMissingOption
	}
	if err := g.rooms.SetLobby(ctx, cmd.GuildID, channelID); err != nil {
		return Result{}, err
	}
	return reply(fmt.Sprintf(messageLobbySetFormat, channelID)), nil
}

func (g *Gateway) clearLobby(ctx context.Context, cmd Command) (Result, error) {
	existed, err := g.rooms.ClearLobby(ctx, cmd.GuildID)
	if err != nil {
		return Result{}, err
	}
	if !existed {
		return ephemeral(messageLobbyNotConfigured), nil
	}
	return reply(messageLobbyDisabled), nil
}

func (g *Gateway) lobbyStatus(ctx context.Context, cmd Command) (Result, error) {
	channelID, err := g.rooms.Lobby(ctx, cmd.GuildID)
	if err != nil {
		return Result{}, err
	}
	if channelID == "" {
		return ephemeral(messageLobbyNotConfigured), nil
	}
	return ephemeral(fmt.Sprintf(messageLobbyStatusFormat, channelID)), nil
}

func (g *Gateway) errorResult(cmd Command, err error) Result {
	switch {
	case errors.Is(err, debate.ErrAlreadyExists):
		return ephemeral(messageEphemeralAlreadyExists)
	case errors.Is(err, debate.ErrNotFound):
		if cmd.Name == commandDebateStop {
			return ephemeral(messageEphemeralNoActiveSession)
		}
		return ephemeral(messageEphemeralNoSession)
	case errors.Is(err, debate.ErrInvalidPhase):
		return ephemeral(invalidPhaseMessage(cmd.Name))
	case errors.Is(err, debate.ErrInvalidSide):
		return ephemeral(messageEphemeralInvalidSide)
	case errors.Is(err, debate.ErrNotAParticipant):
		return ephemeral(messageEphemeralNotAParticipant)
	case errors.Is(err, debate.ErrInsufficientParticipants):
		return ephemeral(messageEphemeralInsufficient)
	case errors.Is(err, debate.ErrInvalidSettings):
		return ephemeral(invalidSettingsMessage(g.directory.Limits()))
	case errors.Is(err, debate.ErrEmptyPoint):
		return ephemeral(messageEphemeralEmptyPoint)
	case errors.Is(err, debate.ErrClosed):
		return ephemeral(messageEphemeralShuttingDown)
	case errors.Is(err, errMissingOption):
		return ephemeral(messageEphemeralChannelRequired)
	default:
		slog.Error("command failed", "command", cmd.Name, "guild_id", cmd.GuildID, "channel_id", cmd.ChannelID, "user_id", cmd.UserID, "error", err)
		return ephemeral(messageEphemeralUnexpected)
	}
}

func invalidPhaseMessage(command string) string {
	switch command {
	case commandDebateJoin:
		return messageEphemeralJoinAfterStart
	case commandDebateStart:
		return messageEphemeralAlreadyRunning
	case commandDebatePoint:
		return messageEphemeralNotStarted
	case commandDebateSummary:
		return messageEphemeralSummaryNotReady
	default:
		return messageEphemeralInvalidPhase
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, debate.ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, debate.ErrNotFound):
		return "not_found"
	case errors.Is(err, debate.ErrInvalidPhase):
		return "invalid_phase"
	case errors.Is(err, debate.ErrInvalidSide):
		return "invalid_side"
	case errors.Is(err, debate.ErrNotAParticipant):
		return "not_a_participant"
	case errors.Is(err, debate.ErrInsufficientParticipants):
		return "insufficient_participants"
	case errors.Is(err, debate.ErrInvalidSettings):
		return "invalid_settings"
	case errors.Is(err, debate.ErrEmptyPoint):
		return "empty_point"
	case errors.Is(err, debate.ErrClosed):
		return "shutting_down"
	case errors.Is(err, errMissingOption):
		return "missing_option"
	default:
		return "error"
	}
}
