package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	configloader "github.com/foxseedlab/wasit/external/config"
	"github.com/foxseedlab/wasit/external/discord"
	metricsimpl "github.com/foxseedlab/wasit/external/metrics"
	repositoryimpl "github.com/foxseedlab/wasit/external/repository"
	webhookimpl "github.com/foxseedlab/wasit/external/webhook"
	"github.com/foxseedlab/wasit/internal/clock"
	"github.com/foxseedlab/wasit/internal/config"
	"github.com/foxseedlab/wasit/internal/debate"
	discordpkg "github.com/foxseedlab/wasit/internal/discord"
	"github.com/foxseedlab/wasit/internal/gateway"
	"github.com/foxseedlab/wasit/internal/mood"
	"github.com/foxseedlab/wasit/internal/telemetry"
	"github.com/foxseedlab/wasit/internal/voiceroom"
	"github.com/samber/do/v2"
	"golang.org/x/sync/errgroup"
)

const discordConnectTimeout = 20 * time.Second

func main() {
	slog.Info("startup: loading configuration")
	cfg := mustLoadConfig()
	initLogger(cfg)
	slog.Info("startup: configuration loaded", "env", cfg.Env, "timezone", cfg.Timezone)

	slog.Info("startup: building dependency graph")
	injector := setupDI(cfg)

	slog.Info("startup: launching discord bot")
	if err := runBot(cfg, injector); err != nil {
		slog.Error("bot stopped with error", "error", err)
		os.Exit(1)
	}
}

func mustLoadConfig() *config.Config {
	cfg, err := configloader.Load()
	if err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

func initLogger(cfg *config.Config) {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}

func setupDI(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue[clock.Clock](injector, clock.New())
	telemetry.RegisterDI(injector)
	metricsimpl.RegisterDI(injector)
	repositoryimpl.RegisterDI(injector)
	discord.RegisterDI(injector)
	webhookimpl.RegisterDI(injector)
	debate.RegisterDI(injector)
	mood.RegisterDI(injector)
	voiceroom.RegisterDI(injector)
	gateway.RegisterDI(injector)

	return injector
}

func runBot(cfg *config.Config, injector do.Injector) error {
	dc := do.MustInvoke[discordpkg.Client](injector)
	directory := do.MustInvoke[*debate.Directory](injector)
	announcer := do.MustInvoke[*gateway.Announcer](injector)
	gw := do.MustInvoke[*gateway.Gateway](injector)
	metrics := do.MustInvoke[*telemetry.Metrics](injector)
	metricsServer := do.MustInvoke[*metricsimpl.Server](injector)

	metrics.TrackActiveSessions(directory.Len)

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), discordConnectTimeout)
	defer cancelConnect()

	slog.Info("startup: connecting to discord gateway")
	if err := dc.Connect(connectCtx); err != nil {
		return err
	}
	slog.Info("startup: discord connected")

	defs := gw.SlashCommandDefinitions()
	if err := dc.UpsertGuildSlashCommands(cfg.DiscordGuildID, defs); err != nil {
		slog.Error("failed to upsert slash commands", "error", err, "guild_id", cfg.DiscordGuildID)
		_ = dc.Close()
		return err
	}

	dc.RegisterSlashCommandHandler(gw.HandleSlashCommand)
	dc.RegisterMessageHandler(gw.HandleMessage)
	dc.RegisterVoiceStateUpdateHandler(gw.HandleVoiceStateUpdate)
	slog.Info("discord handlers registered", "guild_id", cfg.DiscordGuildID, "commands", gateway.CommandNames(defs))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return metricsServer.Run(gctx)
	})
	done := make(chan struct{})
	go func() {
		slog.Info("startup: entering discord run loop")
		if err := dc.Run(); err != nil {
			slog.Error("discord run failed", "error", err)
		}
		close(done)
	}()
	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-done:
			stop()
		}
		return nil
	})

	err := g.Wait()
	slog.Info("shutting down")

	ended := directory.Shutdown()
	slog.Info("debate sessions ended for shutdown", "count", ended)
	announcer.Close()
	if closeErr := dc.Close(); closeErr != nil {
		slog.Error("discord close failed", "error", closeErr)
	}
	return err
}
