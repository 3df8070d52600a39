package gateway

import (
	"github.com/foxseedlab/wasit/internal/config"
	"github.com/foxseedlab/wasit/internal/debate"
	"github.com/foxseedlab/wasit/internal/discord"
	"github.com/foxseedlab/wasit/internal/mood"
	"github.com/foxseedlab/wasit/internal/repository"
	"github.com/foxseedlab/wasit/internal/telemetry"
	"github.com/foxseedlab/wasit/internal/voiceroom"
	"github.com/foxseedlab/wasit/internal/webhook"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Announcer, error) {
		cfg := do.MustInvoke[*config.Config](i)
		dc := do.MustInvoke[discord.Client](i)
		repo := do.MustInvoke[repository.Repository](i)
		wh := do.MustInvoke[webhook.Sender](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return NewAnnouncer(dc, repo, wh, metrics, cfg.Location(), cfg.NotifyQueueSize), nil
	})
	do.Provide(injector, func(i do.Injector) (debate.Notifier, error) {
		return do.MustInvoke[*Announcer](i), nil
	})
	do.Provide(injector, func(i do.Injector) (*Gateway, error) {
		cfg := do.MustInvoke[*config.Config](i)
		directory := do.MustInvoke[*debate.Directory](i)
		tracker := do.MustInvoke[*mood.Tracker](i)
		rooms := do.MustInvoke[*voiceroom.Manager](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return NewGateway(Options{
			GuildID:     cfg.DiscordGuildID,
			MoodEnabled: cfg.MoodTrackingEnabled,
			Location:    cfg.Location(),
		}, directory, tracker, rooms, metrics), nil
	})
}
