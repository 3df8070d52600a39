package voiceroom

import (
	"github.com/foxseedlab/wasit/internal/clock"
	"github.com/foxseedlab/wasit/internal/discord"
	"github.com/foxseedlab/wasit/internal/repository"
	"github.com/foxseedlab/wasit/internal/telemetry"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Manager, error) {
		dc := do.MustInvoke[discord.Client](i)
		repo := do.MustInvoke[repository.Repository](i)
		c := do.MustInvoke[clock.Clock](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return NewManager(dc, repo, c, metrics), nil
	})
}
