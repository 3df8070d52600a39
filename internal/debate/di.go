package debate

import (
	"time"

	"github.com/foxseedlab/wasit/internal/clock"
	"github.com/foxseedlab/wasit/internal/config"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Directory, error) {
		cfg := do.MustInvoke[*config.Config](i)
		c := do.MustInvoke[clock.Clock](i)
		notifier := do.MustInvoke[Notifier](i)
		return NewDirectory(c, notifier, LimitsFromConfig(cfg)), nil
	})
}

func LimitsFromConfig(cfg *config.Config) Limits {
	return Limits{
		MinRoundDuration: time.Duration(cfg.DebateMinRoundSeconds) * time.Second,
		MaxRoundDuration: time.Duration(cfg.DebateMaxRoundSeconds) * time.Second,
		MaxRoundCount:    cfg.DebateMaxRounds,
		SetupTimeout:     time.Duration(cfg.DebateSetupTimeoutMin) * time.Minute,
	}
}
