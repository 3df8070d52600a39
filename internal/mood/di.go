package mood

import (
	"github.com/foxseedlab/wasit/internal/clock"
	"github.com/foxseedlab/wasit/internal/config"
	"github.com/foxseedlab/wasit/internal/repository"
	"github.com/foxseedlab/wasit/internal/telemetry"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Tracker, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo := do.MustInvoke[repository.Repository](i)
		c := do.MustInvoke[clock.Clock](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return NewTracker(repo, NewKeywordClassifier(), c, cfg.Location(), cfg.MoodMaxDays, metrics), nil
	})
}
