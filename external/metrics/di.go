package metrics

import (
	"github.com/foxseedlab/wasit/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		reg := do.MustInvoke[*prometheus.Registry](i)
		return NewServer(cfg.MetricsAddr, reg), nil
	})
}
