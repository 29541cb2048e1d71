package recalc

import (
	appconfig "github.com/parcelroute/tarifa/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("recalc.worker",
	fx.Provide(func(cfg appconfig.Config) Config {
		return Config{BatchSize: cfg.RecalcBatchSize}
	}),
	fx.Provide(NewWorker),
)
