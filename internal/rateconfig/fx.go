package rateconfig

import (
	"github.com/parcelroute/tarifa/internal/rateconfig/repository"
	"github.com/parcelroute/tarifa/internal/rateconfig/service"
	"go.uber.org/fx"
)

var Module = fx.Module("rateconfig.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewResolver),
	fx.Provide(service.NewService),
)
