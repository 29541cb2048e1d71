package route

import (
	"github.com/parcelroute/tarifa/internal/route/service"
	"go.uber.org/fx"
)

var Module = fx.Module("route.service",
	fx.Provide(service.NewService),
)
