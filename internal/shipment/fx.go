package shipment

import (
	"github.com/parcelroute/tarifa/internal/shipment/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("shipment.store",
	fx.Provide(repository.NewRepository),
)
