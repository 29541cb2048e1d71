package migration

import (
	"github.com/parcelroute/tarifa/internal/config"
	ratedomain "github.com/parcelroute/tarifa/internal/rateconfig/domain"
	shipmentdomain "github.com/parcelroute/tarifa/internal/shipment/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType != "postgres" {
			// Dev and test databases build their schema from the models.
			return conn.AutoMigrate(
				&ratedomain.RateConfiguration{},
				&shipmentdomain.Shipment{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
