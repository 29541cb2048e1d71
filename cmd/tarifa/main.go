package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/parcelroute/tarifa/internal/clock"
	"github.com/parcelroute/tarifa/internal/config"
	"github.com/parcelroute/tarifa/internal/logger"
	"github.com/parcelroute/tarifa/internal/migration"
	"github.com/parcelroute/tarifa/internal/server"
	"github.com/parcelroute/tarifa/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		clock.Module,
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
