package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	AggregateByCorridor(ctx context.Context) ([]CorridorAggregate, error)
	AggregateForCorridor(ctx context.Context, origin, destination string) (*CorridorAggregate, error)
	Stats(ctx context.Context) (Stats, error)
	// ListAfter pages shipments by ascending id for batch walks.
	ListAfter(ctx context.Context, afterID snowflake.ID, limit int) ([]Shipment, error)
	UpdateTariffAmount(ctx context.Context, id snowflake.ID, amount float64) error
}
