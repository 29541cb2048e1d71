package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	ListActiveForCorridor(ctx context.Context, origin, destination string) ([]RateConfiguration, error)
	List(ctx context.Context, filter ListRequest) ([]RateConfiguration, error)
	Create(ctx context.Context, record *RateConfiguration) error
	// CreateBatch persists all records in one transaction: either every
	// record lands or none do.
	CreateBatch(ctx context.Context, records []*RateConfiguration) error
	FindByID(ctx context.Context, id snowflake.ID) (*RateConfiguration, error)
	Update(ctx context.Context, record *RateConfiguration) error
}
