package domain

import (
	"context"
	"time"
)

// Resolver picks the single best-matching active configuration for a
// shipment's attributes, or nil when nothing matches.
type Resolver interface {
	Resolve(ctx context.Context, q Query) (*RateConfiguration, error)
}

type Service interface {
	List(ctx context.Context, req ListRequest) ([]Response, int, error)
	BulkCreate(ctx context.Context, req BulkCreateRequest) (int, error)
	Deactivate(ctx context.Context, id string) (*Response, error)
}

// Query carries the shipment attributes a resolution runs against.
type Query struct {
	OriginCountry      string
	DestinationCountry string
	GoodsCategory      string
	PostalService      string
	Date               time.Time
	Weight             *float64
}

type ListRequest struct {
	OriginCountry      string
	DestinationCountry string
	IsActive           *bool
	SortBy             string
	OrderBy            string
}

// CategoryEntry is one surcharge toggle in a bulk authoring request. Only
// enabled entries expand into persisted records.
type CategoryEntry struct {
	Category      string  `json:"category"`
	SurchargeRate float64 `json:"surcharge_rate"`
	Enabled       bool    `json:"enabled"`
}

// BulkCreateRequest authors one base record plus per-category surcharge
// records sharing a single scope and validity window.
type BulkCreateRequest struct {
	OriginCountry      string          `json:"origin_country"`
	DestinationCountry string          `json:"destination_country"`
	PostalService      string          `json:"postal_service"`
	StartDate          time.Time       `json:"start_date"`
	EndDate            time.Time       `json:"end_date"`
	MinWeight          *float64        `json:"min_weight,omitempty"`
	MaxWeight          *float64        `json:"max_weight,omitempty"`
	BaseRate           float64         `json:"base_rate"`
	MinimumTariff      float64         `json:"minimum_tariff"`
	MaximumTariff      float64         `json:"maximum_tariff"`
	Currency           string          `json:"currency"`
	Notes              string          `json:"notes"`
	Categories         []CategoryEntry `json:"categories"`
}

type Response struct {
	ID                 string    `json:"id"`
	OriginCountry      string    `json:"origin_country"`
	DestinationCountry string    `json:"destination_country"`
	GoodsCategory      string    `json:"goods_category"`
	PostalService      string    `json:"postal_service"`
	StartDate          string    `json:"start_date"`
	EndDate            string    `json:"end_date"`
	MinWeight          *float64  `json:"min_weight,omitempty"`
	MaxWeight          *float64  `json:"max_weight,omitempty"`
	TariffRate         float64   `json:"tariff_rate"`
	CategorySurcharge  float64   `json:"category_surcharge"`
	MinimumTariff      float64   `json:"minimum_tariff"`
	MaximumTariff      float64   `json:"maximum_tariff"`
	Currency           string    `json:"currency"`
	IsActive           bool      `json:"is_active"`
	Notes              string    `json:"notes,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
