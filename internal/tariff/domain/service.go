package domain

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidDeclaredValue = errors.New("invalid_declared_value")

// CalculationMethod tells the caller whether a configured rate applied or
// the fallback policy did.
type CalculationMethod string

const (
	MethodConfigured CalculationMethod = "configured"
	MethodFallback   CalculationMethod = "fallback"
)

type Service interface {
	Calculate(ctx context.Context, req CalculationRequest) (*CalculationResult, error)
}

type CalculationRequest struct {
	OriginCountry      string
	DestinationCountry string
	DeclaredValue      float64
	GoodsCategory      string
	PostalService      string
	ShipDate           time.Time
	Weight             *float64
}

// Breakdown reports the base and surcharge portions of a calculation.
// Percentages are rounded for display; the rates on the result stay
// unrounded fractions.
type Breakdown struct {
	BasePercent      float64 `json:"base_percent"`
	SurchargePercent float64 `json:"surcharge_percent"`
	CombinedPercent  float64 `json:"combined_percent"`
	BaseAmount       float64 `json:"base_amount"`
	SurchargeAmount  float64 `json:"surcharge_amount"`
}

type CalculationResult struct {
	OriginCountry      string            `json:"origin_country"`
	DestinationCountry string            `json:"destination_country"`
	DeclaredValue      float64           `json:"declared_value"`
	GoodsCategory      string            `json:"goods_category,omitempty"`
	PostalService      string            `json:"postal_service,omitempty"`
	ShipDate           string            `json:"ship_date,omitempty"`
	Weight             *float64          `json:"weight,omitempty"`
	CalculationMethod  CalculationMethod `json:"calculation_method"`
	BaseRate           float64           `json:"base_rate"`
	SurchargeRate      float64           `json:"surcharge_rate"`
	CombinedRate       float64           `json:"combined_rate"`
	MinimumTariff      float64           `json:"minimum_tariff"`
	MaximumTariff      float64           `json:"maximum_tariff"`
	CalculatedTariff   float64           `json:"calculated_tariff"`
	HasSurcharge       bool              `json:"has_surcharge"`
	Currency           string            `json:"currency"`
	Breakdown          Breakdown         `json:"breakdown"`
	Message            string            `json:"message,omitempty"`
}
