package domain

import "context"

// SystemDefaults are the fallback values reported to authoring clients.
type SystemDefaults struct {
	DefaultTariffRate      float64 `json:"default_tariff_rate"`
	DefaultMinimumTariff   float64 `json:"default_minimum_tariff"`
	SuggestedMaximumTariff float64 `json:"suggested_maximum_tariff"`
}

// SystemStats summarizes shipment history for the defaults view.
type SystemStats struct {
	TotalShipments     int64   `json:"total_shipments"`
	AverageRate        float64 `json:"average_rate"`
	TotalDeclaredValue float64 `json:"total_declared_value"`
}

type Service interface {
	// ListCategories and ListServices always include the wildcard.
	ListCategories(ctx context.Context) ([]string, error)
	ListServices(ctx context.Context) ([]string, error)
	SystemDefaults(ctx context.Context) (SystemDefaults, SystemStats, error)
}
