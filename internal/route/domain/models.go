package domain

import "context"

// Route is a derived, read-only view of one corridor: shipment history
// roll-ups merged with the configured rate surfaced for display. A route
// with zero shipments but a ConfiguredRate is synthetic, materialized so
// priced-but-unshipped corridors still show up.
type Route struct {
	OriginCountry      string   `json:"origin_country"`
	DestinationCountry string   `json:"destination_country"`
	ShipmentCount      int64    `json:"shipment_count"`
	TotalDeclaredValue float64  `json:"total_declared_value"`
	TotalTariffAmount  float64  `json:"total_tariff_amount"`
	HistoricalRate     float64  `json:"historical_rate"`
	ConfiguredRate     *float64 `json:"configured_rate,omitempty"`
	HasConfiguredRate  bool     `json:"has_configured_rate"`
}

type Service interface {
	List(ctx context.Context) ([]Route, error)
}
