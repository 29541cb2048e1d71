package service

import (
	"testing"
	"time"

	ratedomain "github.com/parcelroute/tarifa/internal/rateconfig/domain"
	routedomain "github.com/parcelroute/tarifa/internal/route/domain"
	shipmentdomain "github.com/parcelroute/tarifa/internal/shipment/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fallbackRate = 0.8

func findRoute(t *testing.T, routes []routedomain.Route, origin, destination string) routedomain.Route {
	t.Helper()
	for _, r := range routes {
		if r.OriginCountry == origin && r.DestinationCountry == destination {
			return r
		}
	}
	t.Fatalf("route %s->%s not found", origin, destination)
	return routedomain.Route{}
}

func TestBuildRoutesMergesHistoryAndConfiguration(t *testing.T) {
	aggregates := []shipmentdomain.CorridorAggregate{
		{OriginCountry: "US", DestinationCountry: "DE", ShipmentCount: 10, TotalDeclaredValue: 1000, TotalTariffAmount: 120},
		{OriginCountry: "US", DestinationCountry: "FR", ShipmentCount: 3, TotalDeclaredValue: 200, TotalTariffAmount: 10},
	}
	configs := []ratedomain.RateConfiguration{
		{OriginCountry: "US", DestinationCountry: "DE", GoodsCategory: ratedomain.Wildcard, PostalService: ratedomain.Wildcard, TariffRate: 0.15},
		{OriginCountry: "GB", DestinationCountry: "JP", GoodsCategory: ratedomain.Wildcard, PostalService: ratedomain.Wildcard, TariffRate: 0.25},
	}

	routes := BuildRoutes(aggregates, configs, fallbackRate)
	require.Len(t, routes, 3, "one route per distinct corridor across the union")

	configured := findRoute(t, routes, "US", "DE")
	assert.Equal(t, int64(10), configured.ShipmentCount)
	assert.InDelta(t, 0.12, configured.HistoricalRate, 1e-9)
	require.NotNil(t, configured.ConfiguredRate)
	assert.Equal(t, 0.15, *configured.ConfiguredRate)
	assert.True(t, configured.HasConfiguredRate)

	historyOnly := findRoute(t, routes, "US", "FR")
	assert.False(t, historyOnly.HasConfiguredRate)
	assert.Nil(t, historyOnly.ConfiguredRate)

	synthetic := findRoute(t, routes, "GB", "JP")
	assert.Zero(t, synthetic.ShipmentCount)
	assert.Equal(t, fallbackRate, synthetic.HistoricalRate)
	assert.True(t, synthetic.HasConfiguredRate)
}

func TestBuildRoutesNoDuplicates(t *testing.T) {
	aggregates := []shipmentdomain.CorridorAggregate{
		{OriginCountry: "US", DestinationCountry: "DE", ShipmentCount: 1, TotalDeclaredValue: 100, TotalTariffAmount: 10},
	}
	configs := []ratedomain.RateConfiguration{
		{OriginCountry: "US", DestinationCountry: "DE", GoodsCategory: ratedomain.Wildcard, TariffRate: 0.1},
		{OriginCountry: "US", DestinationCountry: "DE", GoodsCategory: "electronics", TariffRate: 0.1, CategorySurcharge: 0.05},
		{OriginCountry: "US", DestinationCountry: "DE", GoodsCategory: "food", TariffRate: 0.1, CategorySurcharge: 0.01},
	}

	routes := BuildRoutes(aggregates, configs, fallbackRate)
	assert.Len(t, routes, 1)
}

func TestBuildRoutesBroadestConfigurationWinsDisplay(t *testing.T) {
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.AddDate(0, 2, 0)
	configs := []ratedomain.RateConfiguration{
		{OriginCountry: "US", DestinationCountry: "DE", GoodsCategory: "electronics", PostalService: "express", TariffRate: 0.30, CreatedAt: newer},
		{OriginCountry: "US", DestinationCountry: "DE", GoodsCategory: ratedomain.Wildcard, PostalService: ratedomain.Wildcard, TariffRate: 0.10, CreatedAt: older},
	}

	routes := BuildRoutes(nil, configs, fallbackRate)
	require.Len(t, routes, 1)
	require.NotNil(t, routes[0].ConfiguredRate)
	assert.Equal(t, 0.10, *routes[0].ConfiguredRate, "wildcard base record is the display rate")
}

func TestBuildRoutesZeroDeclaredValueGuard(t *testing.T) {
	aggregates := []shipmentdomain.CorridorAggregate{
		{OriginCountry: "US", DestinationCountry: "DE", ShipmentCount: 2, TotalDeclaredValue: 0, TotalTariffAmount: 0},
	}

	routes := BuildRoutes(aggregates, nil, fallbackRate)
	require.Len(t, routes, 1)
	assert.Zero(t, routes[0].HistoricalRate)
}

func TestBuildRoutesEmptyInputs(t *testing.T) {
	routes := BuildRoutes(nil, nil, fallbackRate)
	assert.Empty(t, routes)
}
