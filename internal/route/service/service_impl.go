package service

import (
	"context"
	"sort"

	"github.com/parcelroute/tarifa/internal/config"
	ratedomain "github.com/parcelroute/tarifa/internal/rateconfig/domain"
	routedomain "github.com/parcelroute/tarifa/internal/route/domain"
	shipmentdomain "github.com/parcelroute/tarifa/internal/shipment/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type serviceParams struct {
	fx.In

	Log          *zap.Logger
	Cfg          config.Config
	ShipmentRepo shipmentdomain.Repository
	RateRepo     ratedomain.Repository
}

type Service struct {
	log          *zap.Logger
	cfg          config.Config
	shipmentRepo shipmentdomain.Repository
	rateRepo     ratedomain.Repository
}

func NewService(p serviceParams) routedomain.Service {
	return &Service{
		log:          p.Log.Named("route.service"),
		cfg:          p.Cfg,
		shipmentRepo: p.ShipmentRepo,
		rateRepo:     p.RateRepo,
	}
}

func (s *Service) List(ctx context.Context) ([]routedomain.Route, error) {
	aggregates, err := s.shipmentRepo.AggregateByCorridor(ctx)
	if err != nil {
		return nil, err
	}

	active := true
	configs, err := s.rateRepo.List(ctx, ratedomain.ListRequest{IsActive: &active})
	if err != nil {
		return nil, err
	}

	return BuildRoutes(aggregates, configs, s.cfg.DefaultTariffRate), nil
}

// BuildRoutes merges shipment-derived corridor statistics with
// configuration-only corridors into one listing, exactly one route per
// distinct origin/destination pair. Corridors carrying only a configuration
// become synthetic zero-shipment routes reporting the fallback rate as
// their historical rate.
func BuildRoutes(aggregates []shipmentdomain.CorridorAggregate, configs []ratedomain.RateConfiguration, fallbackRate float64) []routedomain.Route {
	type corridor struct {
		origin, destination string
	}

	routes := make(map[corridor]*routedomain.Route, len(aggregates))
	for _, agg := range aggregates {
		key := corridor{agg.OriginCountry, agg.DestinationCountry}
		routes[key] = &routedomain.Route{
			OriginCountry:      agg.OriginCountry,
			DestinationCountry: agg.DestinationCountry,
			ShipmentCount:      agg.ShipmentCount,
			TotalDeclaredValue: agg.TotalDeclaredValue,
			TotalTariffAmount:  agg.TotalTariffAmount,
			HistoricalRate:     agg.HistoricalRate(),
		}
	}

	// Broadest scope wins the display slot: a wildcard/wildcard base record
	// over anything narrower, latest created among equals.
	display := make(map[corridor]*ratedomain.RateConfiguration, len(configs))
	for i := range configs {
		cfg := &configs[i]
		key := corridor{cfg.OriginCountry, cfg.DestinationCountry}
		held, ok := display[key]
		if !ok || cfg.Specificity() < held.Specificity() ||
			(cfg.Specificity() == held.Specificity() && cfg.CreatedAt.After(held.CreatedAt)) {
			display[key] = cfg
		}
	}

	for key, cfg := range display {
		route, ok := routes[key]
		if !ok {
			route = &routedomain.Route{
				OriginCountry:      key.origin,
				DestinationCountry: key.destination,
				HistoricalRate:     fallbackRate,
			}
			routes[key] = route
		}
		rate := cfg.TariffRate
		route.ConfiguredRate = &rate
		route.HasConfiguredRate = true
	}

	out := make([]routedomain.Route, 0, len(routes))
	for _, route := range routes {
		out = append(out, *route)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OriginCountry != out[j].OriginCountry {
			return out[i].OriginCountry < out[j].OriginCountry
		}
		return out[i].DestinationCountry < out[j].DestinationCountry
	})
	return out
}
