package reference

import (
	"context"
	"sort"

	"github.com/parcelroute/tarifa/internal/config"
	ratedomain "github.com/parcelroute/tarifa/internal/rateconfig/domain"
	"github.com/parcelroute/tarifa/internal/reference/domain"
	shipmentdomain "github.com/parcelroute/tarifa/internal/shipment/domain"
	"go.uber.org/fx"
)

// Seed lists cover the categories and services the authoring UI offers even
// before any configuration references them.
var (
	seedCategories = []string{"electronics", "clothing", "food", "pharmaceuticals", "machinery", "documents"}
	seedServices   = []string{"standard", "express", "economy", "registered"}
)

type serviceParams struct {
	fx.In

	Cfg          config.Config
	RateRepo     ratedomain.Repository
	ShipmentRepo shipmentdomain.Repository
}

type service struct {
	cfg          config.Config
	rateRepo     ratedomain.Repository
	shipmentRepo shipmentdomain.Repository
}

func NewService(p serviceParams) domain.Service {
	return &service{
		cfg:          p.Cfg,
		rateRepo:     p.RateRepo,
		shipmentRepo: p.ShipmentRepo,
	}
}

func (s *service) ListCategories(ctx context.Context) ([]string, error) {
	configs, err := s.rateRepo.List(ctx, ratedomain.ListRequest{})
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(configs))
	for _, cfg := range configs {
		values = append(values, string(cfg.GoodsCategory))
	}
	return mergeWithSeeds(seedCategories, values), nil
}

func (s *service) ListServices(ctx context.Context) ([]string, error) {
	configs, err := s.rateRepo.List(ctx, ratedomain.ListRequest{})
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(configs))
	for _, cfg := range configs {
		values = append(values, string(cfg.PostalService))
	}
	return mergeWithSeeds(seedServices, values), nil
}

func (s *service) SystemDefaults(ctx context.Context) (domain.SystemDefaults, domain.SystemStats, error) {
	stats, err := s.shipmentRepo.Stats(ctx)
	if err != nil {
		return domain.SystemDefaults{}, domain.SystemStats{}, err
	}

	defaults := domain.SystemDefaults{
		DefaultTariffRate:      s.cfg.DefaultTariffRate,
		DefaultMinimumTariff:   s.cfg.DefaultMinimumTariff,
		SuggestedMaximumTariff: s.cfg.SuggestedMaximumTariff,
	}
	return defaults, domain.SystemStats{
		TotalShipments:     stats.TotalShipments,
		AverageRate:        stats.AverageRate(),
		TotalDeclaredValue: stats.TotalDeclaredValue,
	}, nil
}

// mergeWithSeeds returns the wildcard first, then the sorted union of seeds
// and observed values.
func mergeWithSeeds(seeds, observed []string) []string {
	seen := make(map[string]bool, len(seeds)+len(observed))
	for _, v := range seeds {
		seen[v] = true
	}
	for _, v := range observed {
		if v != "" && v != ratedomain.Wildcard {
			seen[v] = true
		}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)

	return append([]string{ratedomain.Wildcard}, values...)
}
