package service

import (
	"context"
	"math"
	"strings"

	"github.com/parcelroute/tarifa/internal/clock"
	"github.com/parcelroute/tarifa/internal/config"
	"github.com/parcelroute/tarifa/internal/metrics"
	ratedomain "github.com/parcelroute/tarifa/internal/rateconfig/domain"
	shipmentdomain "github.com/parcelroute/tarifa/internal/shipment/domain"
	tariffdomain "github.com/parcelroute/tarifa/internal/tariff/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type serviceParams struct {
	fx.In

	Log          *zap.Logger
	Cfg          config.Config
	Clock        clock.Clock
	Resolver     ratedomain.Resolver
	ShipmentRepo shipmentdomain.Repository
	Metrics      *metrics.Metrics `optional:"true"`
}

type Service struct {
	log          *zap.Logger
	cfg          config.Config
	clock        clock.Clock
	resolver     ratedomain.Resolver
	shipmentRepo shipmentdomain.Repository
	metrics      *metrics.Metrics
}

func NewService(p serviceParams) tariffdomain.Service {
	return &Service{
		log:          p.Log.Named("tariff.service"),
		cfg:          p.Cfg,
		clock:        p.Clock,
		resolver:     p.Resolver,
		shipmentRepo: p.ShipmentRepo,
		metrics:      p.Metrics,
	}
}

// Calculate resolves the applicable rate for the request and produces the
// tariff with its breakdown. The base rate always comes from the wildcard
// category record for the scope; a concrete category only contributes its
// category_surcharge on top. No configuration at all drops to the corridor's
// historical rate, then to the system default.
func (s *Service) Calculate(ctx context.Context, req tariffdomain.CalculationRequest) (*tariffdomain.CalculationResult, error) {
	if req.DeclaredValue <= 0 {
		return nil, tariffdomain.ErrInvalidDeclaredValue
	}

	origin := strings.TrimSpace(req.OriginCountry)
	destination := strings.TrimSpace(req.DestinationCountry)
	category := strings.TrimSpace(req.GoodsCategory)
	postalService := strings.TrimSpace(req.PostalService)

	day := req.ShipDate
	if day.IsZero() {
		day = s.clock.Now()
	}

	base, err := s.resolver.Resolve(ctx, ratedomain.Query{
		OriginCountry:      origin,
		DestinationCountry: destination,
		GoodsCategory:      ratedomain.Wildcard,
		PostalService:      postalService,
		Date:               day,
		Weight:             req.Weight,
	})
	if err != nil {
		return nil, err
	}

	result := &tariffdomain.CalculationResult{
		OriginCountry:      origin,
		DestinationCountry: destination,
		DeclaredValue:      req.DeclaredValue,
		GoodsCategory:      category,
		PostalService:      postalService,
		ShipDate:           day.Format("2006-01-02"),
		Weight:             req.Weight,
		Currency:           "USD",
	}

	if base == nil {
		if err := s.applyFallback(ctx, result, origin, destination); err != nil {
			return nil, err
		}
	} else {
		result.CalculationMethod = tariffdomain.MethodConfigured
		result.BaseRate = base.TariffRate
		result.MinimumTariff = base.MinimumTariff
		result.MaximumTariff = base.MaximumTariff
		result.Currency = base.Currency

		if category != "" && category != ratedomain.Wildcard {
			surcharge, err := s.resolver.Resolve(ctx, ratedomain.Query{
				OriginCountry:      origin,
				DestinationCountry: destination,
				GoodsCategory:      category,
				PostalService:      postalService,
				Date:               day,
				Weight:             req.Weight,
			})
			if err != nil {
				return nil, err
			}
			if surcharge != nil && !surcharge.GoodsCategory.IsWildcard() {
				result.SurchargeRate = surcharge.CategorySurcharge
			}
		}
	}

	result.CombinedRate = result.BaseRate + result.SurchargeRate
	result.HasSurcharge = result.SurchargeRate > 0

	tariff := req.DeclaredValue * result.CombinedRate
	if tariff < result.MinimumTariff {
		tariff = result.MinimumTariff
	}
	if result.MaximumTariff > 0 && tariff > result.MaximumTariff {
		tariff = result.MaximumTariff
	}
	result.CalculatedTariff = tariff

	result.Breakdown = tariffdomain.Breakdown{
		BasePercent:      displayPercent(result.BaseRate),
		SurchargePercent: displayPercent(result.SurchargeRate),
		CombinedPercent:  displayPercent(result.CombinedRate),
		BaseAmount:       req.DeclaredValue * result.BaseRate,
		SurchargeAmount:  req.DeclaredValue * result.SurchargeRate,
	}

	if s.metrics != nil {
		s.metrics.CalculationsTotal.WithLabelValues(string(result.CalculationMethod)).Inc()
	}

	return result, nil
}

func (s *Service) applyFallback(ctx context.Context, result *tariffdomain.CalculationResult, origin, destination string) error {
	result.CalculationMethod = tariffdomain.MethodFallback
	result.MinimumTariff = s.cfg.DefaultMinimumTariff

	rate := s.cfg.DefaultTariffRate
	agg, err := s.shipmentRepo.AggregateForCorridor(ctx, origin, destination)
	if err != nil {
		return err
	}
	if agg != nil && agg.TotalDeclaredValue > 0 {
		rate = agg.HistoricalRate()
		result.Message = "no configured rate found; applied historical corridor rate"
	} else {
		result.Message = "no configured rate found; applied system default rate"
	}
	result.BaseRate = rate

	s.log.Debug("tariff fallback applied",
		zap.String("origin", origin),
		zap.String("destination", destination),
		zap.Float64("rate", rate),
	)
	return nil
}

// displayPercent converts a fraction into a percentage rounded to two
// decimals for presentation.
func displayPercent(rate float64) float64 {
	return math.Round(rate*10000) / 100
}
