package recalc

import (
	"context"
	"errors"
	"math"

	"github.com/parcelroute/tarifa/internal/metrics"
	shipmentdomain "github.com/parcelroute/tarifa/internal/shipment/domain"
	tariffdomain "github.com/parcelroute/tarifa/internal/tariff/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// amountEpsilon is the smallest tariff difference worth persisting, half a
// cent so display-precision amounts survive unchanged.
const amountEpsilon = 0.005

type Params struct {
	fx.In

	Log          *zap.Logger
	ShipmentRepo shipmentdomain.Repository
	Calculator   tariffdomain.Service
	Config       Config           `optional:"true"`
	Metrics      *metrics.Metrics `optional:"true"`
}

// Worker re-applies the current rate configurations to every historical
// shipment. It walks the store in id order, checkpointing after each
// shipment, and takes no lock on rate configurations so live calculations
// keep running beside it.
type Worker struct {
	log          *zap.Logger
	shipmentRepo shipmentdomain.Repository
	calculator   tariffdomain.Service
	cfg          Config
	metrics      *metrics.Metrics
}

// Result reports a finished batch. Skips are per-shipment and non-fatal;
// when Run returns an error the counts must not be trusted.
type Result struct {
	UpdatedCount int `json:"updated_count"`
	SkippedCount int `json:"skipped_count"`
}

func NewWorker(p Params) *Worker {
	return &Worker{
		log:          p.Log.Named("recalc.worker"),
		shipmentRepo: p.ShipmentRepo,
		calculator:   p.Calculator,
		cfg:          p.Config.withDefaults(),
		metrics:      p.Metrics,
	}
}

func (w *Worker) Run(ctx context.Context) (Result, error) {
	var result Result
	var afterID int64

	for {
		batch, err := w.shipmentRepo.ListAfter(ctx, toID(afterID), w.cfg.BatchSize)
		if err != nil {
			return Result{}, err
		}
		if len(batch) == 0 {
			break
		}

		for i := range batch {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}

			shipment := &batch[i]
			afterID = int64(shipment.ID)

			updated, err := w.recalculateOne(ctx, shipment)
			if err != nil {
				return Result{}, err
			}
			if updated == nil {
				result.SkippedCount++
				if w.metrics != nil {
					w.metrics.RecalcSkipped.Inc()
				}
				continue
			}
			if *updated {
				result.UpdatedCount++
				if w.metrics != nil {
					w.metrics.RecalcUpdated.Inc()
				}
			}
		}
	}

	w.log.Info("tariff recalculation finished",
		zap.Int("updated", result.UpdatedCount),
		zap.Int("skipped", result.SkippedCount),
	)
	return result, nil
}

// recalculateOne returns nil when the shipment is skipped, otherwise whether
// its stored tariff changed. Per-shipment validation failures skip; store
// errors abort the batch.
func (w *Worker) recalculateOne(ctx context.Context, shipment *shipmentdomain.Shipment) (*bool, error) {
	if shipment.OriginCountry == "" || shipment.DestinationCountry == "" || shipment.DeclaredValue <= 0 {
		return nil, nil
	}

	calc, err := w.calculator.Calculate(ctx, tariffdomain.CalculationRequest{
		OriginCountry:      shipment.OriginCountry,
		DestinationCountry: shipment.DestinationCountry,
		DeclaredValue:      shipment.DeclaredValue,
		GoodsCategory:      shipment.GoodsCategory,
		PostalService:      shipment.PostalService,
		ShipDate:           shipment.ShipDate,
		Weight:             shipment.Weight,
	})
	if err != nil {
		if errors.Is(err, tariffdomain.ErrInvalidDeclaredValue) {
			return nil, nil
		}
		return nil, err
	}

	changed := math.Abs(calc.CalculatedTariff-shipment.TariffAmount) >= amountEpsilon
	if changed {
		if err := w.shipmentRepo.UpdateTariffAmount(ctx, shipment.ID, calc.CalculatedTariff); err != nil {
			return nil, err
		}
	}
	return &changed, nil
}
