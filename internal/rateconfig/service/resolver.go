package service

import (
	"context"

	"github.com/parcelroute/tarifa/internal/clock"
	ratedomain "github.com/parcelroute/tarifa/internal/rateconfig/domain"
	"go.uber.org/fx"
)

type resolverParam struct {
	fx.In

	Repository ratedomain.Repository
	Clock      clock.Clock
}

type resolver struct {
	repo  ratedomain.Repository
	clock clock.Clock
}

func NewResolver(p resolverParam) ratedomain.Resolver {
	return &resolver{repo: p.Repository, clock: p.Clock}
}

// Resolve returns the best-matching active configuration for the query, or
// nil when no record matches. Candidates are filtered on corridor, date
// window, weight window and scope, then ranked by specificity with the most
// recently created record winning ties.
func (r *resolver) Resolve(ctx context.Context, q ratedomain.Query) (*ratedomain.RateConfiguration, error) {
	candidates, err := r.repo.ListActiveForCorridor(ctx, q.OriginCountry, q.DestinationCountry)
	if err != nil {
		return nil, err
	}

	day := q.Date
	if day.IsZero() {
		day = r.clock.Now()
	}

	var best *ratedomain.RateConfiguration
	for i := range candidates {
		c := &candidates[i]
		if !c.InDateWindow(day) {
			continue
		}
		if !c.InWeightWindow(q.Weight) {
			continue
		}
		if !c.PostalService.Matches(q.PostalService) {
			continue
		}
		if !c.GoodsCategory.Matches(q.GoodsCategory) {
			continue
		}
		if best == nil || c.Specificity() > best.Specificity() {
			best = c
			continue
		}
		// Equal specificity: candidates arrive ordered created_at DESC, so
		// the record already held supersedes.
	}
	return best, nil
}
