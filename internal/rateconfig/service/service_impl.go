package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/parcelroute/tarifa/internal/metrics"
	ratedomain "github.com/parcelroute/tarifa/internal/rateconfig/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type serviceParams struct {
	fx.In

	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    ratedomain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	genID   *snowflake.Node
	repo    ratedomain.Repository
	metrics *metrics.Metrics
}

func NewService(p serviceParams) ratedomain.Service {
	return &Service{
		log:     p.Log.Named("rateconfig.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *Service) List(ctx context.Context, req ratedomain.ListRequest) ([]ratedomain.Response, int, error) {
	filter := ratedomain.ListRequest{
		OriginCountry:      strings.TrimSpace(req.OriginCountry),
		DestinationCountry: strings.TrimSpace(req.DestinationCountry),
		IsActive:           req.IsActive,
		SortBy:             strings.TrimSpace(req.SortBy),
		OrderBy:            strings.TrimSpace(req.OrderBy),
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]ratedomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, toResponse(&items[i]))
	}
	return resp, len(resp), nil
}

// BulkCreate expands one authoring request into a base record plus one
// surcharge record per enabled category, persisted atomically. The base
// record carries the wildcard category; surcharge records copy the base rate
// and keep their delta in category_surcharge.
func (s *Service) BulkCreate(ctx context.Context, req ratedomain.BulkCreateRequest) (int, error) {
	origin := strings.TrimSpace(req.OriginCountry)
	if origin == "" {
		return 0, ratedomain.ErrInvalidOrigin
	}
	destination := strings.TrimSpace(req.DestinationCountry)
	if destination == "" {
		return 0, ratedomain.ErrInvalidDestination
	}

	enabled := make([]ratedomain.CategoryEntry, 0, len(req.Categories))
	for _, entry := range req.Categories {
		if !entry.Enabled {
			continue
		}
		category := strings.TrimSpace(entry.Category)
		if category == "" || category == ratedomain.Wildcard {
			continue
		}
		entry.Category = category
		enabled = append(enabled, entry)
	}
	if len(enabled) == 0 {
		return 0, ratedomain.ErrNoEnabledCategories
	}

	serviceScope := strings.TrimSpace(req.PostalService)
	if serviceScope == "" {
		serviceScope = ratedomain.Wildcard
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "USD"
	}

	now := time.Now().UTC()
	shared := ratedomain.RateConfiguration{
		OriginCountry:      origin,
		DestinationCountry: destination,
		GoodsCategory:      ratedomain.Wildcard,
		PostalService:      ratedomain.ScopeValue(serviceScope),
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		MinWeight:          req.MinWeight,
		MaxWeight:          req.MaxWeight,
		TariffRate:         req.BaseRate,
		MinimumTariff:      req.MinimumTariff,
		MaximumTariff:      req.MaximumTariff,
		Currency:           currency,
		IsActive:           true,
		Notes:              strings.TrimSpace(req.Notes),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := shared.Validate(); err != nil {
		return 0, err
	}

	records := make([]*ratedomain.RateConfiguration, 0, len(enabled)+1)

	base := shared
	base.ID = s.genID.Generate()
	records = append(records, &base)

	for _, entry := range enabled {
		record := shared
		record.ID = s.genID.Generate()
		record.GoodsCategory = ratedomain.ScopeValue(entry.Category)
		record.CategorySurcharge = entry.SurchargeRate
		if err := record.Validate(); err != nil {
			return 0, err
		}
		records = append(records, &record)
	}

	if err := s.repo.CreateBatch(ctx, records); err != nil {
		s.log.Error("bulk rate creation failed",
			zap.String("origin", origin),
			zap.String("destination", destination),
			zap.Int("intended", len(records)),
			zap.Error(err),
		)
		return 0, fmt.Errorf("%w: attempted %d records: %v", ratedomain.ErrBulkCreateFailed, len(records), err)
	}

	if s.metrics != nil {
		s.metrics.BulkRecordsCreated.Add(float64(len(records)))
	}

	s.log.Info("bulk rates created",
		zap.String("origin", origin),
		zap.String("destination", destination),
		zap.Int("created", len(records)),
	)
	return len(records), nil
}

func (s *Service) Deactivate(ctx context.Context, id string) (*ratedomain.Response, error) {
	recordID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, ratedomain.ErrInvalidID
	}

	record, err := s.repo.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ratedomain.ErrNotFound
	}

	record.IsActive = false
	record.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}

	resp := toResponse(record)
	return &resp, nil
}

func toResponse(record *ratedomain.RateConfiguration) ratedomain.Response {
	return ratedomain.Response{
		ID:                 record.ID.String(),
		OriginCountry:      record.OriginCountry,
		DestinationCountry: record.DestinationCountry,
		GoodsCategory:      string(record.GoodsCategory),
		PostalService:      string(record.PostalService),
		StartDate:          record.StartDate.UTC().Format("2006-01-02"),
		EndDate:            record.EndDate.UTC().Format("2006-01-02"),
		MinWeight:          record.MinWeight,
		MaxWeight:          record.MaxWeight,
		TariffRate:         record.TariffRate,
		CategorySurcharge:  record.CategorySurcharge,
		MinimumTariff:      record.MinimumTariff,
		MaximumTariff:      record.MaximumTariff,
		Currency:           record.Currency,
		IsActive:           record.IsActive,
		Notes:              record.Notes,
		CreatedAt:          record.CreatedAt,
		UpdatedAt:          record.UpdatedAt,
	}
}
