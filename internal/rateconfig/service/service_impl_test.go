package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/parcelroute/tarifa/internal/clock"
	ratedomain "github.com/parcelroute/tarifa/internal/rateconfig/domain"
	"github.com/parcelroute/tarifa/internal/rateconfig/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupServiceTest(t *testing.T) (*gorm.DB, *Service, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ratedomain.RateConfiguration{}))

	node := mustNode(t)
	svc := &Service{
		log:   zap.NewNop(),
		genID: node,
		repo:  repository.NewRepository(db),
	}
	return db, svc, node
}

func bulkRequest() ratedomain.BulkCreateRequest {
	return ratedomain.BulkCreateRequest{
		OriginCountry:      "US",
		DestinationCountry: "DE",
		PostalService:      "standard",
		StartDate:          time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:            time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		BaseRate:           0.10,
		MinimumTariff:      5,
		MaximumTariff:      500,
		Currency:           "usd",
		Categories: []ratedomain.CategoryEntry{
			{Category: "electronics", SurchargeRate: 0.05, Enabled: true},
			{Category: "clothing", SurchargeRate: 0.02, Enabled: true},
			{Category: "food", SurchargeRate: 0.01, Enabled: true},
			{Category: "machinery", SurchargeRate: 0.09, Enabled: false},
		},
	}
}

func TestBulkCreateExpandsBaseAndSurcharges(t *testing.T) {
	db, svc, _ := setupServiceTest(t)

	total, err := svc.BulkCreate(context.Background(), bulkRequest())
	require.NoError(t, err)
	assert.Equal(t, 4, total, "3 enabled categories plus the base record")

	var records []ratedomain.RateConfiguration
	require.NoError(t, db.Find(&records).Error)
	require.Len(t, records, 4)

	var base *ratedomain.RateConfiguration
	surcharges := map[string]float64{}
	for i := range records {
		record := &records[i]
		assert.Equal(t, "US", record.OriginCountry)
		assert.Equal(t, "DE", record.DestinationCountry)
		assert.Equal(t, ratedomain.ScopeValue("standard"), record.PostalService)
		assert.Equal(t, "2026-01-01", record.StartDate.UTC().Format("2006-01-02"))
		assert.Equal(t, "2026-12-31", record.EndDate.UTC().Format("2006-01-02"))
		assert.Equal(t, 0.10, record.TariffRate)
		assert.Equal(t, "USD", record.Currency)
		assert.True(t, record.IsActive)

		if record.GoodsCategory.IsWildcard() {
			base = record
		} else {
			surcharges[string(record.GoodsCategory)] = record.CategorySurcharge
		}
	}

	require.NotNil(t, base, "bulk creation always writes a wildcard base record")
	assert.Zero(t, base.CategorySurcharge)
	assert.Equal(t, map[string]float64{
		"electronics": 0.05,
		"clothing":    0.02,
		"food":        0.01,
	}, surcharges)
}

func TestBulkCreateRequiresEnabledCategory(t *testing.T) {
	_, svc, _ := setupServiceTest(t)

	req := bulkRequest()
	for i := range req.Categories {
		req.Categories[i].Enabled = false
	}

	_, err := svc.BulkCreate(context.Background(), req)
	assert.ErrorIs(t, err, ratedomain.ErrNoEnabledCategories)
}

func TestBulkCreateValidatesWindow(t *testing.T) {
	_, svc, _ := setupServiceTest(t)

	req := bulkRequest()
	req.StartDate, req.EndDate = req.EndDate, req.StartDate

	_, err := svc.BulkCreate(context.Background(), req)
	assert.ErrorIs(t, err, ratedomain.ErrInvalidDateWindow)
}

type failingRepo struct {
	ratedomain.Repository
}

func (f *failingRepo) CreateBatch(ctx context.Context, records []*ratedomain.RateConfiguration) error {
	_ = ctx
	_ = records
	return errors.New("connection reset")
}

func TestBulkCreateReportsBatchFailure(t *testing.T) {
	_, svc, _ := setupServiceTest(t)
	svc.repo = &failingRepo{Repository: svc.repo}

	_, err := svc.BulkCreate(context.Background(), bulkRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ratedomain.ErrBulkCreateFailed)
	assert.Contains(t, err.Error(), "4 records")
}

func TestDeactivateUnknownID(t *testing.T) {
	_, svc, node := setupServiceTest(t)

	_, err := svc.Deactivate(context.Background(), node.Generate().String())
	assert.ErrorIs(t, err, ratedomain.ErrNotFound)

	_, err = svc.Deactivate(context.Background(), "not-a-snowflake")
	assert.ErrorIs(t, err, ratedomain.ErrInvalidID)
}

func TestDeactivateRemovesFromResolution(t *testing.T) {
	db, svc, _ := setupServiceTest(t)

	total, err := svc.BulkCreate(context.Background(), bulkRequest())
	require.NoError(t, err)
	require.Equal(t, 4, total)

	res := &resolver{
		repo:  svc.repo,
		clock: clock.NewFakeClock(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)),
	}

	q := ratedomain.Query{
		OriginCountry:      "US",
		DestinationCountry: "DE",
		GoodsCategory:      ratedomain.Wildcard,
		PostalService:      "standard",
		Date:               time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
	}
	matched, err := res.Resolve(context.Background(), q)
	require.NoError(t, err)
	require.NotNil(t, matched)

	resp, err := svc.Deactivate(context.Background(), matched.ID.String())
	require.NoError(t, err)
	assert.False(t, resp.IsActive)

	matched, err = res.Resolve(context.Background(), q)
	require.NoError(t, err)
	assert.Nil(t, matched)

	var stored ratedomain.RateConfiguration
	require.NoError(t, db.First(&stored, "goods_category = ?", ratedomain.Wildcard).Error)
	assert.False(t, stored.IsActive)
}
