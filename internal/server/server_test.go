package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/parcelroute/tarifa/internal/config"
	ratedomain "github.com/parcelroute/tarifa/internal/rateconfig/domain"
	"github.com/parcelroute/tarifa/internal/recalc"
	referencedomain "github.com/parcelroute/tarifa/internal/reference/domain"
	routedomain "github.com/parcelroute/tarifa/internal/route/domain"
	shipmentdomain "github.com/parcelroute/tarifa/internal/shipment/domain"
	tariffdomain "github.com/parcelroute/tarifa/internal/tariff/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRateService struct {
	bulkTotal  int
	bulkErr    error
	deactivate error
}

func (f *fakeRateService) List(ctx context.Context, req ratedomain.ListRequest) ([]ratedomain.Response, int, error) {
	_ = ctx
	_ = req
	return []ratedomain.Response{}, 0, nil
}

func (f *fakeRateService) BulkCreate(ctx context.Context, req ratedomain.BulkCreateRequest) (int, error) {
	_ = ctx
	_ = req
	return f.bulkTotal, f.bulkErr
}

func (f *fakeRateService) Deactivate(ctx context.Context, id string) (*ratedomain.Response, error) {
	_ = ctx
	if f.deactivate != nil {
		return nil, f.deactivate
	}
	return &ratedomain.Response{ID: id, IsActive: false}, nil
}

type fakeTariffService struct {
	result *tariffdomain.CalculationResult
	err    error
}

func (f *fakeTariffService) Calculate(ctx context.Context, req tariffdomain.CalculationRequest) (*tariffdomain.CalculationResult, error) {
	_ = ctx
	_ = req
	return f.result, f.err
}

type fakeRouteService struct {
	routes []routedomain.Route
}

func (f *fakeRouteService) List(ctx context.Context) ([]routedomain.Route, error) {
	_ = ctx
	return f.routes, nil
}

type fakeReferenceService struct{}

func (fakeReferenceService) ListCategories(ctx context.Context) ([]string, error) {
	_ = ctx
	return []string{"*", "clothing", "electronics"}, nil
}

func (fakeReferenceService) ListServices(ctx context.Context) ([]string, error) {
	_ = ctx
	return []string{"*", "express", "standard"}, nil
}

func (fakeReferenceService) SystemDefaults(ctx context.Context) (referencedomain.SystemDefaults, referencedomain.SystemStats, error) {
	_ = ctx
	return referencedomain.SystemDefaults{DefaultTariffRate: 0.8}, referencedomain.SystemStats{TotalShipments: 5}, nil
}

type emptyShipmentRepo struct{}

func (emptyShipmentRepo) AggregateByCorridor(ctx context.Context) ([]shipmentdomain.CorridorAggregate, error) {
	_ = ctx
	return nil, nil
}

func (emptyShipmentRepo) AggregateForCorridor(ctx context.Context, origin, destination string) (*shipmentdomain.CorridorAggregate, error) {
	_, _, _ = ctx, origin, destination
	return nil, nil
}

func (emptyShipmentRepo) Stats(ctx context.Context) (shipmentdomain.Stats, error) {
	_ = ctx
	return shipmentdomain.Stats{}, nil
}

func (emptyShipmentRepo) ListAfter(ctx context.Context, afterID snowflake.ID, limit int) ([]shipmentdomain.Shipment, error) {
	_, _, _ = ctx, afterID, limit
	return nil, nil
}

func (emptyShipmentRepo) UpdateTariffAmount(ctx context.Context, id snowflake.ID, amount float64) error {
	_, _, _ = ctx, id, amount
	return nil
}

func setupTestServer(t *testing.T, rates *fakeRateService, tariffs *fakeTariffService) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	worker := recalc.NewWorker(recalc.Params{
		Log:          zap.NewNop(),
		ShipmentRepo: emptyShipmentRepo{},
		Calculator:   tariffs,
	})

	srv := NewServer(ServerParams{
		Gin:          NewEngine(zap.NewNop()),
		Cfg:          config.Config{},
		RateSvc:      rates,
		TariffSvc:    tariffs,
		RouteSvc:     &fakeRouteService{routes: []routedomain.Route{{OriginCountry: "US", DestinationCountry: "DE"}}},
		ReferenceSvc: fakeReferenceService{},
		RecalcWorker: worker,
	})
	srv.RegisterRoutes()
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

func TestCalculateTariffEndpoint(t *testing.T) {
	tariffs := &fakeTariffService{result: &tariffdomain.CalculationResult{
		CalculationMethod: tariffdomain.MethodFallback,
		CombinedRate:      0.8,
		CalculatedTariff:  80,
	}}
	srv := setupTestServer(t, &fakeRateService{}, tariffs)

	w := doJSON(t, srv, http.MethodPost, "/api/tariff/calculate", gin.H{
		"origin_country":      "US",
		"destination_country": "DE",
		"declared_value":      100,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp tariffdomain.CalculationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, tariffdomain.MethodFallback, resp.CalculationMethod)
	assert.Equal(t, 80.0, resp.CalculatedTariff)
}

func TestCalculateTariffRejectsInvalidValue(t *testing.T) {
	tariffs := &fakeTariffService{err: tariffdomain.ErrInvalidDeclaredValue}
	srv := setupTestServer(t, &fakeRateService{}, tariffs)

	w := doJSON(t, srv, http.MethodPost, "/api/tariff/calculate", gin.H{
		"origin_country":      "US",
		"destination_country": "DE",
		"declared_value":      0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")
}

func TestCreateBulkRatesEndpoint(t *testing.T) {
	srv := setupTestServer(t, &fakeRateService{bulkTotal: 4}, &fakeTariffService{})

	w := doJSON(t, srv, http.MethodPost, "/api/tariff-rates/bulk", gin.H{
		"origin_country":      "US",
		"destination_country": "DE",
		"start_date":          "2026-01-01",
		"end_date":            "2026-12-31",
		"base_rate":           0.1,
		"categories": []gin.H{
			{"category": "electronics", "surcharge_rate": 0.05, "enabled": true},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total_created": 4}`, w.Body.String())
}

func TestCreateBulkRatesRejectsBadDate(t *testing.T) {
	srv := setupTestServer(t, &fakeRateService{bulkTotal: 4}, &fakeTariffService{})

	w := doJSON(t, srv, http.MethodPost, "/api/tariff-rates/bulk", gin.H{
		"origin_country":      "US",
		"destination_country": "DE",
		"start_date":          "01/01/2026",
		"end_date":            "2026-12-31",
		"base_rate":           0.1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_start_date")
}

func TestDeactivateRateNotFound(t *testing.T) {
	srv := setupTestServer(t, &fakeRateService{deactivate: ratedomain.ErrNotFound}, &fakeTariffService{})

	w := doJSON(t, srv, http.MethodPost, "/api/tariff-rates/123/deactivate", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestListRoutesEndpoint(t *testing.T) {
	srv := setupTestServer(t, &fakeRateService{}, &fakeTariffService{})

	w := doJSON(t, srv, http.MethodGet, "/api/routes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"origin_country":"US"`)
}

func TestRecalculateTariffsEndpoint(t *testing.T) {
	srv := setupTestServer(t, &fakeRateService{}, &fakeTariffService{})

	w := doJSON(t, srv, http.MethodPost, "/api/tariff/recalculate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestSystemDefaultsEndpoint(t *testing.T) {
	srv := setupTestServer(t, &fakeRateService{}, &fakeTariffService{})

	w := doJSON(t, srv, http.MethodGet, "/api/system/defaults", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"default_tariff_rate":0.8`)
	assert.Contains(t, w.Body.String(), `"total_shipments":5`)
}
