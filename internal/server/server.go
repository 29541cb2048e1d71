package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/parcelroute/tarifa/internal/config"
	"github.com/parcelroute/tarifa/internal/metrics"
	"github.com/parcelroute/tarifa/internal/rateconfig"
	ratedomain "github.com/parcelroute/tarifa/internal/rateconfig/domain"
	"github.com/parcelroute/tarifa/internal/recalc"
	"github.com/parcelroute/tarifa/internal/reference"
	referencedomain "github.com/parcelroute/tarifa/internal/reference/domain"
	"github.com/parcelroute/tarifa/internal/route"
	routedomain "github.com/parcelroute/tarifa/internal/route/domain"
	"github.com/parcelroute/tarifa/internal/shipment"
	"github.com/parcelroute/tarifa/internal/tariff"
	tariffdomain "github.com/parcelroute/tarifa/internal/tariff/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	metrics.Module,
	shipment.Module,
	rateconfig.Module,
	tariff.Module,
	route.Module,
	reference.Module,
	recalc.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	rateSvc      ratedomain.Service
	tariffSvc    tariffdomain.Service
	routeSvc     routedomain.Service
	referenceSvc referencedomain.Service
	recalcWorker *recalc.Worker
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	RateSvc      ratedomain.Service
	TariffSvc    tariffdomain.Service
	RouteSvc     routedomain.Service
	ReferenceSvc referencedomain.Service
	RecalcWorker *recalc.Worker
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		rateSvc:      p.RateSvc,
		tariffSvc:    p.TariffSvc,
		routeSvc:     p.RouteSvc,
		referenceSvc: p.ReferenceSvc,
		recalcWorker: p.RecalcWorker,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) RegisterRoutes() {
	api := s.engine.Group("/api")

	api.GET("/routes", s.ListRoutes)

	// -------- Rate configurations --------
	api.GET("/tariff-rates", s.ListTariffRates)
	api.POST("/tariff-rates/bulk", s.CreateBulkRates)
	api.POST("/tariff-rates/:id/deactivate", s.DeactivateRate)

	// -------- Calculation --------
	api.POST("/tariff/calculate", s.CalculateTariff)
	api.POST("/tariff/recalculate", s.RecalculateTariffs)

	// -------- Reference --------
	api.GET("/reference/categories", s.ListCategories)
	api.GET("/reference/services", s.ListServices)
	api.GET("/system/defaults", s.GetSystemDefaults)
}
