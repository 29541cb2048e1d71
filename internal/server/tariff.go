package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	tariffdomain "github.com/parcelroute/tarifa/internal/tariff/domain"
)

type calculateTariffRequest struct {
	OriginCountry      string   `json:"origin_country"`
	DestinationCountry string   `json:"destination_country"`
	DeclaredValue      float64  `json:"declared_value"`
	GoodsCategory      string   `json:"goods_category"`
	PostalService      string   `json:"postal_service"`
	ShipDate           string   `json:"ship_date"`
	Weight             *float64 `json:"weight"`
}

func (s *Server) CalculateTariff(c *gin.Context) {
	var req calculateTariffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var shipDate time.Time
	if strings.TrimSpace(req.ShipDate) != "" {
		parsed, err := parseDate(req.ShipDate)
		if err != nil {
			AbortWithError(c, newValidationError("ship_date", "invalid_ship_date", "expected YYYY-MM-DD"))
			return
		}
		shipDate = parsed
	}

	result, err := s.tariffSvc.Calculate(c.Request.Context(), tariffdomain.CalculationRequest{
		OriginCountry:      strings.TrimSpace(req.OriginCountry),
		DestinationCountry: strings.TrimSpace(req.DestinationCountry),
		DeclaredValue:      req.DeclaredValue,
		GoodsCategory:      strings.TrimSpace(req.GoodsCategory),
		PostalService:      strings.TrimSpace(req.PostalService),
		ShipDate:           shipDate,
		Weight:             req.Weight,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) RecalculateTariffs(c *gin.Context) {
	result, err := s.recalcWorker.Run(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"updated_count": result.UpdatedCount,
		"skipped_count": result.SkippedCount,
		"message":       "tariff recalculation completed",
	})
}
