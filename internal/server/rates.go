package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	ratedomain "github.com/parcelroute/tarifa/internal/rateconfig/domain"
)

type bulkRateCategoryEntry struct {
	Category      string  `json:"category"`
	SurchargeRate float64 `json:"surcharge_rate"`
	Enabled       bool    `json:"enabled"`
}

type createBulkRatesRequest struct {
	OriginCountry      string                  `json:"origin_country"`
	DestinationCountry string                  `json:"destination_country"`
	PostalService      string                  `json:"postal_service"`
	StartDate          string                  `json:"start_date"`
	EndDate            string                  `json:"end_date"`
	MinWeight          *float64                `json:"min_weight"`
	MaxWeight          *float64                `json:"max_weight"`
	BaseRate           float64                 `json:"base_rate"`
	MinimumTariff      float64                 `json:"minimum_tariff"`
	MaximumTariff      float64                 `json:"maximum_tariff"`
	Currency           string                  `json:"currency"`
	Notes              string                  `json:"notes"`
	Categories         []bulkRateCategoryEntry `json:"categories"`
}

func (s *Server) ListTariffRates(c *gin.Context) {
	var query struct {
		OriginCountry      string `form:"origin_country"`
		DestinationCountry string `form:"destination_country"`
		IsActive           string `form:"is_active"`
		SortBy             string `form:"sort_by"`
		OrderBy            string `form:"order_by"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	isActive, err := parseOptionalBool(query.IsActive)
	if err != nil {
		AbortWithError(c, newValidationError("is_active", "invalid_is_active", "invalid is_active"))
		return
	}

	rates, total, err := s.rateSvc.List(c.Request.Context(), ratedomain.ListRequest{
		OriginCountry:      strings.TrimSpace(query.OriginCountry),
		DestinationCountry: strings.TrimSpace(query.DestinationCountry),
		IsActive:           isActive,
		SortBy:             strings.TrimSpace(query.SortBy),
		OrderBy:            strings.TrimSpace(query.OrderBy),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tariff_rates": rates,
		"total_rates":  total,
	})
}

func (s *Server) CreateBulkRates(c *gin.Context) {
	var req createBulkRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		AbortWithError(c, newValidationError("start_date", "invalid_start_date", "expected YYYY-MM-DD"))
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		AbortWithError(c, newValidationError("end_date", "invalid_end_date", "expected YYYY-MM-DD"))
		return
	}

	categories := make([]ratedomain.CategoryEntry, 0, len(req.Categories))
	for _, entry := range req.Categories {
		categories = append(categories, ratedomain.CategoryEntry{
			Category:      entry.Category,
			SurchargeRate: entry.SurchargeRate,
			Enabled:       entry.Enabled,
		})
	}

	total, err := s.rateSvc.BulkCreate(c.Request.Context(), ratedomain.BulkCreateRequest{
		OriginCountry:      strings.TrimSpace(req.OriginCountry),
		DestinationCountry: strings.TrimSpace(req.DestinationCountry),
		PostalService:      strings.TrimSpace(req.PostalService),
		StartDate:          startDate,
		EndDate:            endDate,
		MinWeight:          req.MinWeight,
		MaxWeight:          req.MaxWeight,
		BaseRate:           req.BaseRate,
		MinimumTariff:      req.MinimumTariff,
		MaximumTariff:      req.MaximumTariff,
		Currency:           req.Currency,
		Notes:              req.Notes,
		Categories:         categories,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_created": total})
}

func (s *Server) DeactivateRate(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.rateSvc.Deactivate(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func parseDate(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", strings.TrimSpace(value), time.UTC)
}

func parseOptionalBool(value string) (*bool, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
