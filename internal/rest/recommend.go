package rest

import (
	"context"
	"net/http"
	"time"

	"cpsGrowth/business/guardrail"
	"cpsGrowth/business/recommend"
	"cpsGrowth/domain"
	"cpsGrowth/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendHandler struct {
		validate         *validator.Validate
		recommendService RecommendService
		guardrails       guardrail.Config
		timeout          time.Duration
	}

	RecommendService interface {
		Recommend(ctx context.Context, p recommend.Params) (domain.RecommendationResponse, error)
	}

	// Negative values fail validation; everything else is clamped downstream.
	// TopN is a pointer so an explicit 0 (clamped to 1) stays distinguishable
	// from an absent parameter (defaulted to 10).
	RecommendQuery struct {
		Q        string   `query:"q"`
		TopN     *int     `query:"top_n" validate:"omitempty,gte=0"`
		Category string   `query:"category"`
		PriceMin *float64 `query:"price_min" validate:"omitempty,gte=0"`
		PriceMax *float64 `query:"price_max" validate:"omitempty,gte=0"`
		Debug    bool     `query:"debug"`
	}
)

func NewRecommendHandler(svc RecommendService, guardrails guardrail.Config) *RecommendHandler {
	return &RecommendHandler{
		validate:         validator.New(),
		recommendService: svc,
		guardrails:       guardrails,
		timeout:          10 * time.Second,
	}
}

// GET /api/v1/recommend?q=...&top_n=10&category=...&price_min=..&price_max=..
func (h *RecommendHandler) Recommend(c echo.Context) error {
	start := time.Now()
	metrics.RecommendRequests.Inc()

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	topN := 10
	if q.TopN != nil {
		topN = *q.TopN
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.recommendService.Recommend(ctx, recommend.Params{
		Query:    q.Q,
		Category: q.Category,
		PriceMin: q.PriceMin,
		PriceMax: q.PriceMax,
		TopN:     topN,
		Debug:    q.Debug,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.RecommendLatency.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

// GET /api/v1/guardrails
func (h *RecommendHandler) GetGuardrails(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(h.guardrails.Snapshot()))
}
