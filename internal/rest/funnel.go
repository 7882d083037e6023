package rest

import (
	"context"
	"net/http"
	"time"

	"cpsGrowth/domain"
	"cpsGrowth/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	FunnelHandler struct {
		validate      *validator.Validate
		funnelService FunnelService
		timeout       time.Duration
	}

	FunnelService interface {
		DiagnoseItem(ctx context.Context, itemID string, lookbackDays int) (domain.Diagnosis, error)
	}

	// LookbackDays is a pointer so an explicit 0 (clamped to 1) stays
	// distinguishable from an absent parameter (defaulted to 7).
	FunnelQuery struct {
		ItemID       string `query:"item_id" validate:"required"`
		LookbackDays *int   `query:"lookback_days" validate:"omitempty,gte=0"`
	}
)

func NewFunnelHandler(svc FunnelService) *FunnelHandler {
	return &FunnelHandler{
		validate:      validator.New(),
		funnelService: svc,
		timeout:       10 * time.Second,
	}
}

// GET /api/v1/funnel/diagnose?item_id=...&lookback_days=7
func (h *FunnelHandler) Diagnose(c echo.Context) error {
	start := time.Now()
	metrics.DiagnoseRequests.Inc()

	var q FunnelQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	lookbackDays := 7
	if q.LookbackDays != nil {
		lookbackDays = *q.LookbackDays
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	diag, err := h.funnelService.DiagnoseItem(ctx, q.ItemID, lookbackDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.DiagnoseLatency.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, fres.Response.StatusOK(diag))
}
