package router

import (
	"cpsGrowth/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetRecommendRoutes(api *echo.Group, handler *rest.RecommendHandler) {
	api.GET("/recommend", handler.Recommend)
	api.GET("/guardrails", handler.GetGuardrails)
}

func SetFunnelRoutes(api *echo.Group, handler *rest.FunnelHandler) {
	funnel := api.Group("/funnel")
	funnel.GET("/diagnose", handler.Diagnose)
}

func SetupCategoryRoutes(api *echo.Group, handler *rest.CategoryHandler) {
	categories := api.Group("/categories")

	categories.GET("", handler.GetAllCategories)
}
