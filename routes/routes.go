package routes

import (
	"github.com/gofiber/fiber/v2"

	"stocksmart/handlers"
	"stocksmart/middleware"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App, auth *handlers.AuthHandlers, fc *handlers.ForecastHandlers) {
	api := app.Group("/api/v1")

	// --- Authentication Routes ---
	api.Post("/auth/login", auth.HandleLogin)

	// --- Forecast Routes ---
	forecast := api.Group("/forecast", middleware.Authenticate, middleware.CheckRole("merchant", "admin"))
	forecast.Get("/predictions", fc.HandleGetStockPredictions)
	forecast.Get("/demand", fc.HandleGetDemandAnalysis)
	forecast.Get("/sales", fc.HandleGetSalesAnalysis)
	forecast.Get("/insights", fc.HandleGetForecastInsights)
	forecast.Get("/export.xlsx", fc.HandleExportWorkbook)
	forecast.Post("/refresh", fc.HandleRefreshSnapshot)
}
