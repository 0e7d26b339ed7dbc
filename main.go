package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"stocksmart/config"
	"stocksmart/database"
	"stocksmart/forecast"
	"stocksmart/handlers"
	"stocksmart/insights"
	"stocksmart/middleware"
	"stocksmart/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = database.Connect(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer database.Close()

	snapshots := database.NewSnapshotCache(database.NewSalesStore(database.GetDB()), cfg.SnapshotTTL)
	forecaster := forecast.NewForecaster(forecast.WithWorkers(cfg.ForecastWorkers))
	ai := insights.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	if !ai.Enabled() {
		log.Println("GEMINI_API_KEY is not set, AI insights are disabled")
	}

	app := newApp(
		&handlers.AuthHandlers{Users: database.NewUserStore(database.GetDB())},
		handlers.NewForecastHandlers(snapshots, forecaster, ai),
	)

	log.Fatal(app.Listen(":" + cfg.Port))
}

func newApp(auth *handlers.AuthHandlers, fc *handlers.ForecastHandlers) *fiber.App {
	app := fiber.New()

	// Add CORS middleware
	app.Use(cors.New())
	app.Use(recover.New())
	app.Use(middleware.RequestLogger)

	routes.SetupRoutes(app, auth, fc)
	return app
}
