package handlers

import (
	"bytes"
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"stocksmart/analytics"
	"stocksmart/database"
	"stocksmart/forecast"
	"stocksmart/middleware"
	"stocksmart/models"
	"stocksmart/reports"
	"stocksmart/utils"
)

// SnapshotProvider hands out immutable sale record snapshots.
type SnapshotProvider interface {
	Get(ctx context.Context, scope models.SnapshotScope) (*database.Snapshot, error)
	Invalidate(scope models.SnapshotScope)
	InvalidateAll()
}

// InsightsAnalyzer writes an AI analysis of a forecast run.
type InsightsAnalyzer interface {
	Enabled() bool
	Analyze(ctx context.Context, result *models.ForecastResult) (*models.ForecastInsightsResponse, error)
}

// ForecastHandlers serves stock predictions, demand tiers and sales analysis.
type ForecastHandlers struct {
	Snapshots  SnapshotProvider
	Forecaster *forecast.Forecaster
	Insights   InsightsAnalyzer
	Now        func() time.Time
}

// NewForecastHandlers wires the forecast endpoints.
func NewForecastHandlers(snapshots SnapshotProvider, forecaster *forecast.Forecaster, insights InsightsAnalyzer) *ForecastHandlers {
	return &ForecastHandlers{
		Snapshots:  snapshots,
		Forecaster: forecaster,
		Insights:   insights,
		Now:        time.Now,
	}
}

// scope resolves whose sales a request reads. Admins may pass merchantId.
func scope(c *fiber.Ctx) (models.SnapshotScope, error) {
	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return models.SnapshotScope{}, err
	}
	s := models.SnapshotScope{MerchantID: claims.UserID, ShopID: c.Query("shopId")}
	if claims.Role == "admin" && c.Query("merchantId") != "" {
		s.MerchantID = c.Query("merchantId")
	}
	return s, nil
}

func (h *ForecastHandlers) asOf(c *fiber.Ctx) (time.Time, error) {
	if v := c.Query("asOf"); v != "" {
		return utils.ParseDate(v)
	}
	return h.Now(), nil
}

// loadRecords returns the validated snapshot for the request, or writes the
// error response and returns ok=false.
func (h *ForecastHandlers) loadRecords(c *fiber.Ctx, tag string) ([]models.SaleRecord, bool, error) {
	s, err := scope(c)
	if err != nil {
		return nil, false, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}

	snap, err := h.Snapshots.Get(c.UserContext(), s)
	if err != nil {
		log.Printf("[%s] failed to load sales for %s: %v", tag, s.Key(), err)
		return nil, false, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to load sales data"})
	}
	if err := forecast.ValidateRecords(snap.Records); err != nil {
		return nil, false, invalidInput(c, tag, err)
	}
	return snap.Records, true, nil
}

func invalidInput(c *fiber.Ctx, tag string, err error) error {
	log.Printf("[%s] invalid sales data: %v", tag, err)
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"status": "error", "message": err.Error()})
}

func (h *ForecastHandlers) predict(c *fiber.Ctx, tag string) (*models.ForecastResult, []models.SaleRecord, bool, error) {
	asOf, err := h.asOf(c)
	if err != nil {
		return nil, nil, false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid asOf format"})
	}

	records, ok, err := h.loadRecords(c, tag)
	if !ok {
		return nil, nil, false, err
	}

	result, err := h.Forecaster.Forecast(records, asOf)
	if err != nil {
		if errors.Is(err, forecast.ErrInvalidInput) {
			return nil, nil, false, invalidInput(c, tag, err)
		}
		return nil, nil, false, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to compute forecast"})
	}
	return result, records, true, nil
}

// HandleGetStockPredictions forecasts next month's demand per product.
// GET /api/v1/forecast/predictions?shopId=&asOf=YYYY-MM-DD
func (h *ForecastHandlers) HandleGetStockPredictions(c *fiber.Ctx) error {
	result, _, ok, err := h.predict(c, "PREDICTIONS")
	if !ok {
		return err
	}

	log.Printf("[PREDICTIONS] %d forecasts, %d skipped for %s", len(result.Forecasts), len(result.Skipped), result.Period.Label)
	if result.InsufficientData {
		return c.JSON(fiber.Map{"status": "insufficient_data", "message": "Not enough data to make predictions", "data": result})
	}
	return c.JSON(fiber.Map{"status": "success", "data": result})
}

// HandleGetDemandAnalysis classifies products into demand tiers.
// GET /api/v1/forecast/demand?shopId=&page=&pageSize=
func (h *ForecastHandlers) HandleGetDemandAnalysis(c *fiber.Ctx) error {
	records, ok, err := h.loadRecords(c, "DEMAND")
	if !ok {
		return err
	}

	rows, err := forecast.Classify(records)
	if err != nil {
		return invalidInput(c, "DEMAND", err)
	}

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 50)
	start, end := utils.PageBounds(len(rows), page, pageSize)

	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{
		"analysis": models.DemandAnalysis{
			Distribution: analytics.DemandDistribution(rows),
			Products:     rows[start:end],
		},
		"pagination": utils.CreatePagination(len(rows), page, pageSize),
	}})
}

// HandleGetSalesAnalysis returns best sellers, key metrics and revenue trends.
// GET /api/v1/forecast/sales?shopId=&top=3
func (h *ForecastHandlers) HandleGetSalesAnalysis(c *fiber.Ctx) error {
	records, ok, err := h.loadRecords(c, "SALES ANALYSIS")
	if !ok {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "data": salesAnalysis(records, c.QueryInt("top", 3))})
}

func salesAnalysis(records []models.SaleRecord, top int) models.SalesAnalysis {
	return models.SalesAnalysis{
		TopProducts:  analytics.TopProducts(records, top),
		Summary:      analytics.Summarize(records),
		DailySales:   analytics.DailySales(records),
		MonthlySales: analytics.MonthlySales(records),
	}
}

// HandleGetForecastInsights asks Gemini to comment on the stock predictions.
// GET /api/v1/forecast/insights?shopId=&asOf=
func (h *ForecastHandlers) HandleGetForecastInsights(c *fiber.Ctx) error {
	if h.Insights == nil || !h.Insights.Enabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "error", "message": "AI insights are not configured"})
	}

	result, _, ok, err := h.predict(c, "INSIGHTS")
	if !ok {
		return err
	}
	if result.InsufficientData {
		return c.JSON(fiber.Map{"status": "insufficient_data", "message": "Not enough data to make predictions"})
	}

	resp, err := h.Insights.Analyze(c.UserContext(), result)
	if err != nil {
		log.Printf("[INSIGHTS] %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to generate insights from AI"})
	}
	return c.JSON(fiber.Map{"status": "success", "data": resp})
}

// HandleExportWorkbook downloads the dashboard as an Excel workbook.
// GET /api/v1/forecast/export.xlsx?shopId=&asOf=
func (h *ForecastHandlers) HandleExportWorkbook(c *fiber.Ctx) error {
	result, records, ok, err := h.predict(c, "EXPORT")
	if !ok {
		return err
	}

	demand, err := forecast.Classify(records)
	if err != nil {
		return invalidInput(c, "EXPORT", err)
	}

	var buf bytes.Buffer
	if err := reports.WriteWorkbook(&buf, reports.Dashboard{
		Sales:       salesAnalysis(records, 3),
		Demand:      demand,
		Predictions: result,
	}); err != nil {
		log.Printf("[EXPORT] failed to build workbook: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to build workbook"})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Attachment("stocksmart-" + result.Period.StartDate.Format("2006-01") + ".xlsx")
	return c.Send(buf.Bytes())
}

// HandleRefreshSnapshot drops the cached sales snapshot so the next request reloads it.
// Admins may pass all=true to drop every cached snapshot.
// POST /api/v1/forecast/refresh?shopId=&all=
func (h *ForecastHandlers) HandleRefreshSnapshot(c *fiber.Ctx) error {
	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}

	if c.QueryBool("all") {
		if claims.Role != "admin" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"status": "error", "message": "Only admins can refresh all snapshots"})
		}
		h.Snapshots.InvalidateAll()
		log.Printf("[SNAPSHOT] all snapshots dropped by %s", claims.UserID)
		return c.JSON(fiber.Map{"status": "success", "message": "All sales snapshots will be reloaded on next request"})
	}

	s, err := scope(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}
	h.Snapshots.Invalidate(s)
	return c.JSON(fiber.Map{"status": "success", "message": "Sales snapshot will be reloaded on next request"})
}
