package main

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocksmart/forecast"
	"stocksmart/handlers"
)

func TestNewAppRecoversFromPanics(t *testing.T) {
	app := newApp(&handlers.AuthHandlers{}, handlers.NewForecastHandlers(nil, forecast.NewForecaster(), nil))
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("slice bounds out of range")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/forecast/predictions", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
