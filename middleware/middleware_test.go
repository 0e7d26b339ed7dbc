package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocksmart/config"
	"stocksmart/models"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret, userID, role string, expires time.Time) string {
	t.Helper()
	claims := &models.JwtClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newAuthApp(roles ...string) *fiber.App {
	app := fiber.New()
	app.Use(Authenticate, CheckRole(roles...))
	app.Get("/test", func(c *fiber.Ctx) error {
		claims, err := ExtractClaims(c)
		if err != nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(claims.UserID + ":" + claims.Role)
	})
	return app
}

func TestAuthenticate(t *testing.T) {
	config.AppConfig.JWTSecret = testSecret
	app := newAuthApp("merchant", "admin")

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"no bearer prefix", signedToken(t, testSecret, "u1", "merchant", time.Now().Add(time.Hour)), fiber.StatusUnauthorized},
		{"wrong secret", "Bearer " + signedToken(t, "other", "u1", "merchant", time.Now().Add(time.Hour)), fiber.StatusUnauthorized},
		{"expired", "Bearer " + signedToken(t, testSecret, "u1", "merchant", time.Now().Add(-time.Hour)), fiber.StatusUnauthorized},
		{"wrong role", "Bearer " + signedToken(t, testSecret, "u1", "staff", time.Now().Add(time.Hour)), fiber.StatusForbidden},
		{"merchant", "Bearer " + signedToken(t, testSecret, "u1", "merchant", time.Now().Add(time.Hour)), fiber.StatusOK},
		{"admin", "Bearer " + signedToken(t, testSecret, "u2", "admin", time.Now().Add(time.Hour)), fiber.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestCheckRoleWithoutRole(t *testing.T) {
	app := fiber.New()
	app.Use(CheckRole("admin"))
	app.Get("/test", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestExtractClaimsWithoutAuthentication(t *testing.T) {
	app := fiber.New()
	app.Get("/test", func(c *fiber.Ctx) error {
		_, err := ExtractClaims(c)
		assert.ErrorIs(t, err, ErrNoClaims)
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequestLoggerPassesThrough(t *testing.T) {
	app := fiber.New()
	app.Use(RequestLogger)
	app.Get("/test", func(c *fiber.Ctx) error { return c.Status(fiber.StatusTeapot).SendString("ok") })

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
}

func TestAuthenticateMessages(t *testing.T) {
	config.AppConfig.JWTSecret = testSecret
	app := newAuthApp("admin")

	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"missing header", "", MsgMissingHeader},
		{"empty bearer", "Bearer ", MsgInvalidFormat},
		{"garbage token", "Bearer not-a-jwt", MsgInvalidToken},
		{"no user id", "Bearer " + signedToken(t, testSecret, "", "admin", time.Now().Add(time.Hour)), MsgInvalidToken},
		{"wrong role", "Bearer " + signedToken(t, testSecret, "u1", "merchant", time.Now().Add(time.Hour)), MsgInsufficientPerms},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)

			var body struct {
				Status  string `json:"status"`
				Message string `json:"message"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, tc.want, body.Message)
		})
	}
}

func TestExtractClaimsReadsAuthenticateLocals(t *testing.T) {
	app := fiber.New()
	app.Get("/test", func(c *fiber.Ctx) error {
		setClaims(c, Claims{UserID: "u9", Role: "admin"})
		claims, err := ExtractClaims(c)
		require.NoError(t, err)
		return c.SendString(claims.UserID + ":" + claims.Role)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "u9:admin", string(body))
}
