package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/orgball2608/insta-rest-api/internal/ratelimit"
	"github.com/orgball2608/insta-rest-api/pkg/apierrors"
	"github.com/orgball2608/insta-rest-api/pkg/config"
	"github.com/stretchr/testify/require"
)

func newTestApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(apierrors.Status(err)).JSON(apierrors.NewResponse(err))
		},
	})
	for _, h := range handlers {
		app.Use(h)
	}
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func TestApiKeyDisabledWhenUnset(t *testing.T) {
	cfg := &config.Config{}
	app := newTestApp(NewApiKey(cfg))

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil), -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
}

func TestApiKeyMissingIs401(t *testing.T) {
	cfg := &config.Config{}
	cfg.Security.ApiKey = "secret"
	app := newTestApp(NewApiKey(cfg))

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil), -1)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)
}

func TestApiKeyWrongIs403(t *testing.T) {
	cfg := &config.Config{}
	cfg.Security.ApiKey = "secret"
	app := newTestApp(NewApiKey(cfg))

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-API-Key", "wrong")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 403, resp.StatusCode)
}

func TestApiKeyCorrectPasses(t *testing.T) {
	cfg := &config.Config{}
	cfg.Security.ApiKey = "secret"
	app := newTestApp(NewApiKey(cfg))

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-API-Key", "secret")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
}

func TestRateLimitAllowsBudgetThenRejects(t *testing.T) {
	limiter := ratelimit.NewWindow(3, time.Minute)
	app := newTestApp(NewRateLimit(limiter))

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil), -1)
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode, "request %d", i+1)
		require.Equal(t, "3", resp.Header.Get("X-RateLimit-Limit"))
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil), -1)
	require.NoError(t, err)
	require.Equal(t, 429, resp.StatusCode)
	require.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))
}

func TestRateLimitKeysClientsSeparately(t *testing.T) {
	limiter := ratelimit.NewWindow(1, time.Minute)
	app := newTestApp(NewRateLimit(limiter))

	first := httptest.NewRequest("GET", "/ping", nil)
	first.Header.Set("X-Forwarded-For", "10.0.0.1")
	resp, err := app.Test(first, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	second := httptest.NewRequest("GET", "/ping", nil)
	second.Header.Set("X-Forwarded-For", "10.0.0.2, 10.0.0.1")
	resp, err = app.Test(second, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	third := httptest.NewRequest("GET", "/ping", nil)
	third.Header.Set("X-Forwarded-For", "10.0.0.1")
	resp, err = app.Test(third, -1)
	require.NoError(t, err)
	require.Equal(t, 429, resp.StatusCode)
}
