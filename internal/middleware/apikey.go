package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/orgball2608/insta-rest-api/pkg/apierrors"
	"github.com/orgball2608/insta-rest-api/pkg/config"
)

// NewApiKey guards routes with a static X-API-Key header. A missing key
// yields 401, a wrong one 403. With no API_KEY configured the check is
// disabled.
func NewApiKey(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.Security.ApiKey == "" {
			return c.Next()
		}

		key := c.Get("X-API-Key")
		if key == "" {
			return apierrors.E(apierrors.ErrUnauthorized, "API_KEY_REQUIRED", "missing X-API-Key header")
		}
		if key != cfg.Security.ApiKey {
			return apierrors.E(apierrors.ErrForbidden, "INVALID_API_KEY", "invalid API key")
		}
		return c.Next()
	}
}
