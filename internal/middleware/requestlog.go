package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/orgball2608/insta-rest-api/pkg/apierrors"
	"github.com/orgball2608/insta-rest-api/pkg/logger"
)

// NewRequestLog writes one line per request. Errors have not reached the
// error handler yet when the chain unwinds, so the status for failed requests
// comes from the error itself.
func NewRequestLog(log logger.Logger) fiber.Handler {
	httpLog := log.WithComponent("HTTP")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = apierrors.Status(err)
		}

		httpLog.Info("Request completed",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration", time.Since(start).String(),
			"request_id", c.Locals("requestid"),
		)
		return err
	}
}
