package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/orgball2608/insta-rest-api/internal/ratelimit"
	"github.com/orgball2608/insta-rest-api/pkg/apierrors"
)

// NewRateLimit enforces the per-client request budget. Every response carries
// the X-RateLimit-* headers; a rejected request becomes a 429 with Retry-After.
func NewRateLimit(limiter *ratelimit.Window) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, remaining, reset := limiter.Allow(ClientKey(c))

		c.Set("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Set("X-RateLimit-Reset", strconv.Itoa(int(reset.Seconds())+1))
		c.Set("X-RateLimit-Window", limiter.Size().String())

		if !ok {
			return apierrors.RateLimited(reset, "rate limit exceeded, slow down")
		}
		return c.Next()
	}
}

// ClientKey identifies the caller for rate limiting, preferring the first
// X-Forwarded-For hop over the socket address.
func ClientKey(c *fiber.Ctx) string {
	if fwd := c.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	return c.IP()
}
