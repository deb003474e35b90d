package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Health reports service liveness and whether an Instagram session is
// active. It is reachable both at the root and under the API prefix, and
// is never behind the API key or rate limiter.
func (h *Handler) Health(c *fiber.Ctx) error {
	username, loggedIn := h.Instagram.ActiveUser()

	resp := fiber.Map{
		"status":                   "healthy",
		"version":                  h.Config.App.Version,
		"timestamp":                time.Now().UTC(),
		"instagram_session_active": loggedIn,
	}
	if loggedIn {
		resp["logged_in_user"] = username
	}
	return c.JSON(resp)
}

// Root describes the service for anyone poking at the bare host.
func (h *Handler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":    h.Config.App.Name,
		"version": h.Config.App.Version,
		"status":  "running",
		"prefix":  h.Config.App.Prefix,
		"health":  "/health",
	})
}

func (h *Handler) CacheStats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"stats":   h.Cache.Stats(c.UserContext()),
	})
}
