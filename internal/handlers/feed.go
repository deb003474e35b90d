package handlers

import (
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetFeed(c *fiber.Ctx) error {
	limit, err := parseLimit(c, 12, 50)
	if err != nil {
		return err
	}
	if err := h.requireLogin("reading the timeline"); err != nil {
		return err
	}

	posts, err := h.Instagram.GetTimeline(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return c.JSON(listResponse(posts, len(posts)))
}
