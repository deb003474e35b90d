package handlers

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/orgball2608/insta-rest-api/internal/domain"
)

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	username := c.Params("username")
	if err := validUsername(username); err != nil {
		return err
	}

	ctx := c.UserContext()
	key := fmt.Sprintf("profile:%s", username)

	var profile domain.Profile
	if h.Cache.Get(ctx, key, &profile) {
		return c.JSON(fiber.Map{"success": true, "data": profile})
	}

	fetched, err := h.Instagram.GetProfile(ctx, username)
	if err != nil {
		return err
	}

	h.Cache.Set(ctx, key, fetched, h.Config.Cache.ProfileTTL)
	return c.JSON(fiber.Map{"success": true, "data": fetched})
}

func (h *Handler) GetFollowers(c *fiber.Ctx) error {
	return h.connections(c, "followers", h.Instagram.GetFollowers)
}

func (h *Handler) GetFollowing(c *fiber.Ctx) error {
	return h.connections(c, "following", h.Instagram.GetFollowing)
}

func (h *Handler) connections(c *fiber.Ctx, kind string,
	fetch func(ctx context.Context, username string, limit int) ([]domain.ProfileSummary, error)) error {

	username := c.Params("username")
	if err := validUsername(username); err != nil {
		return err
	}
	limit, err := parseLimit(c, 50, 50)
	if err != nil {
		return err
	}
	if err := h.requireLogin("listing " + kind); err != nil {
		return err
	}

	summaries, err := fetch(c.UserContext(), username, limit)
	if err != nil {
		return err
	}
	return c.JSON(listResponse(summaries, len(summaries)))
}
