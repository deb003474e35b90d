package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/orgball2608/insta-rest-api/internal/domain"
)

func (h *Handler) GetPost(c *fiber.Ctx) error {
	shortcode := c.Params("shortcode")
	if err := validShortcode(shortcode); err != nil {
		return err
	}

	post, err := h.Instagram.GetPost(c.UserContext(), shortcode)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": post})
}

func (h *Handler) GetUserPosts(c *fiber.Ctx) error {
	username := c.Params("username")
	if err := validUsername(username); err != nil {
		return err
	}
	limit, err := parseLimit(c, 12, 50)
	if err != nil {
		return err
	}

	ctx := c.UserContext()
	key := fmt.Sprintf("posts:%s:%d", username, limit)

	var cached []domain.Post
	if h.Cache.Get(ctx, key, &cached) {
		return c.JSON(listResponse(cached, len(cached)))
	}

	posts, err := h.Instagram.GetUserPosts(ctx, username, limit)
	if err != nil {
		return err
	}

	h.Cache.Set(ctx, key, posts, h.Config.Cache.PostsTTL)
	return c.JSON(listResponse(posts, len(posts)))
}

func (h *Handler) GetHashtagPosts(c *fiber.Ctx) error {
	tag := c.Params("tag")
	if err := validHashtag(tag); err != nil {
		return err
	}
	limit, err := parseLimit(c, 12, 50)
	if err != nil {
		return err
	}

	posts, err := h.Instagram.GetHashtagPosts(c.UserContext(), tag, limit)
	if err != nil {
		return err
	}
	return c.JSON(listResponse(posts, len(posts)))
}
