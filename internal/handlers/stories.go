package handlers

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/orgball2608/insta-rest-api/internal/domain"
)

func (h *Handler) GetStories(c *fiber.Ctx) error {
	username := c.Params("username")
	if err := validUsername(username); err != nil {
		return err
	}
	if err := h.requireLogin("viewing stories"); err != nil {
		return err
	}

	stories, err := h.userStories(c.UserContext(), username)
	if err != nil {
		return err
	}
	return c.JSON(listResponse(stories, len(stories)))
}

// userStories reads the story list through the cache. The login check stays
// with the caller; only the upstream fetch is shared.
func (h *Handler) userStories(ctx context.Context, username string) ([]domain.StoryItem, error) {
	key := fmt.Sprintf("stories:%s", username)

	var cached []domain.StoryItem
	if h.Cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	stories, err := h.Instagram.GetUserStories(ctx, username)
	if err != nil {
		return nil, err
	}

	h.Cache.Set(ctx, key, stories, h.Config.Cache.StoriesTTL)
	return stories, nil
}

func (h *Handler) GetHighlights(c *fiber.Ctx) error {
	username := c.Params("username")
	if err := validUsername(username); err != nil {
		return err
	}
	if err := h.requireLogin("viewing highlights"); err != nil {
		return err
	}

	highlights, err := h.Instagram.GetUserHighlights(c.UserContext(), username)
	if err != nil {
		return err
	}
	return c.JSON(listResponse(highlights, len(highlights)))
}
