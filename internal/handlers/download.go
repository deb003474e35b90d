package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/orgball2608/insta-rest-api/internal/domain"
	"github.com/orgball2608/insta-rest-api/internal/downloader"
)

func (h *Handler) DownloadPost(c *fiber.Ctx) error {
	shortcode := c.Params("shortcode")
	if err := validShortcode(shortcode); err != nil {
		return err
	}
	if err := h.requireLogin("downloading posts"); err != nil {
		return err
	}

	ctx := c.UserContext()
	post, err := h.Instagram.GetPost(ctx, shortcode)
	if err != nil {
		return err
	}

	files := make([]downloader.File, 0, len(post.Media))
	for i, media := range post.Media {
		ext := ".jpg"
		if media.IsVideo {
			ext = ".mp4"
		}
		files = append(files, downloader.File{
			Name: fmt.Sprintf("%s_%d%s", shortcode, i+1, ext),
			URL:  media.URL,
		})
	}

	paths, err := h.Downloader.Fetch(ctx, files)
	if err != nil {
		return err
	}

	return c.JSON(h.recordDownload(c, domain.DownloadKindPost, shortcode, paths))
}

func (h *Handler) DownloadProfilePicture(c *fiber.Ctx) error {
	username := c.Params("username")
	if err := validUsername(username); err != nil {
		return err
	}

	ctx := c.UserContext()
	profile, err := h.Instagram.GetProfile(ctx, username)
	if err != nil {
		return err
	}

	paths, err := h.Downloader.Fetch(ctx, []downloader.File{{
		Name: username + ".jpg",
		URL:  profile.ProfilePicURL,
	}})
	if err != nil {
		return err
	}

	return c.JSON(h.recordDownload(c, domain.DownloadKindProfilePicture, username, paths))
}

// recordDownload writes the history row. A failed write is logged, not
// surfaced: the media is already on disk.
func (h *Handler) recordDownload(c *fiber.Ctx, kind, target string, paths []string) fiber.Map {
	resp := fiber.Map{
		"success": true,
		"kind":    kind,
		"target":  target,
		"files":   paths,
		"count":   len(paths),
		"message": fmt.Sprintf("Downloaded %d file(s)", len(paths)),
	}

	id, err := h.History.Create(c.UserContext(), domain.DownloadRecord{
		Kind:   kind,
		Target: target,
		Files:  paths,
	})
	if err != nil {
		h.Logger.Error("Failed to record download", "kind", kind, "target", target, "error", err)
		return resp
	}

	resp["download_id"] = id
	return resp
}

func (h *Handler) DownloadHistory(c *fiber.Ctx) error {
	limit, err := parseLimit(c, 20, 100)
	if err != nil {
		return err
	}

	records, err := h.History.ListRecent(c.UserContext(), limit)
	if err != nil {
		return err
	}
	if records == nil {
		records = []*domain.DownloadRecord{}
	}
	return c.JSON(listResponse(records, len(records)))
}
