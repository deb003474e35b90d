package handlers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/orgball2608/insta-rest-api/pkg/apierrors"
)

// mediaItem is the flat media shape returned by the universal extractor.
type mediaItem struct {
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
	IsVideo   bool   `json:"is_video"`
}

var (
	postURLRe      = regexp.MustCompile(`instagram\.com/(?:p|reel|tv)/([A-Za-z0-9_-]+)`)
	highlightURLRe = regexp.MustCompile(`instagram\.com/stories/highlights/(\d+)`)
	storyIDURLRe   = regexp.MustCompile(`instagram\.com/stories/([A-Za-z0-9._]+)/(\d+)$`)
	storiesURLRe   = regexp.MustCompile(`instagram\.com/stories/([A-Za-z0-9._]+)$`)
	profileURLRe   = regexp.MustCompile(`instagram\.com/([A-Za-z0-9._]+)$`)
)

var reservedPaths = map[string]bool{
	"p": true, "reel": true, "tv": true, "stories": true, "explore": true,
	"direct": true, "accounts": true, "about": true, "legal": true,
}

// Extract resolves any Instagram URL to a flat list of media URLs. Post,
// reel, profile and story links are supported.
func (h *Handler) Extract(c *fiber.Ctx) error {
	rawURL := strings.TrimSpace(c.Query("url"))
	if rawURL == "" || !strings.Contains(rawURL, "instagram.com") {
		return apierrors.E(apierrors.ErrValidation, "VALIDATION_ERROR",
			"url must be an Instagram link")
	}

	// Query parameters and trailing slashes do not change the target.
	clean := strings.TrimRight(strings.SplitN(rawURL, "?", 2)[0], "/")

	if m := postURLRe.FindStringSubmatch(clean); m != nil {
		return h.extractPost(c, m[1])
	}
	if highlightURLRe.MatchString(clean) {
		return apierrors.E(apierrors.ErrValidation, "VALIDATION_ERROR",
			"highlight links are not supported, use /stories/highlights/{username}")
	}
	if m := storyIDURLRe.FindStringSubmatch(clean); m != nil {
		return h.extractStories(c, m[1], m[2])
	}
	if m := storiesURLRe.FindStringSubmatch(clean); m != nil {
		return h.extractStories(c, m[1], "")
	}
	if m := profileURLRe.FindStringSubmatch(clean); m != nil && !reservedPaths[strings.ToLower(m[1])] {
		return h.extractProfile(c, m[1])
	}

	return apierrors.Ef(apierrors.ErrValidation, "VALIDATION_ERROR",
		"could not parse Instagram URL %q", rawURL)
}

func (h *Handler) extractPost(c *fiber.Ctx, shortcode string) error {
	if err := validShortcode(shortcode); err != nil {
		return err
	}

	ctx := c.UserContext()
	key := fmt.Sprintf("extract:post:%s", shortcode)

	var items []mediaItem
	if h.Cache.Get(ctx, key, &items) {
		return c.JSON(extractResponse(items))
	}

	post, err := h.Instagram.GetPost(ctx, shortcode)
	if err != nil {
		return err
	}

	items = make([]mediaItem, 0, len(post.Media))
	for _, media := range post.Media {
		items = append(items, mediaItem{URL: media.URL, Thumbnail: media.Thumbnail, IsVideo: media.IsVideo})
	}

	h.Cache.Set(ctx, key, items, h.Config.Cache.PostsTTL)
	return c.JSON(extractResponse(items))
}

func (h *Handler) extractStories(c *fiber.Ctx, username, storyID string) error {
	if err := validUsername(username); err != nil {
		return err
	}
	if err := h.requireLogin("viewing stories"); err != nil {
		return err
	}

	var wantID int64
	if storyID != "" {
		id, err := strconv.ParseInt(storyID, 10, 64)
		if err != nil {
			return apierrors.Ef(apierrors.ErrValidation, "VALIDATION_ERROR",
				"invalid story id %q", storyID)
		}
		wantID = id
	}

	stories, err := h.userStories(c.UserContext(), username)
	if err != nil {
		return err
	}

	items := make([]mediaItem, 0, len(stories))
	for _, story := range stories {
		if wantID != 0 && story.MediaID != wantID {
			continue
		}
		items = append(items, mediaItem{URL: story.MediaURL, Thumbnail: story.Thumbnail, IsVideo: story.IsVideo})
	}

	if storyID != "" && len(items) == 0 {
		return apierrors.Ef(apierrors.ErrNotFound, "STORY_NOT_FOUND",
			"story %s not found or expired", storyID)
	}
	return c.JSON(extractResponse(items))
}

func (h *Handler) extractProfile(c *fiber.Ctx, username string) error {
	if err := validUsername(username); err != nil {
		return err
	}

	ctx := c.UserContext()
	key := fmt.Sprintf("extract:profile:%s", username)

	var items []mediaItem
	if h.Cache.Get(ctx, key, &items) {
		return c.JSON(extractResponse(items))
	}

	profile, err := h.Instagram.GetProfile(ctx, username)
	if err != nil {
		return err
	}
	posts, err := h.Instagram.GetUserPosts(ctx, username, 12)
	if err != nil {
		return err
	}

	items = append(items, mediaItem{URL: profile.ProfilePicURL, Thumbnail: profile.ProfilePicURL})
	for _, post := range posts {
		if len(post.Media) == 0 {
			continue
		}
		first := post.Media[0]
		items = append(items, mediaItem{URL: first.URL, Thumbnail: first.Thumbnail, IsVideo: first.IsVideo})
	}

	h.Cache.Set(ctx, key, items, h.Config.Cache.ProfileTTL)
	return c.JSON(extractResponse(items))
}

func extractResponse(items []mediaItem) fiber.Map {
	return fiber.Map{
		"status":  "success",
		"message": "Success",
		"data":    items,
	}
}
