package handlers

import (
	"regexp"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/orgball2608/insta-rest-api/internal/cache"
	"github.com/orgball2608/insta-rest-api/internal/downloader"
	"github.com/orgball2608/insta-rest-api/internal/instagram"
	"github.com/orgball2608/insta-rest-api/internal/middleware"
	"github.com/orgball2608/insta-rest-api/internal/ratelimit"
	downloadrepo "github.com/orgball2608/insta-rest-api/internal/repositories/download"
	"github.com/orgball2608/insta-rest-api/internal/sessionstore"
	"github.com/orgball2608/insta-rest-api/pkg/apierrors"
	"github.com/orgball2608/insta-rest-api/pkg/config"
	"github.com/orgball2608/insta-rest-api/pkg/logger"
	"go.uber.org/fx"
)

type Handler struct {
	Instagram  instagram.Client
	Sessions   sessionstore.Store
	Cache      cache.Cache
	Downloader *downloader.Downloader
	History    downloadrepo.Repository
	Config     *config.Config
	Logger     logger.Logger
}

type Opts struct {
	fx.In

	Instagram  instagram.Client
	Sessions   sessionstore.Store
	Cache      cache.Cache
	Downloader *downloader.Downloader
	History    downloadrepo.Repository
	Config     *config.Config
	Logger     logger.Logger
}

func New(opts Opts) *Handler {
	return &Handler{
		Instagram:  opts.Instagram,
		Sessions:   opts.Sessions,
		Cache:      opts.Cache,
		Downloader: opts.Downloader,
		History:    opts.History,
		Config:     opts.Config,
		Logger:     opts.Logger.WithComponent("Handlers"),
	}
}

// Register mounts every route. Health and the root probe are registered ahead
// of the API-key and rate-limit guards so they stay reachable.
func (h *Handler) Register(app *fiber.App, limiter *ratelimit.Window) {
	app.Get("/", h.Root)
	app.Get("/health", h.Health)
	app.Get("/cache/stats", h.CacheStats)

	api := app.Group(h.Config.App.Prefix)
	api.Get("/health", h.Health)

	api.Use(middleware.NewApiKey(h.Config))
	api.Use(middleware.NewRateLimit(limiter))

	auth := api.Group("/auth")
	auth.Post("/login", h.Login)
	auth.Get("/status", h.AuthStatus)
	auth.Get("/sessions", h.ListSessions)
	auth.Delete("/sessions/:username", h.DeleteSession)
	auth.Post("/load-session", h.LoadSession)
	auth.Post("/logout", h.Logout)

	profiles := api.Group("/profiles")
	profiles.Get("/:username", h.GetProfile)
	profiles.Get("/:username/followers", h.GetFollowers)
	profiles.Get("/:username/following", h.GetFollowing)

	posts := api.Group("/posts")
	posts.Get("/profile/:username", h.GetUserPosts)
	posts.Get("/hashtag/:tag", h.GetHashtagPosts)
	posts.Get("/:shortcode", h.GetPost)

	stories := api.Group("/stories")
	stories.Get("/user/:username", h.GetStories)
	stories.Get("/highlights/:username", h.GetHighlights)

	api.Get("/feed", h.GetFeed)

	download := api.Group("/download")
	download.Post("/post/:shortcode", h.DownloadPost)
	download.Post("/profile-picture/:username", h.DownloadProfilePicture)
	download.Get("/history", h.DownloadHistory)

	api.Get("/extract", h.Extract)
}

var (
	usernameRe  = regexp.MustCompile(`^[A-Za-z0-9._]{1,30}$`)
	shortcodeRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,40}$`)
	hashtagRe   = regexp.MustCompile(`^[^#\s]{1,100}$`)
)

func validUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return apierrors.Ef(apierrors.ErrValidation, "VALIDATION_ERROR",
			"invalid username %q", username)
	}
	return nil
}

func validShortcode(shortcode string) error {
	if !shortcodeRe.MatchString(shortcode) {
		return apierrors.Ef(apierrors.ErrValidation, "VALIDATION_ERROR",
			"invalid shortcode %q", shortcode)
	}
	return nil
}

func validHashtag(tag string) error {
	if !hashtagRe.MatchString(tag) {
		return apierrors.Ef(apierrors.ErrValidation, "VALIDATION_ERROR",
			"invalid hashtag %q", tag)
	}
	return nil
}

// parseLimit reads the limit query parameter. Garbage is rejected rather than
// silently replaced with the default.
func parseLimit(c *fiber.Ctx, def, max int) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierrors.Ef(apierrors.ErrValidation, "VALIDATION_ERROR",
			"limit must be an integer, got %q", raw)
	}
	if n < 1 || n > max {
		return 0, apierrors.Ef(apierrors.ErrValidation, "VALIDATION_ERROR",
			"limit must be between 1 and %d", max)
	}
	return n, nil
}

// requireLogin guards the operations that cannot work anonymously.
func (h *Handler) requireLogin(operation string) error {
	if _, ok := h.Instagram.ActiveUser(); !ok {
		return apierrors.Ef(apierrors.ErrLoginRequired, "LOGIN_REQUIRED",
			"login required for %s", operation)
	}
	return nil
}

func listResponse(data any, count int) fiber.Map {
	return fiber.Map{
		"success": true,
		"data":    data,
		"count":   count,
	}
}
