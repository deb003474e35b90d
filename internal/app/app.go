package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"

	"github.com/orgball2608/insta-rest-api/internal/cache"
	"github.com/orgball2608/insta-rest-api/internal/downloader"
	"github.com/orgball2608/insta-rest-api/internal/handlers"
	"github.com/orgball2608/insta-rest-api/internal/instagram"
	"github.com/orgball2608/insta-rest-api/internal/instagram/instagramimpl"
	"github.com/orgball2608/insta-rest-api/internal/maintenance"
	_ "github.com/orgball2608/insta-rest-api/internal/migrations"
	"github.com/orgball2608/insta-rest-api/internal/notifier"
	"github.com/orgball2608/insta-rest-api/internal/ratelimit"
	repositories "github.com/orgball2608/insta-rest-api/internal/repositories/fx"
	"github.com/orgball2608/insta-rest-api/internal/server"
	"github.com/orgball2608/insta-rest-api/internal/sessionstore"
	"github.com/orgball2608/insta-rest-api/pkg/config"
	"github.com/orgball2608/insta-rest-api/pkg/formatter"
	"github.com/orgball2608/insta-rest-api/pkg/logger"
	"github.com/orgball2608/insta-rest-api/pkg/pgx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		pgx.New,
		server.NewApp,
		cache.New,
		downloader.New,
		notifier.New,
		handlers.New,
		newRateLimiter,
	),
	fx.Provide(
		fx.Annotate(
			sessionstore.New,
			fx.As(new(sessionstore.Store)),
		),
		fx.Annotate(
			instagramimpl.New,
			fx.As(new(instagram.Client)),
		),
	),
	repositories.Module,
	fx.Invoke(migrate),
	fx.Invoke(server.Start),
	fx.Invoke(maintenance.Run),
	fx.Invoke(run),
)

func newRateLimiter(cfg *config.Config) *ratelimit.Window {
	return ratelimit.NewWindow(cfg.RateLimit.Requests, cfg.RateLimit.Window)
}

func migrate(cfg *config.Config) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	// Migrations are compiled in via the blank import; the directory
	// argument only has to exist.
	return goose.Up(db, ".")
}

func run(lc fx.Lifecycle, h *handlers.Handler, app *fiber.App, limiter *ratelimit.Window,
	ig instagram.Client, sessions sessionstore.Store, alerts notifier.Notifier,
	cfg *config.Config, log logger.Logger) {

	h.Register(app, limiter)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go autoLogin(ig, sessions, alerts, cfg, log)
			return nil
		},
		OnStop: func(context.Context) error {
			sentry.Flush(2 * time.Second)
			return nil
		},
	})
}

// autoLogin restores the most recent saved session, falling back to the
// configured credentials. The service starts anonymous when neither works;
// clients can still log in over the API.
func autoLogin(ig instagram.Client, sessions sessionstore.Store, alerts notifier.Notifier,
	cfg *config.Config, log logger.Logger) {

	ctx := context.Background()

	if records, err := sessions.List(); err == nil && len(records) > 0 {
		newest := records[0]
		err := ig.LoginFromSession(ctx, newest.Username)
		if err == nil {
			log.Info("Restored saved session", "username", newest.Username)
			return
		}
		log.Warn("Failed to restore saved session", "username", newest.Username, "error", err)
	}

	if cfg.Instagram.User == "" || cfg.Instagram.Pass == "" {
		log.Info("No Instagram credentials configured, starting anonymous")
		return
	}

	if err := ig.Login(ctx, cfg.Instagram.User, cfg.Instagram.Pass, ""); err != nil {
		log.Error("Instagram login error", "username", cfg.Instagram.User, "error", err)
		alerts.Notify(fmt.Sprintf("⚠️ Auto login failed for @%s",
			formatter.EscapeMarkdownV2(cfg.Instagram.User)))
		return
	}
	log.Info("Logged in with configured credentials", "username", cfg.Instagram.User)
}
