package server

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/orgball2608/insta-rest-api/internal/middleware"
	"github.com/orgball2608/insta-rest-api/pkg/apierrors"
	"github.com/orgball2608/insta-rest-api/pkg/config"
	"github.com/orgball2608/insta-rest-api/pkg/logger"
	"go.uber.org/fx"
)

// NewApp builds the Fiber application with the shared error mapping and the
// ambient middleware. Routes are registered by the handlers package; the
// listener is started by the fx lifecycle.
func NewApp(cfg *config.Config, log logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		ErrorHandler:          NewErrorHandler(cfg, log.WithComponent("HTTP")),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.App.CorsOrigins}))
	app.Use(middleware.NewRequestLog(log))

	return app
}

// NewErrorHandler maps every error escaping a handler onto the shared error
// envelope. Unknown 500s keep their cause out of the body unless APP_DEBUG.
func NewErrorHandler(cfg *config.Config, log logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			// Fiber's own errors: unknown routes, bad methods, body limits.
			return c.Status(fiberErr.Code).JSON(apierrors.Response{
				ErrorCode: routeErrorCode(fiberErr.Code),
				Message:   fiberErr.Message,
				Timestamp: time.Now().UTC(),
			})
		}

		status := apierrors.Status(err)
		if status >= fiber.StatusInternalServerError {
			log.Error("Request failed", "path", c.Path(), "status", status, "error", err)
		}

		resp := apierrors.NewResponse(err)
		if status == fiber.StatusInternalServerError && !cfg.App.Debug {
			resp.Message = "internal server error"
		}
		if retry := apierrors.RetryAfterOf(err); retry > 0 {
			c.Set("Retry-After", strconv.Itoa(int(retry.Seconds())+1))
		}
		return c.Status(status).JSON(resp)
	}
}

func routeErrorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	default:
		return "INTERNAL_ERROR"
	}
}

type Opts struct {
	fx.In

	LC     fx.Lifecycle
	App    *fiber.App
	Config *config.Config
	Logger logger.Logger
}

// Start binds the listener on fx start and drains connections on stop.
func Start(opts Opts) {
	addr := fmt.Sprintf(":%d", opts.Config.App.Port)

	opts.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				opts.Logger.Info("Starting HTTP server", "addr", addr, "prefix", opts.Config.App.Prefix)
				if err := opts.App.Listen(addr); err != nil {
					opts.Logger.Error("Server stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return opts.App.ShutdownWithContext(ctx)
		},
	})
}
