package notifier

import (
	"github.com/orgball2608/insta-rest-api/pkg/config"
	"github.com/orgball2608/insta-rest-api/pkg/logger"
	"go.uber.org/fx"
)

// Notifier delivers operational alerts to whoever runs the service. Delivery
// is best effort; a lost alert must never take a request down with it.
type Notifier interface {
	Notify(message string)
}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// New returns a Telegram-backed notifier when a bot token is configured and
// a no-op otherwise.
func New(opts Opts) (Notifier, error) {
	if opts.Config.Telegram.Token == "" {
		opts.Logger.Info("Telegram alerts disabled")
		return Noop{}, nil
	}
	return newTelegram(opts.Config, opts.Logger)
}

// Noop drops every alert.
type Noop struct{}

func (Noop) Notify(string) {}
