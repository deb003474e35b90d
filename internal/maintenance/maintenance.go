package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/fx"

	"github.com/orgball2608/insta-rest-api/internal/instagram"
	"github.com/orgball2608/insta-rest-api/internal/notifier"
	"github.com/orgball2608/insta-rest-api/internal/repositories/download"
	"github.com/orgball2608/insta-rest-api/pkg/config"
	"github.com/orgball2608/insta-rest-api/pkg/formatter"
	"github.com/orgball2608/insta-rest-api/pkg/logger"
)

const cleanupTimeout = 5 * time.Minute

// Jobs holds the background work that keeps the service healthy between
// requests: periodic session autosave and the daily history cleanup.
type Jobs struct {
	instagram instagram.Client
	history   download.Repository
	notifier  notifier.Notifier
	config    *config.Config
	logger    logger.Logger
}

type Opts struct {
	fx.In
	LC fx.Lifecycle

	Instagram instagram.Client
	History   download.Repository
	Notifier  notifier.Notifier
	Config    *config.Config
	Logger    logger.Logger
}

// Run schedules the background jobs and ties the scheduler to the
// application lifecycle.
func Run(opts Opts) error {
	jobs := &Jobs{
		instagram: opts.Instagram,
		history:   opts.History,
		notifier:  opts.Notifier,
		config:    opts.Config,
		logger:    opts.Logger.WithComponent("Maintenance"),
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	if interval := opts.Config.Session.AutosaveInterval; interval > 0 {
		_, err = scheduler.NewJob(
			gocron.DurationJob(interval),
			gocron.NewTask(jobs.autosaveSession),
		)
		if err != nil {
			return fmt.Errorf("failed to schedule session autosave: %w", err)
		}
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0)), // At 3:00 AM
		),
		gocron.NewTask(jobs.cleanupHistory),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule history cleanup: %w", err)
	}

	opts.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			scheduler.Start()
			jobs.logger.Info("Background jobs scheduled",
				"autosave_interval", opts.Config.Session.AutosaveInterval,
				"retention_days", opts.Config.Download.RetentionDays)
			return nil
		},
		OnStop: func(context.Context) error {
			return scheduler.Shutdown()
		},
	})

	return nil
}

// autosaveSession re-exports the active session while one is live. goinsta
// rotates cookies, the on-disk copy goes stale without a periodic export.
func (j *Jobs) autosaveSession() {
	if _, ok := j.instagram.ActiveUser(); !ok {
		return
	}

	if err := j.instagram.SaveActiveSession(); err != nil {
		j.logger.Error("Session autosave failed", "error", err)
		return
	}
	j.logger.Debug("Session autosaved")
}

func (j *Jobs) cleanupHistory() {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -j.config.Download.RetentionDays)
	dropped, err := j.history.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		j.logger.Error("History cleanup failed", "error", err)
		return
	}

	j.logger.Info("History cleanup completed", "rows_deleted", dropped)
	if dropped > 0 {
		j.notifier.Notify(fmt.Sprintf("🧹 History cleanup removed %s records",
			formatter.FormatNumber(int(dropped))))
	}
}
