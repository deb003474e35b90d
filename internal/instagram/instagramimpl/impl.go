package instagramimpl

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Davincible/goinsta/v3"
	"github.com/orgball2608/insta-rest-api/internal/instagram"
	"github.com/orgball2608/insta-rest-api/internal/ratelimit"
	"github.com/orgball2608/insta-rest-api/internal/sessionstore"
	"github.com/orgball2608/insta-rest-api/pkg/apierrors"
	"github.com/orgball2608/insta-rest-api/pkg/config"
	"github.com/orgball2608/insta-rest-api/pkg/logger"
	"github.com/orgball2608/insta-rest-api/pkg/retry"
	"go.uber.org/fx"
)

// IgImpl delegates all upstream access to goinsta. It keeps at most one live
// client handle per username; the account of the most recent successful
// login or session load serves the data calls.
type IgImpl struct {
	Logger   logger.Logger
	Config   *config.Config
	Sessions sessionstore.Store

	pacer *ratelimit.Pacer

	mu      sync.RWMutex
	clients map[string]*goinsta.Instagram
	active  string
}

type Opts struct {
	fx.In

	Config   *config.Config
	Logger   logger.Logger
	Sessions sessionstore.Store
}

func New(opts Opts) *IgImpl {
	return &IgImpl{
		Logger:   opts.Logger.WithComponent("Instagram"),
		Config:   opts.Config,
		Sessions: opts.Sessions,
		pacer: ratelimit.NewPacer(
			opts.Config.Instagram.RequestsPerMinute,
			opts.Config.Instagram.Burst,
		),
		clients: make(map[string]*goinsta.Instagram),
	}
}

var _ instagram.Client = (*IgImpl)(nil)

// Login authenticates with credentials, completing the two factor challenge
// with code when one is demanded. Transient failures are retried; credential
// failures are not. The new handle replaces any previous one for the same
// username and becomes active.
func (ig *IgImpl) Login(ctx context.Context, username, password, code string) error {
	if err := ig.pace(ctx, username); err != nil {
		return err
	}

	client := goinsta.New(username, password)

	operation := func() error {
		err := client.Login()
		if err == nil {
			return nil
		}
		classified := classifyError(err, "account "+username, "NOT_FOUND")
		if apierrors.IsUpstream(classified) || apierrors.IsRateLimited(classified) {
			return classified
		}
		return retry.Permanent(classified)
	}

	loginErr := retry.Do(ctx, ig.Logger, "instagram login", operation, retry.DefaultConfig())
	if loginErr != nil {
		if errors.Is(loginErr, apierrors.ErrTwoFactorRequired) && code != "" {
			if err := ig.completeTwoFactor(client, code); err != nil {
				return err
			}
		} else {
			ig.Logger.Error("Login failed", "username", username, "error", loginErr)
			return loginErr
		}
	}

	ig.register(username, client)

	if err := ig.exportSession(username, client); err != nil {
		ig.Logger.Warn("Failed to save Instagram session", "username", username, "error", err)
	}

	ig.Logger.Info("Logged in with credentials", "username", username)
	return nil
}

func (ig *IgImpl) completeTwoFactor(client *goinsta.Instagram, code string) error {
	if client.TwoFactorInfo == nil {
		return apierrors.E(apierrors.ErrTwoFactorRequired, "TWO_FACTOR_REQUIRED",
			"two factor authentication is required for this account")
	}
	if err := client.TwoFactorInfo.Login2FA(code); err != nil {
		return apierrors.Wrap(err, apierrors.ErrBadCredentials, "INVALID_CREDENTIALS",
			"two factor code was rejected")
	}
	return nil
}

// LoginFromSession restores a saved session and makes it the active account.
func (ig *IgImpl) LoginFromSession(ctx context.Context, username string) error {
	if _, err := ig.Sessions.Load(username); err != nil {
		if errors.Is(err, sessionstore.ErrNotFound) {
			return apierrors.Ef(apierrors.ErrNotFound, "SESSION_NOT_FOUND",
				"no saved session for %q", username)
		}
		return apierrors.Wrap(err, apierrors.ErrInternal, "INTERNAL_ERROR",
			"failed to read saved session")
	}

	client, err := goinsta.Import(ig.Sessions.Path(username))
	if err != nil {
		return apierrors.Wrap(err, apierrors.ErrSessionInvalid, "SESSION_INVALID",
			"saved session could not be loaded, please login again")
	}

	if err := ig.pace(ctx, username); err != nil {
		return err
	}
	if err := client.Account.Sync(); err != nil {
		return apierrors.Wrap(err, apierrors.ErrSessionInvalid, "SESSION_INVALID",
			"saved session is no longer valid, please login again")
	}

	ig.register(username, client)
	ig.Logger.Info("Logged in from saved session", "username", username)
	return nil
}

// Logout drops the active handle. The saved session file stays usable, so
// the upstream session is not revoked.
func (ig *IgImpl) Logout(ctx context.Context) error {
	ig.mu.Lock()
	username := ig.active
	if username == "" {
		ig.mu.Unlock()
		return apierrors.E(apierrors.ErrLoginRequired, "LOGIN_REQUIRED", "no active session")
	}
	delete(ig.clients, username)
	ig.active = ""
	ig.mu.Unlock()

	ig.Logger.Info("Logged out", "username", username)
	return nil
}

// ActiveUser returns the username backing upstream calls, if any.
func (ig *IgImpl) ActiveUser() (string, bool) {
	ig.mu.RLock()
	defer ig.mu.RUnlock()
	return ig.active, ig.active != ""
}

// SaveActiveSession re-exports the active session. goinsta rotates cookies
// over time; without periodic export the on-disk copy goes stale.
func (ig *IgImpl) SaveActiveSession() error {
	ig.mu.RLock()
	username := ig.active
	client := ig.clients[username]
	ig.mu.RUnlock()

	if username == "" || client == nil {
		return apierrors.E(apierrors.ErrLoginRequired, "LOGIN_REQUIRED", "no active session")
	}
	return ig.exportSession(username, client)
}

// register installs the handle for username and makes it active. At most one
// handle exists per username; a replaced or superseded handle is dropped.
func (ig *IgImpl) register(username string, client *goinsta.Instagram) {
	ig.mu.Lock()
	defer ig.mu.Unlock()

	if _, exists := ig.clients[username]; exists {
		ig.Logger.Warn("Replacing client handle", "username", username)
	}
	if ig.active != "" && ig.active != username {
		ig.Logger.Warn("Switching active account", "from", ig.active, "to", username)
	}
	ig.clients[username] = client
	ig.active = username
}

func (ig *IgImpl) exportSession(username string, client *goinsta.Instagram) error {
	if err := client.Export(ig.Sessions.Path(username)); err != nil {
		return fmt.Errorf("failed to export session: %w", err)
	}
	ig.Logger.Info("Instagram session saved", "username", username)
	return nil
}

// activeClient returns the handle for data calls. goinsta has no anonymous
// mode, so every data operation needs a logged-in account.
func (ig *IgImpl) activeClient() (*goinsta.Instagram, string, error) {
	ig.mu.RLock()
	defer ig.mu.RUnlock()

	if ig.active == "" {
		return nil, "", apierrors.E(apierrors.ErrLoginRequired, "LOGIN_REQUIRED",
			"this operation requires an active Instagram login")
	}
	return ig.clients[ig.active], ig.active, nil
}

// pace blocks until the account may issue another upstream call. Cancellation
// is honored here; an in-flight goinsta call still runs to completion.
func (ig *IgImpl) pace(ctx context.Context, account string) error {
	if err := ig.pacer.Wait(ctx, account); err != nil {
		return apierrors.Wrap(err, apierrors.ErrUpstream, "SERVICE_UNAVAILABLE",
			"upstream call cancelled")
	}
	return nil
}
