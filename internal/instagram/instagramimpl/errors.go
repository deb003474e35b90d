package instagramimpl

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/Davincible/goinsta/v3"
	"github.com/orgball2608/insta-rest-api/pkg/apierrors"
)

// classifyError maps a goinsta failure onto the error taxonomy. goinsta
// surfaces most API errors as loosely typed messages, so the sentinel checks
// are backed by message heuristics. notFoundCode is the code clients match
// on when the subject does not exist, e.g. PROFILE_NOT_FOUND.
func classifyError(err error, subject, notFoundCode string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, goinsta.Err2FARequired):
		return apierrors.Wrap(err, apierrors.ErrTwoFactorRequired, "TWO_FACTOR_REQUIRED",
			"two factor authentication is required for this account")
	case errors.Is(err, goinsta.ErrBadPassword):
		return apierrors.Wrap(err, apierrors.ErrBadCredentials, "INVALID_CREDENTIALS",
			"username or password is incorrect")
	case errors.Is(err, goinsta.ErrTooManyRequests):
		return apierrors.Wrap(err, apierrors.ErrRateLimited, "RATE_LIMITED_BY_INSTAGRAM",
			"instagram is rate limiting this account, try again later")
	case errors.Is(err, goinsta.ErrLoggedOut):
		return apierrors.Wrap(err, apierrors.ErrSessionInvalid, "SESSION_INVALID",
			"instagram ended this session, please login again")
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return apierrors.Wrap(err, apierrors.ErrUpstream, "SERVICE_UNAVAILABLE",
			"instagram request failed, try again later")
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "not found") || strings.Contains(msg, "404"):
		return apierrors.Wrap(err, apierrors.ErrNotFound, notFoundCode, subject+" not found")
	case strings.Contains(msg, "login_required") ||
		strings.Contains(msg, "login required") ||
		strings.Contains(msg, "not logged in"):
		return apierrors.Wrap(err, apierrors.ErrLoginRequired, "LOGIN_REQUIRED",
			"instagram requires a login for this operation")
	case strings.Contains(msg, "challenge"):
		return apierrors.Wrap(err, apierrors.ErrUnauthorized, "CHALLENGE_REQUIRED",
			"instagram issued a challenge for this account, complete it in the app and retry")
	case strings.Contains(msg, "private"):
		return apierrors.Wrap(err, apierrors.ErrPrivateProfile, "PRIVATE_PROFILE",
			subject+" is private")
	case strings.Contains(msg, "please wait a few minutes") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "429"):
		return apierrors.Wrap(err, apierrors.ErrRateLimited, "RATE_LIMITED_BY_INSTAGRAM",
			"instagram is rate limiting this account, try again later")
	}

	return apierrors.Wrap(err, apierrors.ErrUpstream, "SERVICE_UNAVAILABLE",
		"unexpected response from instagram")
}
