package apierrors

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStatusAndCodeMapping(t *testing.T) {
	cases := []struct {
		kind   error
		status int
		code   string
	}{
		{ErrValidation, http.StatusBadRequest, "VALIDATION_ERROR"},
		{ErrLoginRequired, http.StatusUnauthorized, "LOGIN_REQUIRED"},
		{ErrBadCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{ErrTwoFactorRequired, http.StatusUnauthorized, "TWO_FACTOR_REQUIRED"},
		{ErrSessionInvalid, http.StatusUnauthorized, "SESSION_INVALID"},
		{ErrPrivateProfile, http.StatusForbidden, "PRIVATE_PROFILE"},
		{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{ErrRateLimited, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED"},
		{ErrUpstream, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{ErrInternal, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.status, Status(tc.kind), tc.code)
		require.Equal(t, tc.code, CodeOf(tc.kind))
	}
}

func TestWrapKeepsKindAndCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, ErrUpstream, "SERVICE_UNAVAILABLE", "instagram request failed")

	require.True(t, IsUpstream(err))
	require.True(t, errors.Is(err, cause))
	require.Equal(t, http.StatusServiceUnavailable, Status(err))
	require.Equal(t, "instagram request failed", MessageOf(err))
}

func TestWrapNilReturnsNil(t *testing.T) {
	require.NoError(t, Wrap(nil, ErrInternal, "INTERNAL_ERROR", "never happens"))
}

func TestExplicitCodeWins(t *testing.T) {
	err := Ef(ErrNotFound, "PROFILE_NOT_FOUND", "profile %q not found", "ghost")

	require.True(t, IsNotFound(err))
	require.Equal(t, "PROFILE_NOT_FOUND", CodeOf(err))
	require.Equal(t, http.StatusNotFound, Status(err))
	require.Equal(t, `profile "ghost" not found`, MessageOf(err))
}

func TestRateLimitedCarriesRetryAfter(t *testing.T) {
	err := RateLimited(42*time.Second, "rate limit exceeded")

	require.True(t, IsRateLimited(err))
	require.Equal(t, 42*time.Second, RetryAfterOf(err))

	resp := NewResponse(err)
	require.False(t, resp.Success)
	require.Equal(t, "RATE_LIMIT_EXCEEDED", resp.ErrorCode)
	require.Equal(t, 42, resp.RetryAfter)
	require.False(t, resp.Timestamp.IsZero())
}
