package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Taxonomy errors. Everything the adapter or a handler returns wraps one of
// these so the HTTP layer can map it without knowing the cause.
var (
	ErrValidation        = errors.New("validation failed")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrLoginRequired     = errors.New("login required")
	ErrBadCredentials    = errors.New("invalid credentials")
	ErrTwoFactorRequired = errors.New("two factor code required")
	ErrSessionInvalid    = errors.New("session invalid")
	ErrForbidden         = errors.New("forbidden")
	ErrPrivateProfile    = errors.New("profile is private")
	ErrNotFound          = errors.New("not found")
	ErrRateLimited       = errors.New("rate limited")
	ErrUpstream          = errors.New("upstream service unavailable")
	ErrInternal          = errors.New("internal error")
)

// Error carries a taxonomy kind, a machine-readable code and a client-facing
// message around an optional cause.
type Error struct {
	Kind       error
	Code       string
	Message    string
	RetryAfter time.Duration
	Err        error
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the taxonomy kind and the cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// E creates a new taxonomy error.
func E(kind error, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Ef creates a new taxonomy error with a formatted message.
func Ef(kind error, code, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches kind, code and message to an underlying cause.
func Wrap(err error, kind error, code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

// RateLimited creates a rate-limit error carrying a retry hint.
func RateLimited(retryAfter time.Duration, message string) *Error {
	return &Error{
		Kind:       ErrRateLimited,
		Code:       "RATE_LIMIT_EXCEEDED",
		Message:    message,
		RetryAfter: retryAfter,
	}
}

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrBadCredentials),
		errors.Is(err, ErrLoginRequired),
		errors.Is(err, ErrTwoFactorRequired),
		errors.Is(err, ErrSessionInvalid),
		errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrPrivateProfile),
		errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrUpstream):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf returns the machine-readable error code.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Code != "" {
		return e.Code
	}
	switch {
	case errors.Is(err, ErrValidation):
		return "VALIDATION_ERROR"
	case errors.Is(err, ErrLoginRequired):
		return "LOGIN_REQUIRED"
	case errors.Is(err, ErrBadCredentials):
		return "INVALID_CREDENTIALS"
	case errors.Is(err, ErrTwoFactorRequired):
		return "TWO_FACTOR_REQUIRED"
	case errors.Is(err, ErrSessionInvalid):
		return "SESSION_INVALID"
	case errors.Is(err, ErrUnauthorized):
		return "AUTHENTICATION_ERROR"
	case errors.Is(err, ErrPrivateProfile):
		return "PRIVATE_PROFILE"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrRateLimited):
		return "RATE_LIMIT_EXCEEDED"
	case errors.Is(err, ErrUpstream):
		return "SERVICE_UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}

// MessageOf returns the client-facing message.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}

// RetryAfterOf returns the retry hint attached to an error, zero if none.
func RetryAfterOf(err error) time.Duration {
	var e *Error
	if errors.As(err, &e) {
		return e.RetryAfter
	}
	return 0
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation returns true if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsRateLimited returns true if the error is a rate limit error.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsLoginRequired returns true if the error requires an active login.
func IsLoginRequired(err error) bool {
	return errors.Is(err, ErrLoginRequired)
}

// IsUpstream returns true if the error is a transient upstream failure.
func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstream)
}

// Response is the JSON error body produced by the HTTP layer.
type Response struct {
	Success    bool      `json:"success"`
	ErrorCode  string    `json:"error_code"`
	Message    string    `json:"message"`
	Details    any       `json:"details,omitempty"`
	RetryAfter int       `json:"retry_after,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewResponse builds the error body for an error.
func NewResponse(err error) Response {
	return Response{
		Success:    false,
		ErrorCode:  CodeOf(err),
		Message:    MessageOf(err),
		RetryAfter: int(RetryAfterOf(err).Round(time.Second).Seconds()),
		Timestamp:  time.Now().UTC(),
	}
}
