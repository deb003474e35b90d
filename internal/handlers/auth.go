package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/orgball2608/insta-rest-api/internal/sessionstore"
	"github.com/orgball2608/insta-rest-api/pkg/apierrors"
)

type loginRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	TwoFactorCode string `json:"two_factor_code"`
}

type loadSessionRequest struct {
	Username string `json:"username"`
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return apierrors.E(apierrors.ErrValidation, "VALIDATION_ERROR", "invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return apierrors.E(apierrors.ErrValidation, "VALIDATION_ERROR",
			"username and password are required")
	}
	if err := validUsername(req.Username); err != nil {
		return err
	}

	if err := h.Instagram.Login(c.UserContext(), req.Username, req.Password, req.TwoFactorCode); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"username":     req.Username,
		"message":      "Successfully logged in",
		"requires_2fa": false,
	})
}

func (h *Handler) AuthStatus(c *fiber.Ctx) error {
	username, loggedIn := h.Instagram.ActiveUser()

	resp := fiber.Map{
		"is_logged_in":  loggedIn,
		"session_valid": loggedIn,
	}
	if loggedIn {
		resp["username"] = username
	}
	return c.JSON(resp)
}

func (h *Handler) ListSessions(c *fiber.Ctx) error {
	records, err := h.Sessions.List()
	if err != nil {
		return apierrors.Wrap(err, apierrors.ErrInternal, "SESSION_LIST_ERROR",
			"failed to list saved sessions")
	}

	sessions := make([]fiber.Map, 0, len(records))
	for _, record := range records {
		sessions = append(sessions, fiber.Map{
			"username":   record.Username,
			"created_at": record.CreatedAt,
			"size":       record.Size,
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// DeleteSession removes the saved session file. An active login for that
// username is not touched.
func (h *Handler) DeleteSession(c *fiber.Ctx) error {
	username := c.Params("username")
	if err := validUsername(username); err != nil {
		return err
	}

	if err := h.Sessions.Delete(username); err != nil {
		if errors.Is(err, sessionstore.ErrNotFound) {
			return apierrors.Ef(apierrors.ErrNotFound, "SESSION_NOT_FOUND",
				"no saved session for %q", username)
		}
		return apierrors.Wrap(err, apierrors.ErrInternal, "INTERNAL_ERROR",
			"failed to delete session")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"username": username,
		"message":  "Session deleted",
	})
}

func (h *Handler) LoadSession(c *fiber.Ctx) error {
	var req loadSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return apierrors.E(apierrors.ErrValidation, "VALIDATION_ERROR", "invalid request body")
	}
	if err := validUsername(req.Username); err != nil {
		return err
	}

	if err := h.Instagram.LoginFromSession(c.UserContext(), req.Username); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"username": req.Username,
		"message":  "Session loaded",
	})
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	if err := h.Instagram.Logout(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out",
	})
}
