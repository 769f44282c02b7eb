package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/mkraev/resumeforge/api/http/presenter"
	"github.com/mkraev/resumeforge/pkg/account"
	"github.com/mkraev/resumeforge/pkg/auth"
)

type AccountHandler struct {
	uc account.UseCase
}

func NewAccountHandler(uc account.UseCase) *AccountHandler { return &AccountHandler{uc: uc} }

// Me returns the current user's profile. The token only proves issuance,
// so a missing backing record is a 404, not a 401.
// @Summary Current user profile
// @Tags    account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /account/me [get]
func (h *AccountHandler) Me(c *fiber.Ctx) error {
	uid, ok := actorID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	user, err := h.uc.Profile(c.Context(), uid)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "user not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to load profile")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"id":        user.ID.String(),
		"email":     user.Email,
		"fullName":  user.FullName,
		"createdAt": user.CreatedAt,
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword verifies the current password and stores a new hash.
// @Summary Change password
// @Tags    account
// @Accept  json
// @Produce json
// @Param   input body changePasswordRequest true "password change payload"
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /account/password [put]
func (h *AccountHandler) ChangePassword(c *fiber.Ctx) error {
	uid, ok := actorID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return presenter.Error(c, http.StatusBadRequest, "current and new passwords are required")
	}
	if err := h.uc.ChangePassword(c.Context(), uid, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, account.ErrWeakPassword):
			return presenter.Error(c, http.StatusBadRequest, "new password must be at least 8 characters")
		case errors.Is(err, account.ErrWrongPassword):
			return presenter.Error(c, http.StatusBadRequest, "current password does not match")
		case errors.Is(err, auth.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "user not found")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to change password")
		}
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"status": "password changed"})
}
