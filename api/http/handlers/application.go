package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mkraev/resumeforge/api/http/presenter"
	"github.com/mkraev/resumeforge/pkg/application"
)

type ApplicationHandler struct {
	uc application.UseCase
}

func NewApplicationHandler(uc application.UseCase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type applicationRequest struct {
	Company        string `json:"company"`
	Position       string `json:"position"`
	JobDescription string `json:"jobDescription"`
	Status         string `json:"status"`
	Notes          string `json:"notes"`
}

// Create tracks a new job application.
// @Summary Create job application
// @Tags    applications
// @Accept  json
// @Produce json
// @Param   input body applicationRequest true "application payload"
// @Security BearerAuth
// @Success 201 {object} application.Application
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /applications [post]
func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	uid, ok := actorID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	var req applicationRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	out, err := h.uc.Create(c.Context(), application.Application{
		OwnerID:        uid,
		Company:        req.Company,
		Position:       req.Position,
		JobDescription: req.JobDescription,
		Status:         application.Status(req.Status),
		Notes:          req.Notes,
	})
	if err != nil {
		if errors.Is(err, application.ErrInvalidInput) {
			return presenter.Error(c, http.StatusBadRequest, "company, position and a valid status are required")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to save application")
	}
	return presenter.JSON(c, http.StatusCreated, out)
}

// Get returns a tracked application owned by the current user.
// @Summary Get job application
// @Tags    applications
// @Produce json
// @Param   id path string true "application ID (UUID)"
// @Security BearerAuth
// @Success 200 {object} application.Application
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /applications/{id} [get]
func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	uid, ok := actorID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	out, err := h.uc.Get(c.Context(), uid, id)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "application not found")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// List returns the current user's tracked applications.
// @Summary List job applications
// @Tags    applications
// @Produce json
// @Param   limit query int false "page size"
// @Param   offset query int false "page offset"
// @Security BearerAuth
// @Success 200 {array} application.Application
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /applications [get]
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	uid, ok := actorID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.uc.List(c.Context(), uid, limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list applications")
	}
	if items == nil {
		items = []application.Application{}
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Update replaces a tracked application.
// @Summary Update job application
// @Tags    applications
// @Accept  json
// @Produce json
// @Param   id path string true "application ID (UUID)"
// @Param   input body applicationRequest true "application payload"
// @Security BearerAuth
// @Success 200 {object} application.Application
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /applications/{id} [put]
func (h *ApplicationHandler) Update(c *fiber.Ctx) error {
	uid, ok := actorID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	var req applicationRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	out, err := h.uc.Update(c.Context(), application.Application{
		ID:             id,
		OwnerID:        uid,
		Company:        req.Company,
		Position:       req.Position,
		JobDescription: req.JobDescription,
		Status:         application.Status(req.Status),
		Notes:          req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidInput):
			return presenter.Error(c, http.StatusBadRequest, "company, position and a valid status are required")
		case errors.Is(err, application.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "application not found")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to update application")
		}
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Delete removes a tracked application.
// @Summary Delete job application
// @Tags    applications
// @Param   id path string true "application ID (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /applications/{id} [delete]
func (h *ApplicationHandler) Delete(c *fiber.Ctx) error {
	uid, ok := actorID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.uc.Delete(c.Context(), uid, id); err != nil {
		return presenter.Error(c, http.StatusNotFound, "application not found")
	}
	return c.SendStatus(http.StatusNoContent)
}
