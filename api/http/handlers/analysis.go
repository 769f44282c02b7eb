package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mkraev/resumeforge/api/http/presenter"
	"github.com/mkraev/resumeforge/pkg/analysis"
)

type AnalysisHandler struct {
	uc analysis.UseCase
}

func NewAnalysisHandler(uc analysis.UseCase) *AnalysisHandler { return &AnalysisHandler{uc: uc} }

type analyzeRequest struct {
	Resume         json.RawMessage `json:"resume"`
	JobDescription string          `json:"jobDescription"`
}

// Analyze scores a resume against a job description via the LLM and
// returns the stored report.
// Provider and parse failures both answer with the same generic 500;
// the concrete cause is only logged.
// @Summary Analyze resume against a job description
// @Tags    analyses
// @Accept  json
// @Produce json
// @Param   input body analyzeRequest true "resume document + job description"
// @Security BearerAuth
// @Success 201 {object} analysis.Analysis
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /analyses [post]
func (h *AnalysisHandler) Analyze(c *fiber.Ctx) error {
	uid, ok := actorID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	var req analyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	out, err := h.uc.Analyze(c.Context(), uid, req.Resume, req.JobDescription)
	if err != nil {
		if errors.Is(err, analysis.ErrValidation) {
			return presenter.Error(c, http.StatusBadRequest, "resume and job description are required")
		}
		log.Printf("analysis failed for user %s: %v", uid, err)
		return presenter.Error(c, http.StatusInternalServerError, "analysis failed")
	}
	return presenter.JSON(c, http.StatusCreated, out)
}

// Get returns a stored analysis owned by the current user.
// @Summary Get analysis
// @Tags    analyses
// @Produce json
// @Param   id path string true "analysis ID (UUID)"
// @Security BearerAuth
// @Success 200 {object} analysis.Analysis
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /analyses/{id} [get]
func (h *AnalysisHandler) Get(c *fiber.Ctx) error {
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
		return presenter.Error(c, http.StatusNotFound, "analysis not found")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// List returns the current user's analysis history.
// @Summary List analyses
// @Tags    analyses
// @Produce json
// @Param   limit query int false "page size"
// @Param   offset query int false "page offset"
// @Security BearerAuth
// @Success 200 {array} analysis.Analysis
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /analyses [get]
func (h *AnalysisHandler) List(c *fiber.Ctx) error {
	uid, ok := actorID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.uc.List(c.Context(), uid, limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list analyses")
	}
	if items == nil {
		items = []analysis.Analysis{}
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Delete removes a stored analysis.
// @Summary Delete analysis
// @Tags    analyses
// @Param   id path string true "analysis ID (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /analyses/{id} [delete]
func (h *AnalysisHandler) Delete(c *fiber.Ctx) error {
	uid, ok := actorID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.uc.Delete(c.Context(), uid, id); err != nil {
		return presenter.Error(c, http.StatusNotFound, "analysis not found")
	}
	return c.SendStatus(http.StatusNoContent)
}
