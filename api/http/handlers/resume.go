package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mkraev/resumeforge/api/http/presenter"
	"github.com/mkraev/resumeforge/pkg/resume"
)

type ResumeHandler struct {
	uc resume.UseCase
	// Limit uploaded file size read into memory (bytes)
	maxBytes int64
}

func NewResumeHandler(uc resume.UseCase) *ResumeHandler {
	return &ResumeHandler{uc: uc, maxBytes: 15 << 20} // 15MB
}

type resumeRequest struct {
	Title   string          `json:"title"`
	Content json.RawMessage `json:"content"`
}

// Create stores a new resume document.
// @Summary Create resume
// @Tags    resumes
// @Accept  json
// @Produce json
// @Param   input body resumeRequest true "resume payload"
// @Security BearerAuth
// @Success 201 {object} resume.Resume
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /resumes [post]
func (h *ResumeHandler) Create(c *fiber.Ctx) error {
	uid, ok := actorID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	var req resumeRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	r, err := h.uc.Create(c.Context(), uid, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, resume.ErrInvalidInput) {
			return presenter.Error(c, http.StatusBadRequest, "title and content are required")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to save resume")
	}
	return presenter.JSON(c, http.StatusCreated, r)
}

// Get returns one resume owned by the current user.
// @Summary Get resume
// @Tags    resumes
// @Produce json
// @Param   id path string true "resume ID (UUID)"
// @Security BearerAuth
// @Success 200 {object} resume.Resume
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [get]
func (h *ResumeHandler) Get(c *fiber.Ctx) error {
	uid, ok := actorID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	r, err := h.uc.Get(c.Context(), uid, id)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "resume not found")
	}
	return presenter.JSON(c, http.StatusOK, r)
}

// List returns the current user's resumes.
// @Summary List resumes
// @Tags    resumes
// @Produce json
// @Param   limit query int false "page size"
// @Param   offset query int false "page offset"
// @Security BearerAuth
// @Success 200 {array} resume.Resume
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /resumes [get]
func (h *ResumeHandler) List(c *fiber.Ctx) error {
	uid, ok := actorID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.uc.List(c.Context(), uid, limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list resumes")
	}
	if items == nil {
		items = []resume.Resume{}
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Update replaces title and content of a resume.
// @Summary Update resume
// @Tags    resumes
// @Accept  json
// @Produce json
// @Param   id path string true "resume ID (UUID)"
// @Param   input body resumeRequest true "resume payload"
// @Security BearerAuth
// @Success 200 {object} resume.Resume
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [put]
func (h *ResumeHandler) Update(c *fiber.Ctx) error {
	uid, ok := actorID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	var req resumeRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	r, err := h.uc.Update(c.Context(), uid, id, req.Title, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, resume.ErrInvalidInput):
			return presenter.Error(c, http.StatusBadRequest, "title and content are required")
		case errors.Is(err, resume.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "resume not found")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to update resume")
		}
	}
	return presenter.JSON(c, http.StatusOK, r)
}

// Delete removes a resume owned by the current user.
// @Summary Delete resume
// @Tags    resumes
// @Param   id path string true "resume ID (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [delete]
func (h *ResumeHandler) Delete(c *fiber.Ctx) error {
	uid, ok := actorID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.uc.Delete(c.Context(), uid, id); err != nil {
		return presenter.Error(c, http.StatusNotFound, "resume not found")
	}
	return c.SendStatus(http.StatusNoContent)
}

// Import extracts plain text from an uploaded PDF/DOCX so the client can
// seed a new resume document from an existing file.
// @Summary Import resume file
// @Description Accepts a PDF or DOCX file and returns the extracted plain text.
// @Tags    resumes
// @Accept  multipart/form-data
// @Produce json
// @Param   file formData file true "resume file (PDF or DOCX)"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /resumes/import [post]
func (h *ResumeHandler) Import(c *fiber.Ctx) error {
	if _, ok := actorID(c); !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "file is required (pdf or docx)")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".pdf" && ext != ".docx" {
		return presenter.Error(c, http.StatusBadRequest, "unsupported file format: only pdf and docx are allowed")
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	text, err := resume.ExtractText(fh.Filename, data)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, fmt.Sprintf("failed to read resume: %v", err))
	}
	if text == "" {
		return presenter.Error(c, http.StatusBadRequest, "empty resume content")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"filename": fh.Filename,
		"sizeB":    len(data),
		"text":     text,
	})
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("file too large: limit is %d bytes", max)
	}
	return b, nil
}
