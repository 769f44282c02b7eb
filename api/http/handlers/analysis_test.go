package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkraev/resumeforge/pkg/analysis"
)

type analysisUCStub struct {
	out analysis.Analysis
	err error
}

func (s *analysisUCStub) Analyze(ctx context.Context, ownerID uuid.UUID, resume json.RawMessage, jobDescription string) (analysis.Analysis, error) {
	if s.err != nil {
		return analysis.Analysis{}, s.err
	}
	out := s.out
	out.OwnerID = ownerID
	return out, nil
}

func (s *analysisUCStub) Get(ctx context.Context, ownerID, id uuid.UUID) (analysis.Analysis, error) {
	return s.out, s.err
}

func (s *analysisUCStub) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]analysis.Analysis, error) {
	return nil, s.err
}

func (s *analysisUCStub) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.err
}

// fakeAuth plays the role of the real middleware: it plants a user id the
// way a verified credential would.
func fakeAuth(userID uuid.UUID) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userId", userID.String())
		return c.Next()
	}
}

func analysisApp(uc analysis.UseCase, userID uuid.UUID) *fiber.App {
	app := fiber.New()
	h := NewAnalysisHandler(uc)
	app.Post("/analyses", fakeAuth(userID), h.Analyze)
	app.Get("/analyses", fakeAuth(userID), h.List)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAnalyzeHandler_Success(t *testing.T) {
	userID := uuid.New()
	stub := &analysisUCStub{out: analysis.Analysis{
		ID:    uuid.New(),
		Model: "test-model",
		Result: analysis.Result{
			Score:           85,
			KeywordMatch:    70,
			MissingKeywords: []string{"Python"},
			Suggestions:     []string{"Add metrics"},
			Strengths:       []string{"Clear formatting"},
			Improvements:    []string{"Add certifications"},
		},
	}}
	app := analysisApp(stub, userID)

	resp := postJSON(t, app, "/analyses", `{"resume":{"name":"Jane"},"jobDescription":"Job desc"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var got analysis.Analysis
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, float64(85), got.Result.Score)
	assert.Equal(t, []string{"Python"}, got.Result.MissingKeywords)
	assert.Equal(t, userID, got.OwnerID)
}

func TestAnalyzeHandler_ValidationIsClientError(t *testing.T) {
	app := analysisApp(&analysisUCStub{err: analysis.ErrValidation}, uuid.New())

	resp := postJSON(t, app, "/analyses", `{"resume":null,"jobDescription":""}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// Provider and parse failures surface as the same generic 500.
func TestAnalyzeHandler_BackendFailuresAreGeneric(t *testing.T) {
	for _, ucErr := range []error{analysis.ErrProviderCall, analysis.ErrBadModelOutput} {
		app := analysisApp(&analysisUCStub{err: ucErr}, uuid.New())

		resp := postJSON(t, app, "/analyses", `{"resume":{"name":"Jane"},"jobDescription":"Job desc"}`)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Equal(t, `{"message":"analysis failed"}`, string(body))
	}
}

func TestAnalyzeHandler_MalformedJSON(t *testing.T) {
	app := analysisApp(&analysisUCStub{}, uuid.New())

	resp := postJSON(t, app, "/analyses", `{not json`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListAnalyses_EmptyIsArrayNotNull(t *testing.T) {
	app := analysisApp(&analysisUCStub{}, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/analyses", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "[]", strings.TrimSpace(string(body)))
}
