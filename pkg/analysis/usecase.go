package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/mkraev/resumeforge/pkg/llm"
)

// Failure kinds for the analyze flow. Handlers map ErrValidation to a 400
// and everything else to a generic 500; the concrete kind is for logs and
// tests only.
var (
	ErrValidation     = errors.New("resume and job description are required")
	ErrProviderCall   = errors.New("model provider call failed")
	ErrBadModelOutput = errors.New("model returned malformed analysis")
)

// UseCase covers scoring a resume against a job description and the
// stored-report history.
type UseCase interface {
	Analyze(ctx context.Context, ownerID uuid.UUID, resume json.RawMessage, jobDescription string) (Analysis, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (Analysis, error)
	List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Analysis, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type service struct {
	repo        Repository
	llm         llm.ChatModel
	modelName   string
	callTimeout time.Duration
	maxDocChars int
}

func NewService(repo Repository, model llm.ChatModel, modelName string, callTimeout time.Duration) UseCase {
	if callTimeout <= 0 {
		callTimeout = 60 * time.Second
	}
	return &service{
		repo:        repo,
		llm:         model,
		modelName:   modelName,
		callTimeout: callTimeout,
		maxDocChars: 12_000,
	}
}

func (s *service) Analyze(ctx context.Context, ownerID uuid.UUID, resume json.RawMessage, jobDescription string) (Analysis, error) {
	jobDescription = strings.TrimSpace(jobDescription)
	if emptyDocument(resume) || jobDescription == "" {
		return Analysis{}, ErrValidation
	}

	resumeStr := truncate(string(resume), s.maxDocChars)
	jobDescription = truncate(jobDescription, s.maxDocChars)

	// Upper bound on the provider round trip; the call is otherwise a
	// single blocking request with no retry.
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	raw, err := s.llm.Ask(callCtx, systemPrompt, buildUserPrompt(resumeStr, jobDescription))
	if err != nil {
		return Analysis{}, fmt.Errorf("%w: %v", ErrProviderCall, err)
	}

	result, err := parseResult(raw)
	if err != nil {
		return Analysis{}, err
	}

	a := Analysis{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		ResumeSnapshot: resume,
		JobDescription: jobDescription,
		Model:          s.modelName,
		Result:         result,
		CreatedAt:      time.Now().UTC(),
	}
	if s.repo == nil {
		return a, nil
	}
	return s.repo.Create(ctx, a)
}

func (s *service) Get(ctx context.Context, ownerID, id uuid.UUID) (Analysis, error) {
	return s.repo.GetByIDForOwner(ctx, ownerID, id)
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Analysis, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteForOwner(ctx, ownerID, id)
}

// truncate cuts s to at most max bytes without splitting a multi-byte
// rune, so the prompt stays valid UTF-8.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// emptyDocument treats nil, "", "null", "{}" and whitespace as absent.
func emptyDocument(doc json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(doc))
	return trimmed == "" || trimmed == "null" || trimmed == "{}"
}

// parseResult interprets the model reply strictly as the six-field JSON
// shape. A fenced/annotated reply gets one salvage pass that extracts the
// outermost object before giving up.
func parseResult(raw string) (Result, error) {
	raw = strings.TrimSpace(raw)
	var out Result
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		salvaged, ok := extractObject(raw)
		if !ok {
			return Result{}, fmt.Errorf("%w: %v", ErrBadModelOutput, err)
		}
		if err := json.Unmarshal([]byte(salvaged), &out); err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrBadModelOutput, err)
		}
	}
	if err := validateResult(&out); err != nil {
		return Result{}, err
	}
	return out, nil
}

func extractObject(raw string) (string, bool) {
	i := strings.Index(raw, "{")
	j := strings.LastIndex(raw, "}")
	if i < 0 || j <= i {
		return "", false
	}
	return raw[i : j+1], true
}

// validateResult enforces the numeric ranges and normalizes absent lists
// to empty slices so the API never emits null arrays.
func validateResult(r *Result) error {
	if r.Score < 0 || r.Score > 100 {
		return fmt.Errorf("%w: score %v out of range", ErrBadModelOutput, r.Score)
	}
	if r.KeywordMatch < 0 || r.KeywordMatch > 100 {
		return fmt.Errorf("%w: keywordMatch %v out of range", ErrBadModelOutput, r.KeywordMatch)
	}
	if r.MissingKeywords == nil {
		r.MissingKeywords = []string{}
	}
	if r.Suggestions == nil {
		r.Suggestions = []string{}
	}
	if r.Strengths == nil {
		r.Strengths = []string{}
	}
	if r.Improvements == nil {
		r.Improvements = []string{}
	}
	return nil
}
