package analysis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Result is the fixed six-field report produced per analysis.
// The model is instructed to return exactly this shape; anything else
// is rejected during parsing.
type Result struct {
	Score           float64  `json:"score"`
	KeywordMatch    float64  `json:"keywordMatch"`
	MissingKeywords []string `json:"missingKeywords"`
	Suggestions     []string `json:"suggestions"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
}

// Analysis links a stored report to its owner and inputs.
type Analysis struct {
	ID             uuid.UUID       `json:"id"`
	OwnerID        uuid.UUID       `json:"ownerId"`
	ResumeSnapshot json.RawMessage `json:"resumeSnapshot,omitempty"`
	JobDescription string          `json:"jobDescription"`
	Model          string          `json:"model"`
	Result         Result          `json:"result"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// Repository persists analysis reports per owner.
type Repository interface {
	Create(ctx context.Context, a Analysis) (Analysis, error)
	GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (Analysis, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Analysis, error)
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}
