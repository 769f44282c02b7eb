package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("application not found")

// Status tracks where a job application sits in the pipeline.
type Status string

const (
	StatusSaved     Status = "saved"
	StatusApplied   Status = "applied"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusRejected  Status = "rejected"
)

// ValidStatus reports whether s is one of the known pipeline states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusSaved, StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// Application is a tracked job application owned by a user.
type Application struct {
	ID             uuid.UUID `json:"id"`
	OwnerID        uuid.UUID `json:"ownerId"`
	Company        string    `json:"company"`
	Position       string    `json:"position"`
	JobDescription string    `json:"jobDescription,omitempty"`
	Status         Status    `json:"status"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Repository is the persistence port for job applications.
type Repository interface {
	Create(ctx context.Context, a Application) error
	GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (Application, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Application, error)
	Update(ctx context.Context, a Application) error
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}
