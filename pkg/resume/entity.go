package resume

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("resume not found")

// Resume is a stored resume document. Content is free-shape JSON built by
// the editor client; the server does not enforce a section schema.
type Resume struct {
	ID        uuid.UUID       `json:"id"`
	OwnerID   uuid.UUID       `json:"ownerId"`
	Title     string          `json:"title"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Repository is the persistence port for resume documents.
type Repository interface {
	Create(ctx context.Context, r Resume) error
	GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (Resume, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Resume, error)
	Update(ctx context.Context, r Resume) error
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}
