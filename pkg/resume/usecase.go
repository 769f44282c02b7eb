package resume

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("title and content are required")

// UseCase describes resume document management for an authenticated owner.
type UseCase interface {
	Create(ctx context.Context, ownerID uuid.UUID, title string, content json.RawMessage) (Resume, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (Resume, error)
	List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Resume, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, title string, content json.RawMessage) (Resume, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, title string, content json.RawMessage) (Resume, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(content) == 0 {
		return Resume{}, ErrInvalidInput
	}
	now := time.Now().UTC()
	r := Resume{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return Resume{}, err
	}
	return r, nil
}

func (s *service) Get(ctx context.Context, ownerID, id uuid.UUID) (Resume, error) {
	return s.repo.GetForOwner(ctx, ownerID, id)
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Resume, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

func (s *service) Update(ctx context.Context, ownerID, id uuid.UUID, title string, content json.RawMessage) (Resume, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(content) == 0 {
		return Resume{}, ErrInvalidInput
	}
	current, err := s.repo.GetForOwner(ctx, ownerID, id)
	if err != nil {
		return Resume{}, err
	}
	current.Title = title
	current.Content = content
	current.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, current); err != nil {
		return Resume{}, err
	}
	return current, nil
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteForOwner(ctx, ownerID, id)
}
