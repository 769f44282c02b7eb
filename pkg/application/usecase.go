package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("company, position and a valid status are required")

// UseCase describes job application tracking for an authenticated owner.
type UseCase interface {
	Create(ctx context.Context, a Application) (Application, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (Application, error)
	List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Application, error)
	Update(ctx context.Context, a Application) (Application, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, a Application) (Application, error) {
	a.Company = strings.TrimSpace(a.Company)
	a.Position = strings.TrimSpace(a.Position)
	if a.Status == "" {
		a.Status = StatusSaved
	}
	if a.Company == "" || a.Position == "" || !ValidStatus(a.Status) {
		return Application{}, ErrInvalidInput
	}
	now := time.Now().UTC()
	a.ID = uuid.New()
	a.CreatedAt = now
	a.UpdatedAt = now
	if err := s.repo.Create(ctx, a); err != nil {
		return Application{}, err
	}
	return a, nil
}

func (s *service) Get(ctx context.Context, ownerID, id uuid.UUID) (Application, error) {
	return s.repo.GetForOwner(ctx, ownerID, id)
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Application, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

func (s *service) Update(ctx context.Context, a Application) (Application, error) {
	a.Company = strings.TrimSpace(a.Company)
	a.Position = strings.TrimSpace(a.Position)
	if a.Company == "" || a.Position == "" || !ValidStatus(a.Status) {
		return Application{}, ErrInvalidInput
	}
	current, err := s.repo.GetForOwner(ctx, a.OwnerID, a.ID)
	if err != nil {
		return Application{}, err
	}
	current.Company = a.Company
	current.Position = a.Position
	current.JobDescription = a.JobDescription
	current.Status = a.Status
	current.Notes = a.Notes
	current.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, current); err != nil {
		return Application{}, err
	}
	return current, nil
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteForOwner(ctx, ownerID, id)
}
