package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repoMock struct {
	items map[uuid.UUID]Application
}

func newRepoMock() *repoMock {
	return &repoMock{items: map[uuid.UUID]Application{}}
}

func (m *repoMock) Create(ctx context.Context, a Application) error {
	m.items[a.ID] = a
	return nil
}

func (m *repoMock) GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (Application, error) {
	a, ok := m.items[id]
	if !ok || a.OwnerID != ownerID {
		return Application{}, ErrNotFound
	}
	return a, nil
}

func (m *repoMock) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Application, error) {
	var out []Application
	for _, a := range m.items {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *repoMock) Update(ctx context.Context, a Application) error {
	if _, ok := m.items[a.ID]; !ok {
		return ErrNotFound
	}
	m.items[a.ID] = a
	return nil
}

func (m *repoMock) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	a, ok := m.items[id]
	if !ok || a.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func TestCreate_DefaultsToSaved(t *testing.T) {
	svc := NewService(newRepoMock())

	out, err := svc.Create(context.Background(), Application{
		OwnerID:  uuid.New(),
		Company:  "  Acme  ",
		Position: "Go Developer",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSaved, out.Status)
	assert.Equal(t, "Acme", out.Company)
	assert.NotEqual(t, uuid.Nil, out.ID)
	assert.False(t, out.CreatedAt.IsZero())
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	svc := NewService(newRepoMock())
	owner := uuid.New()

	_, err := svc.Create(context.Background(), Application{OwnerID: owner, Position: "Dev"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), Application{OwnerID: owner, Company: "Acme"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), Application{
		OwnerID: owner, Company: "Acme", Position: "Dev", Status: Status("daydreaming"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_ScopedToOwner(t *testing.T) {
	repo := newRepoMock()
	svc := NewService(repo)
	owner := uuid.New()

	created, err := svc.Create(context.Background(), Application{
		OwnerID: owner, Company: "Acme", Position: "Dev",
	})
	require.NoError(t, err)

	// Another user cannot touch the record.
	_, err = svc.Update(context.Background(), Application{
		ID: created.ID, OwnerID: uuid.New(), Company: "Acme", Position: "Dev", Status: StatusApplied,
	})
	assert.ErrorIs(t, err, ErrNotFound)

	out, err := svc.Update(context.Background(), Application{
		ID: created.ID, OwnerID: owner, Company: "Acme", Position: "Dev", Status: StatusInterview, Notes: "on-site next week",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusInterview, out.Status)
	assert.Equal(t, "on-site next week", out.Notes)
}

func TestDelete_ScopedToOwner(t *testing.T) {
	repo := newRepoMock()
	svc := NewService(repo)
	owner := uuid.New()

	created, err := svc.Create(context.Background(), Application{
		OwnerID: owner, Company: "Acme", Position: "Dev",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), uuid.New(), created.ID), ErrNotFound)
	assert.NoError(t, svc.Delete(context.Background(), owner, created.ID))
}
