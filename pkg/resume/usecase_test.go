package resume

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repoMock struct {
	items map[uuid.UUID]Resume
}

func newRepoMock() *repoMock {
	return &repoMock{items: map[uuid.UUID]Resume{}}
}

func (m *repoMock) Create(ctx context.Context, r Resume) error {
	m.items[r.ID] = r
	return nil
}

func (m *repoMock) GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (Resume, error) {
	r, ok := m.items[id]
	if !ok || r.OwnerID != ownerID {
		return Resume{}, ErrNotFound
	}
	return r, nil
}

func (m *repoMock) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Resume, error) {
	var out []Resume
	for _, r := range m.items {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *repoMock) Update(ctx context.Context, r Resume) error {
	if _, ok := m.items[r.ID]; !ok {
		return ErrNotFound
	}
	m.items[r.ID] = r
	return nil
}

func (m *repoMock) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	r, ok := m.items[id]
	if !ok || r.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(m.items, id)
	return nil
}

var content = json.RawMessage(`{"sections":[{"type":"summary","text":"Go developer"}]}`)

func TestCreate_RequiresTitleAndContent(t *testing.T) {
	svc := NewService(newRepoMock())
	owner := uuid.New()

	_, err := svc.Create(context.Background(), owner, "  ", content)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), owner, "My resume", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateAndGet(t *testing.T) {
	svc := NewService(newRepoMock())
	owner := uuid.New()

	created, err := svc.Create(context.Background(), owner, " My resume ", content)
	require.NoError(t, err)
	assert.Equal(t, "My resume", created.Title)
	assert.Equal(t, owner, created.OwnerID)

	got, err := svc.Get(context.Background(), owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// Resumes are never visible across owners.
	_, err = svc.Get(context.Background(), uuid.New(), created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_BumpsUpdatedAt(t *testing.T) {
	svc := NewService(newRepoMock())
	owner := uuid.New()

	created, err := svc.Create(context.Background(), owner, "My resume", content)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	updated, err := svc.Update(context.Background(), owner, created.ID, "Renamed", content)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestDelete_UnknownIsNotFound(t *testing.T) {
	svc := NewService(newRepoMock())
	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
