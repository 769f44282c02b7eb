package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type userRepoMock struct {
	byEmail map[string]User
	byID    map[uuid.UUID]User
}

func newUserRepoMock() *userRepoMock {
	return &userRepoMock{
		byEmail: map[string]User{},
		byID:    map[uuid.UUID]User{},
	}
}

func (m *userRepoMock) Create(ctx context.Context, user User) error {
	if _, ok := m.byEmail[user.Email]; ok {
		return ErrUserAlreadyExists
	}
	m.byEmail[user.Email] = user
	m.byID[user.ID] = user
	return nil
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	u, ok := m.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (m *userRepoMock) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	u, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = hash
	m.byID[id] = u
	m.byEmail[u.Email] = u
	return nil
}

type tokenIssuerStub struct{}

func (tokenIssuerStub) Issue(ctx context.Context, user User) (string, error) {
	return "token-for-" + user.Email, nil
}

func TestRegister_Success(t *testing.T) {
	repo := newUserRepoMock()
	svc := NewAuthService(repo, tokenIssuerStub{})

	res, err := svc.Register(context.Background(), "Jane@Example.com", "s3cret-pass", "Jane Doe")
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", res.User.Email)
	assert.Equal(t, "Jane Doe", res.User.FullName)
	assert.Equal(t, "token-for-jane@example.com", res.Token)
	// Password is stored hashed, never verbatim.
	assert.NotEqual(t, "s3cret-pass", res.User.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("s3cret-pass")))
}

func TestRegister_Duplicate(t *testing.T) {
	repo := newUserRepoMock()
	svc := NewAuthService(repo, tokenIssuerStub{})

	_, err := svc.Register(context.Background(), "jane@example.com", "s3cret-pass", "")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "jane@example.com", "other-pass", "")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegister_EmptyInput(t *testing.T) {
	svc := NewAuthService(newUserRepoMock(), tokenIssuerStub{})

	_, err := svc.Register(context.Background(), "", "pass", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(context.Background(), "jane@example.com", "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_Success(t *testing.T) {
	repo := newUserRepoMock()
	svc := NewAuthService(repo, tokenIssuerStub{})

	_, err := svc.Register(context.Background(), "jane@example.com", "s3cret-pass", "")
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), "JANE@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", res.User.Email)
	assert.NotEmpty(t, res.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newUserRepoMock()
	svc := NewAuthService(repo, tokenIssuerStub{})

	_, err := svc.Register(context.Background(), "jane@example.com", "s3cret-pass", "")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "jane@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := NewAuthService(newUserRepoMock(), tokenIssuerStub{})

	// Unknown user and wrong password must be indistinguishable.
	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
