package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mkraev/resumeforge/pkg/auth"
)

var (
	ErrWrongPassword = errors.New("current password does not match")
	ErrWeakPassword  = errors.New("new password is too short")
)

const minPasswordLen = 8

// UseCase covers profile reads and password changes for the current user.
//
// Profile reads double as the liveness check behind the token: a verified
// credential whose subject no longer has a row must surface auth.ErrNotFound,
// not an authentication failure.
type UseCase interface {
	Profile(ctx context.Context, userID uuid.UUID) (auth.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
}

type service struct {
	users auth.UserRepository
}

func NewService(users auth.UserRepository) UseCase {
	return &service{users: users}
}

func (s *service) Profile(ctx context.Context, userID uuid.UUID) (auth.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *service) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return ErrWeakPassword
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return ErrWrongPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordHash(ctx, userID, string(hash))
}
