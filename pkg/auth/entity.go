package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a domain entity representing an account holder.
// PasswordHash never leaves the server.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	CreatedAt    time.Time
}
