package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that owns gear, trips and usage statistics.
// PasswordHash is a bcrypt hash and is never serialized.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash []byte
	CreatedAt    time.Time
}
