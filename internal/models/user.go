package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `db:"id" json:"id"`

	// Email is the user's email address (unique, used for login).
	Email string `db:"email" json:"email"`

	// DisplayName is the name shown to other group members.
	DisplayName string `db:"display_name" json:"displayName"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized in API responses.
	PasswordHash string `db:"password_hash" json:"-"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `db:"created_at" json:"createdAt"`

	// UpdatedAt is the Unix timestamp of the last account update.
	UpdatedAt int64 `db:"updated_at" json:"updatedAt"`
}

// NewUser creates a User with a fresh ID and timestamps.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
