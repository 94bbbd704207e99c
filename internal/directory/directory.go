// Package directory provides read access to the user directory consumed by
// the administrative operations, plus creation for seeding.
//
// Administrative operations never mutate existing directory records; they
// only resolve emails to user identifiers.
package directory

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// User is a directory entry. ID is opaque to callers; locally created
// users get a UUID.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UserDirectory resolves users for the administrative operations.
type UserDirectory interface {
	// FindByEmail returns the first user whose email matches exactly
	// (case-sensitive). Oldest record wins when duplicates exist.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Create inserts a new directory entry.
	Create(ctx context.Context, user *User) error
}
