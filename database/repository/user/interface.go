package userRepo

import (
	"context"
	"errors"

	"comoencasa/models"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when an insert collides with the unique
	// email index, which happens when two provisioning runs race on the same
	// contact address.
	ErrDuplicateEmail = errors.New("user with this email already exists")
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by email. Matching is case-insensitive:
	// emails are stored lowercased and the argument is lowercased before the
	// query.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Create inserts a new user record. Returns ErrDuplicateEmail when the
	// email is already taken.
	Create(ctx context.Context, user *models.User) error
	// UpsertProfile idempotently updates the display fields of an existing
	// user. Safe to repeat.
	UpsertProfile(ctx context.Context, id, fullName, phone string) error
}
