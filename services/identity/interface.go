package identity

import (
	"context"

	"comoencasa/models"
)

// Service is the identity collaborator consumed by the provisioning
// workflow: account lookup, lazy client creation and one-time setup links.
type Service interface {
	// FindByEmail looks up an account by contact email (case-insensitive).
	// Returns userRepo.ErrNotFound when no account exists.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// EnsureClient returns the account matching the contact details,
	// creating a client account lazily when none exists. The second return
	// reports whether a new account was created on this call.
	EnsureClient(ctx context.Context, email, fullName, phone string) (*models.User, bool, error)
	// GetByID retrieves an account by its ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// EnsureProfile idempotently refreshes an account's display fields.
	EnsureProfile(ctx context.Context, id, fullName, phone string) error
	// GenerateSetupLink issues the one-time account-setup URL sent in the
	// welcome email of a freshly created account.
	GenerateSetupLink(user *models.User) (string, error)
}
