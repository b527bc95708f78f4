package identity

import (
	"context"
	"errors"
	"fmt"

	"comoencasa/config"
	userRepo "comoencasa/database/repository/user"
	"comoencasa/models"
	"comoencasa/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DefaultIdentityService implements Service over the user repository.
type DefaultIdentityService struct {
	Repo userRepo.UserRepository
}

// FindByEmail looks up an account by contact email.
func (s *DefaultIdentityService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.Repo.GetByEmail(ctx, email)
}

// GetByID retrieves an account by its ID.
func (s *DefaultIdentityService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.Repo.GetByID(ctx, id)
}

// EnsureProfile idempotently refreshes an account's display fields.
func (s *DefaultIdentityService) EnsureProfile(ctx context.Context, id, fullName, phone string) error {
	return s.Repo.UpsertProfile(ctx, id, fullName, phone)
}

// EnsureClient resolves the account for a contact email, creating a client
// account when none exists yet.
//
// Creation can race with a concurrent provisioning run for the same email;
// the unique email index decides the winner and the loser re-queries once
// instead of failing the whole workflow.
func (s *DefaultIdentityService) EnsureClient(ctx context.Context, email, fullName, phone string) (*models.User, bool, error) {
	logger := utils.GetLogger()

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, userRepo.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to look up account by email: %w", err)
	}

	// Accounts created through booking get a random throwaway password; the
	// real one is chosen through the setup link.
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash temporary password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		FullName:     fullName,
		Phone:        phone,
		Role:         models.RoleClient,
		PasswordHash: string(hash),
	}

	err = s.Repo.Create(ctx, user)
	if errors.Is(err, userRepo.ErrDuplicateEmail) {
		logger.Info("lost account creation race, reusing existing account",
			zap.String("email", email))
		winner, qerr := s.Repo.GetByEmail(ctx, email)
		if qerr != nil {
			return nil, false, fmt.Errorf("failed to re-query account after creation race: %w", qerr)
		}
		return winner, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to create client account: %w", err)
	}

	logger.Info("provisioned client account", zap.String("userID", user.ID))
	return user, true, nil
}

// GenerateSetupLink issues a signed one-time URL where the new client picks
// their password, the self-hosted equivalent of an invite link.
func (s *DefaultIdentityService) GenerateSetupLink(user *models.User) (string, error) {
	token, err := utils.GenerateSetupToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to sign setup token: %w", err)
	}
	return fmt.Sprintf("%s/setup?token=%s", config.AppConfig.FrontendURL, token), nil
}
