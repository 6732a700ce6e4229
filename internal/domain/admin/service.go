package admin

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/polltech/smarttutors/internal/domain/user"
	"github.com/polltech/smarttutors/internal/pkg/password"
)

// Counters feeds the dashboard with aggregate activity numbers.
type Counters struct {
	CountChats  func(ctx context.Context) (int, error)
	CountImages func(ctx context.Context) (int, error)
}

// Service bundles the cross-domain dependencies of the admin console.
type Service struct {
	users    user.Repository
	counters Counters
}

// NewService creates admin service
func NewService(users user.Repository, counters Counters) *Service {
	return &Service{users: users, counters: counters}
}

// EnsureAdmin creates the bootstrap admin account if it does not exist.
// Called once on startup; a lost race against another instance surfaces as
// a duplicate error and is ignored.
func (s *Service) EnsureAdmin(ctx context.Context, email, plainPassword string) error {
	if email == "" || plainPassword == "" {
		return nil
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return err
	}

	u := &user.User{
		ID:           uuid.New(),
		Username:     "admin",
		Email:        email,
		PasswordHash: hash,
		Role:         user.RoleAdmin,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if err == user.ErrEmailAlreadyExists || err == user.ErrUsernameAlreadyExists {
			return nil
		}
		return err
	}

	log.Info().Str("email", email).Msg("bootstrap admin account created")
	return nil
}

// DeleteUser removes an account. Ledger entries, chats, payments and image
// logs cascade with it.
func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return user.ErrUserNotFound
	}
	if u.IsAdmin() {
		return ErrCannotDeleteAdmin
	}
	return s.users.Delete(ctx, id)
}
