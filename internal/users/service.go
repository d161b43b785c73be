// Package users exposes superuser-gated account management.
package users

import (
	"context"

	"github.com/google/uuid"

	"github.com/doylio/eros-server/internal/auth"
)

// UpdateParams carries the accepted fields for a partial account update. Nil
// means "leave unchanged". The password hash is recomputed when, and only
// when, a new plaintext password is supplied.
type UpdateParams struct {
	Password  *string
	Superuser *bool
}

// Service handles account management on top of the auth core. All persistence
// goes through the shared account store.
type Service struct {
	core     *auth.Service
	accounts auth.Repository
	hasher   *auth.PasswordHasher
}

// NewService builds a Service instance.
func NewService(core *auth.Service, accounts auth.Repository, hasher *auth.PasswordHasher) *Service {
	return &Service{core: core, accounts: accounts, hasher: hasher}
}

// Create registers a new account with a hashed initial password.
func (s *Service) Create(ctx context.Context, username, password string, superuser bool) (*auth.Account, error) {
	role := auth.RoleStandard
	if superuser {
		role = auth.RoleSuperuser
	}
	return s.core.Register(ctx, username, password, role)
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]auth.Account, error) {
	return s.accounts.List(ctx)
}

// Update applies a partial update to an account.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*auth.Account, error) {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if params.Password != nil {
		hash, err := s.hasher.Hash(*params.Password)
		if err != nil {
			return nil, err
		}
		account.PasswordHash = hash
	}
	if params.Superuser != nil {
		account.Role = auth.RoleStandard
		if *params.Superuser {
			account.Role = auth.RoleSuperuser
		}
	}
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Delete removes an account. Any tokens it issued become unverifiable once
// the record is gone, since the gate resolves tokens against the store.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.accounts.Delete(ctx, id)
}
