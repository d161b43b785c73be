package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/doylio/eros-server/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo   Repository
	hasher *PasswordHasher
	tokens *TokenService
}

// NewService constructs a new Service.
func NewService(repo Repository, hasher *PasswordHasher, tokens *TokenService) *Service {
	return &Service{repo: repo, hasher: hasher, tokens: tokens}
}

// Authenticate validates username/password credentials. An unknown username
// and a wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*Account, error) {
	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, account.PasswordHash) {
		return nil, shared.ErrInvalidCredentials
	}
	return account, nil
}

// Login authenticates and issues a fresh auth token. Every call appends a new
// token to the account; earlier tokens stay valid until each is individually
// revoked, so concurrent sessions are permitted.
func (s *Service) Login(ctx context.Context, username, password string) (*Account, string, error) {
	account, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, "", err
	}
	token, err := s.tokens.Issue(account.ID, ScopeAuth)
	if err != nil {
		return nil, "", err
	}
	now := time.Now().UTC()
	account.LastLogin = &now
	account.Tokens = append(account.Tokens, IssuedToken{Scope: ScopeAuth, Token: token})
	if err := s.repo.Update(ctx, account); err != nil {
		return nil, "", err
	}
	return account, token, nil
}

// Register creates an account with a hashed initial password. The plaintext
// never reaches the store.
func (s *Service) Register(ctx context.Context, username, password string, role Role) (*Account, error) {
	if role == "" {
		role = RoleStandard
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	account := &Account{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.repo.Insert(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Revoke removes one token from the account's active list and persists the
// account. Revoking a token that is already absent is a no-op success.
func (s *Service) Revoke(ctx context.Context, account *Account, token string) error {
	account.RemoveToken(token)
	return s.repo.Update(ctx, account)
}

// ResolveToken verifies a presented token and resolves it to the owning
// account. The token must verify cryptographically, the account must still
// exist, and the token must still appear in the account's active-token list.
// A revoked token therefore fails here even though its signature is intact.
func (s *Service) ResolveToken(ctx context.Context, token string) (*Account, error) {
	accountID, scope, err := s.tokens.Verify(token)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	if !account.HasToken(scope, token) {
		return nil, shared.ErrUnauthorized
	}
	return account, nil
}
