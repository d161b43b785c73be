// Package auth implements credential verification, token issuance and
// request-level authentication for the API.
package auth

import (
	"time"

	"github.com/google/uuid"
)

// Role labels the access level of an account.
type Role string

const (
	// RoleStandard is the default access level.
	RoleStandard Role = "standard"
	// RoleSuperuser may manage other accounts.
	RoleSuperuser Role = "superuser"
)

// ScopeAuth is the only token scope issued by this service.
const ScopeAuth = "auth"

// IssuedToken is one entry of an account's active-token list.
type IssuedToken struct {
	Scope string `json:"scope"`
	Token string `json:"token"`
}

// Account represents a user account with credentials and a role. The
// active-token list is embedded in the record and persisted whole, so
// issuance order is insertion order.
type Account struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         Role
	LastLogin    *time.Time
	Tokens       []IssuedToken
}

// IsSuperuser reports whether the account may manage other accounts.
func (a *Account) IsSuperuser() bool {
	return a.Role == RoleSuperuser
}

// HasToken reports whether token is present in the active-token list under
// the given scope.
func (a *Account) HasToken(scope, token string) bool {
	for _, t := range a.Tokens {
		if t.Scope == scope && t.Token == token {
			return true
		}
	}
	return false
}

// RemoveToken drops every entry matching the exact token string from the
// active-token list. Removing an absent token is a no-op.
func (a *Account) RemoveToken(token string) {
	kept := a.Tokens[:0]
	for _, t := range a.Tokens {
		if t.Token != token {
			kept = append(kept, t)
		}
	}
	a.Tokens = kept
}
