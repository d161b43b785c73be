package auth

import "context"

type identityContextKey struct{}

// Identity is the authenticated account together with the exact token it
// presented. Handlers that revoke the current session need both.
type Identity struct {
	Account *Account
	Token   string
}

// ContextWithIdentity stores the identity in context.
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the identity from context. It returns nil when
// the request did not pass the authentication gate.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityContextKey{}).(*Identity)
	return id
}
