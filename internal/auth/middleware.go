package auth

import (
	"log/slog"
	"net/http"

	"github.com/doylio/eros-server/internal/platform/httpx"
	"github.com/doylio/eros-server/internal/shared"
)

// TokenHeader is the request header carrying the bearer token. Tokens are
// never accepted from the query string or the body.
const TokenHeader = "x-auth"

// Middleware wires request authentication and role checks for HTTP handlers.
type Middleware struct {
	Service *Service
	Logger  *slog.Logger
}

// Authenticate rejects any request without a valid, unrevoked token and
// attaches the resolved identity to the request context. Failures are
// terminal 401s; a request is never downgraded to anonymous access.
func (m Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(TokenHeader)
		if token == "" {
			httpx.RespondError(w, shared.ErrUnauthorized)
			return
		}
		account, err := m.Service.ResolveToken(r.Context(), token)
		if err != nil {
			if m.Logger != nil {
				m.Logger.Warn("authentication rejected",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path))
			}
			httpx.RespondError(w, shared.ErrUnauthorized)
			return
		}
		ctx := ContextWithIdentity(r.Context(), &Identity{Account: account, Token: token})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSuperuser gates a route to superuser accounts. It must run after
// Authenticate. Rejections use 401 rather than 403; existing clients depend
// on that status.
func (m Middleware) RequireSuperuser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := IdentityFromContext(r.Context())
		if id == nil || id.Account == nil || !id.Account.IsSuperuser() {
			httpx.RespondError(w, shared.ErrSuperuserRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}
