package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/doylio/eros-server/internal/auth"
	"github.com/doylio/eros-server/internal/items"
	"github.com/doylio/eros-server/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	AuthHandler    *auth.Handler
	AuthMiddleware auth.Middleware
	ItemsHandler   *items.Handler
	UsersHandler   *users.Handler
}

// NewRouter constructs the chi.Router with the service defaults. Login sits
// at the root; item and user resources live under /item and /user as the
// clients expect.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Placeholder client response until a real frontend exists.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Client"))
	})

	params.AuthHandler.MountRoutes(r, params.AuthMiddleware)
	r.Route("/item", func(r chi.Router) {
		params.ItemsHandler.MountRoutes(r, params.AuthMiddleware)
	})
	r.Route("/user", func(r chi.Router) {
		params.UsersHandler.MountRoutes(r, params.AuthMiddleware)
	})

	return r
}
