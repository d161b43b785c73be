package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/doylio/eros-server/internal/platform/httpx"
	"github.com/doylio/eros-server/internal/shared"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router. Logout sits
// behind the authentication gate; the gate resolves which token to revoke.
func (h *Handler) MountRoutes(r chi.Router, mw Middleware) {
	r.Post("/login", h.handleLogin)
	r.With(mw.Authenticate).Delete("/logout", h.handleLogout)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ErrInvalidCredentials)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, shared.ErrInvalidCredentials)
		return
	}

	_, token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("login rejected", slog.String("username", req.Username))
		}
		httpx.RespondError(w, err)
		return
	}

	w.Header().Set(TokenHeader, token)
	httpx.JSON(w, http.StatusOK, struct{}{})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	id := IdentityFromContext(r.Context())
	if id == nil || id.Account == nil {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}
	if err := h.service.Revoke(r.Context(), id.Account, id.Token); err != nil {
		if h.logger != nil {
			h.logger.Error("revoke token", slog.Any("error", err))
		}
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	httpx.JSON(w, http.StatusOK, struct{}{})
}
