package users

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/doylio/eros-server/internal/auth"
	"github.com/doylio/eros-server/internal/platform/httpx"
	"github.com/doylio/eros-server/internal/shared"
)

// Handler wires HTTP endpoints for account management. Every route requires
// an authenticated superuser.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers user management routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router, mw auth.Middleware) {
	r.Use(mw.Authenticate)
	r.Use(mw.RequireSuperuser)
	r.Post("/", h.handleCreate)
	r.Get("/", h.handleList)
	r.Patch("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
}

// userResponse is the client-facing account shape. The password hash and the
// token list never leave the server.
type userResponse struct {
	ID        uuid.UUID `json:"_id"`
	Username  string    `json:"username"`
	Superuser bool      `json:"superuser"`
}

func toResponse(account *auth.Account) userResponse {
	return userResponse{
		ID:        account.ID,
		Username:  account.Username,
		Superuser: account.IsSuperuser(),
	}
}

type createRequest struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
	Superuser bool   `json:"superuser"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	account, err := h.service.Create(r.Context(), req.Username, req.Password, req.Superuser)
	if err != nil {
		h.logger.Warn("create user", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]userResponse{"user": toResponse(account)})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list users", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	responses := make([]userResponse, len(accounts))
	for i := range accounts {
		responses[i] = toResponse(&accounts[i])
	}
	httpx.JSON(w, http.StatusOK, map[string][]userResponse{"users": responses})
}

type updateRequest struct {
	Password  *string `json:"password"`
	Superuser *bool   `json:"superuser"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	var req updateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if req.Password != nil && len(*req.Password) < 6 {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	account, err := h.service.Update(r.Context(), id, UpdateParams{
		Password:  req.Password,
		Superuser: req.Superuser,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]userResponse{"user": toResponse(account)})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, struct{}{})
}
