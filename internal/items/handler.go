package items

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/doylio/eros-server/internal/auth"
	"github.com/doylio/eros-server/internal/platform/httpx"
	"github.com/doylio/eros-server/internal/shared"
)

// Handler wires HTTP endpoints for item management. All routes require an
// authenticated caller; the creator of a new item is taken from the request
// identity, never from the payload.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers item routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router, mw auth.Middleware) {
	r.Use(mw.Authenticate)
	r.Post("/", h.handleCreate)
	r.Get("/", h.handleList)
	r.Get("/{id}", h.handleGet)
	r.Patch("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
}

type itemPayload struct {
	Name      *string `json:"name"`
	StackType *string `json:"stackType"`
	Active    *bool   `json:"active"`
	Notes     *string `json:"notes"`
}

type itemResponse struct {
	ID        uuid.UUID `json:"_id"`
	Name      string    `json:"name"`
	StackType StackType `json:"stackType"`
	IPAddress string    `json:"IP_address"`
	Creator   string    `json:"creator,omitempty"`
	Active    bool      `json:"active"`
	Notes     string    `json:"notes"`
}

func toResponse(item *Item) itemResponse {
	return itemResponse{
		ID:        item.ID,
		Name:      item.Name,
		StackType: item.StackType,
		IPAddress: item.IPAddress,
		Creator:   item.Creator,
		Active:    item.Active,
		Notes:     item.Notes,
	}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload itemPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}

	params := CreateParams{Active: payload.Active}
	if payload.Name != nil {
		params.Name = *payload.Name
	}
	if payload.StackType != nil {
		params.StackType = StackType(*payload.StackType)
	}
	if payload.Notes != nil {
		params.Notes = *payload.Notes
	}
	if id := auth.IdentityFromContext(r.Context()); id != nil && id.Account != nil {
		params.Creator = id.Account.ID.String()
	}

	item, err := h.service.Create(r.Context(), params)
	if err != nil {
		h.logger.Warn("create item", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]itemResponse{"item": toResponse(item)})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list items", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	responses := make([]itemResponse, len(list))
	for i := range list {
		responses[i] = toResponse(&list[i])
	}
	httpx.JSON(w, http.StatusOK, map[string][]itemResponse{"items": responses})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}
	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]itemResponse{"item": toResponse(item)})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}
	var payload itemPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	params := UpdateParams{
		Name:   payload.Name,
		Active: payload.Active,
		Notes:  payload.Notes,
	}
	if payload.StackType != nil {
		stack := StackType(*payload.StackType)
		params.StackType = &stack
	}
	item, err := h.service.Update(r.Context(), id, params)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]itemResponse{"item": toResponse(item)})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}
	item, err := h.service.Delete(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]itemResponse{"item": toResponse(item)})
}

// itemID parses the path identifier. A malformed identifier is reported the
// same way as an unknown one: 404.
func (h *Handler) itemID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return uuid.Nil, false
	}
	return id, true
}
