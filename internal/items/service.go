package items

import (
	"context"

	"github.com/google/uuid"

	"github.com/doylio/eros-server/internal/shared"
)

// RepositoryPort defines data access methods for items.
type RepositoryPort interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	List(ctx context.Context) ([]Item, error)
	Insert(ctx context.Context, item *Item) error
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateParams carries the accepted fields for item creation.
type CreateParams struct {
	Name      string
	StackType StackType
	Active    *bool
	Notes     string
	Creator   string
}

// UpdateParams carries the accepted fields for a partial item update. Nil
// means "leave unchanged".
type UpdateParams struct {
	Name      *string
	StackType *StackType
	Active    *bool
	Notes     *string
}

// Service handles item business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new item. The IP address is assigned
// server-side; clients cannot choose it.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Item, error) {
	if params.Name == "" || !params.StackType.Valid() {
		return nil, shared.ErrValidation
	}
	item := &Item{
		ID:        uuid.New(),
		Name:      params.Name,
		StackType: params.StackType,
		Creator:   params.Creator,
		Active:    true,
		Notes:     params.Notes,
	}
	if params.Active != nil {
		item.Active = *params.Active
	}
	item.AssignIPAddress()
	if err := s.repo.Insert(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// List returns all items.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	return s.repo.List(ctx)
}

// Get returns a single item by identifier.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial update to an existing item.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if params.Name != nil {
		item.Name = *params.Name
	}
	if params.StackType != nil {
		if !params.StackType.Valid() {
			return nil, shared.ErrValidation
		}
		item.StackType = *params.StackType
	}
	if params.Active != nil {
		item.Active = *params.Active
	}
	if params.Notes != nil {
		item.Notes = *params.Notes
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an item and returns the removed record.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return item, nil
}
