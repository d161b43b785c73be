package items

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/doylio/eros-server/internal/shared"
)

// Repository provides PostgreSQL backed persistence for items.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const itemColumns = `id, name, stack_type, ip_address, creator, active, notes`

func scanItem(row pgx.Row) (*Item, error) {
	var item Item
	err := row.Scan(&item.ID, &item.Name, &item.StackType, &item.IPAddress, &item.Creator, &item.Active, &item.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByID fetches one item.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*Item, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
	return scanItem(row)
}

// List returns all items ordered by name.
func (r *Repository) List(ctx context.Context) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Insert persists a new item.
func (r *Repository) Insert(ctx context.Context, item *Item) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO items (id, name, stack_type, ip_address, creator, active, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.ID, item.Name, item.StackType, item.IPAddress, item.Creator, item.Active, item.Notes)
	return err
}

// Update rewrites the mutable fields of an item.
func (r *Repository) Update(ctx context.Context, item *Item) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE items SET name = $2, stack_type = $3, active = $4, notes = $5 WHERE id = $1`,
		item.ID, item.Name, item.StackType, item.Active, item.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes an item.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ RepositoryPort = (*Repository)(nil)
