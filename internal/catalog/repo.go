package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nirajd/backend-pasal/internal/pricing"
)

// ErrItemNotFound is returned when no catalog row matches the lookup.
var ErrItemNotFound = errors.New("catalog item not found")

// Repo persists catalog items in Postgres. Pricing categories are stored as
// a JSONB document alongside the row.
type Repo struct {
	Pool *pgxpool.Pool
}

const itemColumns = `id, slug, kind, title, description, base_price, categories, created_at, updated_at`

func scanItem(row pgx.Row) (Item, error) {
	var (
		item     Item
		catsJSON []byte
	)
	err := row.Scan(&item.ID, &item.Slug, &item.Kind, &item.Title, &item.Description,
		&item.BasePrice, &catsJSON, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return Item{}, err
	}
	if len(catsJSON) > 0 {
		if err := json.Unmarshal(catsJSON, &item.Categories); err != nil {
			return Item{}, fmt.Errorf("decode pricing categories: %w", err)
		}
	}
	if item.Categories == nil {
		item.Categories = []pricing.Category{}
	}
	return item, nil
}

// List returns a page of items matching the filters.
func (r *Repo) List(ctx context.Context, p ListParams) ([]Item, error) {
	offset := (p.Page - 1) * p.Limit
	rows, err := r.Pool.Query(ctx, `
		SELECT `+itemColumns+`
		FROM catalog_items
		WHERE ($1 = '' OR title ILIKE '%'||$1||'%' OR slug ILIKE '%'||$1||'%')
		  AND ($2 = '' OR kind = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`,
		p.Query, p.Kind, p.Limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list catalog items: %w", err)
	}
	defer rows.Close()

	items := make([]Item, 0, p.Limit)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Count returns the total rows matching the filters.
func (r *Repo) Count(ctx context.Context, p ListParams) (int64, error) {
	var total int64
	err := r.Pool.QueryRow(ctx, `
		SELECT count(*)
		FROM catalog_items
		WHERE ($1 = '' OR title ILIKE '%'||$1||'%' OR slug ILIKE '%'||$1||'%')
		  AND ($2 = '' OR kind = $2)`,
		p.Query, p.Kind).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count catalog items: %w", err)
	}
	return total, nil
}

// GetBySlug fetches one item by its slug.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (Item, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM catalog_items WHERE slug = $1`, slug)
	item, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, ErrItemNotFound
	}
	return item, err
}

// Insert stores a new item.
func (r *Repo) Insert(ctx context.Context, item Item) error {
	catsJSON, err := json.Marshal(item.Categories)
	if err != nil {
		return fmt.Errorf("encode pricing categories: %w", err)
	}
	_, err = r.Pool.Exec(ctx, `
		INSERT INTO catalog_items (id, slug, kind, title, description, base_price, categories, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`,
		item.ID, item.Slug, item.Kind, item.Title, item.Description, item.BasePrice, catsJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert catalog item: %w", err)
	}
	return nil
}

// Update rewrites an existing item identified by slug.
func (r *Repo) Update(ctx context.Context, item Item) error {
	catsJSON, err := json.Marshal(item.Categories)
	if err != nil {
		return fmt.Errorf("encode pricing categories: %w", err)
	}
	tag, err := r.Pool.Exec(ctx, `
		UPDATE catalog_items
		SET kind = $2, title = $3, description = $4, base_price = $5, categories = $6, updated_at = $7
		WHERE slug = $1`,
		item.Slug, item.Kind, item.Title, item.Description, item.BasePrice, catsJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update catalog item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

// Delete removes an item by slug.
func (r *Repo) Delete(ctx context.Context, slug string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM catalog_items WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("delete catalog item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}
