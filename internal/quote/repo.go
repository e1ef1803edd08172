package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo persists quotations in Postgres. Selection lines are stored as JSONB.
type Repo struct {
	Pool *pgxpool.Pool
}

// Insert stores a computed quotation.
func (r *Repo) Insert(ctx context.Context, q Quotation) error {
	linesJSON, err := json.Marshal(q.Lines)
	if err != nil {
		return fmt.Errorf("encode quotation lines: %w", err)
	}
	_, err = r.Pool.Exec(ctx, `
		INSERT INTO quotations (id, item_id, item_slug, item_title, quantity, currency, lines, total_usd, display_total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		q.ID, q.ItemID, q.ItemSlug, q.ItemTitle, q.Quantity, q.Currency, linesJSON, q.TotalUSD, q.DisplayTotal, q.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert quotation: %w", err)
	}
	return nil
}

// GetByID fetches a stored quotation.
func (r *Repo) GetByID(ctx context.Context, id string) (Quotation, error) {
	var (
		q         Quotation
		linesJSON []byte
	)
	err := r.Pool.QueryRow(ctx, `
		SELECT id, item_id, item_slug, item_title, quantity, currency, lines, total_usd, display_total, created_at
		FROM quotations WHERE id = $1`, id).
		Scan(&q.ID, &q.ItemID, &q.ItemSlug, &q.ItemTitle, &q.Quantity, &q.Currency, &linesJSON, &q.TotalUSD, &q.DisplayTotal, &q.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Quotation{}, ErrQuoteNotFound
	}
	if err != nil {
		return Quotation{}, fmt.Errorf("select quotation: %w", err)
	}
	if len(linesJSON) > 0 {
		if err := json.Unmarshal(linesJSON, &q.Lines); err != nil {
			return Quotation{}, fmt.Errorf("decode quotation lines: %w", err)
		}
	}
	return q, nil
}
