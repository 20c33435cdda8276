package hostdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// association tables that carry a product_id column
var parentQueries = map[string]string{
	"product_price":    `SELECT product_id::text FROM product_price WHERE id = $1`,
	"product_category": `SELECT product_id::text FROM product_category WHERE id = $1`,
	"product_media":    `SELECT product_id::text FROM product_media WHERE id = $1`,
}

// Associations resolves association rows back to their owning entities
type Associations struct {
	db Querier
}

func NewAssociations(db Querier) *Associations {
	return &Associations{db: db}
}

// ParentID returns the product id owning the association row childID in table.
func (a *Associations) ParentID(ctx context.Context, table, childID string) (string, bool, error) {
	query, ok := parentQueries[table]
	if !ok {
		return "", false, fmt.Errorf("unsupported association table %q", table)
	}
	return a.lookup(ctx, query, childID)
}

// MediaID returns the media id referenced by a product_media row.
func (a *Associations) MediaID(ctx context.Context, productMediaID string) (string, bool, error) {
	return a.lookup(ctx, `SELECT media_id::text FROM product_media WHERE id = $1`, productMediaID)
}

func (a *Associations) lookup(ctx context.Context, query, id string) (string, bool, error) {
	var out *string
	err := a.db.QueryRow(ctx, query, id).Scan(&out)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("association lookup: %w", err)
	}
	if out == nil || *out == "" {
		return "", false, nil
	}
	return *out, true, nil
}
