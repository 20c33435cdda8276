package hostdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Registry host integration registry
type Registry struct {
	db Querier
}

func NewRegistry(db Querier) *Registry {
	return &Registry{db: db}
}

// LookupIntegrationID returns the id of the integration registered under label.
func (r *Registry) LookupIntegrationID(ctx context.Context, label string) (string, bool, error) {
	var id string
	err := r.db.QueryRow(ctx, `SELECT id::text FROM integration WHERE label = $1 LIMIT 1`, label).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup integration %s: %w", label, err)
	}
	return id, true, nil
}
