package hostdb

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	value *string
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	switch d := dest[0].(type) {
	case *string:
		*d = *r.value
	case **string:
		*d = r.value
	}
	return nil
}

type fakeQuerier struct {
	rows    map[string]fakeRow // keyed by first argument
	lastSQL string
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.lastSQL = sql
	if row, ok := q.rows[args[0].(string)]; ok {
		return row
	}
	return fakeRow{err: pgx.ErrNoRows}
}

func ptr(s string) *string { return &s }

func TestRegistry_LookupIntegrationID(t *testing.T) {
	ctx := context.Background()
	q := &fakeQuerier{rows: map[string]fakeRow{
		"cobby":  {value: ptr("0190a1b2")},
		"broken": {err: errors.New("conn reset")},
	}}
	registry := NewRegistry(q)

	id, ok, err := registry.LookupIntegrationID(ctx, "cobby")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "0190a1b2", id)
	assert.Contains(t, q.lastSQL, "FROM integration WHERE label = $1")

	_, ok, err = registry.LookupIntegrationID(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = registry.LookupIntegrationID(ctx, "broken")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestAssociations_ParentID(t *testing.T) {
	ctx := context.Background()
	q := &fakeQuerier{rows: map[string]fakeRow{
		"price-1": {value: ptr("product-1")},
		"orphan":  {value: nil},
	}}
	assoc := NewAssociations(q)

	id, ok, err := assoc.ParentID(ctx, "product_price", "price-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "product-1", id)
	assert.Contains(t, q.lastSQL, "FROM product_price")

	_, ok, err = assoc.ParentID(ctx, "product_price", "orphan")
	require.NoError(t, err)
	assert.False(t, ok, "null product_id is not a parent")

	_, ok, err = assoc.ParentID(ctx, "product_category", "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = assoc.ParentID(ctx, "customer; DROP TABLE x", "id")
	assert.Error(t, err, "only whitelisted tables are queried")
}

func TestAssociations_MediaID(t *testing.T) {
	ctx := context.Background()
	q := &fakeQuerier{rows: map[string]fakeRow{"pm-1": {value: ptr("media-9")}}}
	assoc := NewAssociations(q)

	id, ok, err := assoc.MediaID(ctx, "pm-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "media-9", id)
	assert.Contains(t, q.lastSQL, "SELECT media_id::text FROM product_media")
}
