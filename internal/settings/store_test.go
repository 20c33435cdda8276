package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgeji/change-bridge/internal/config"
	"github.com/georgeji/change-bridge/internal/repository"
)

func newDBStore(t *testing.T) *DBStore {
	t.Helper()

	db, err := repository.Open(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "settings.db"),
	})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(context.Background(), db))
	t.Cleanup(func() { _ = repository.Close(db) })

	return NewDBStore(repository.NewGormRepo(db))
}

func exerciseStore(t *testing.T, store Store) {
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "bridge.config.enableTagEvents")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "bridge.config.enableTagEvents", "false"))
	require.NoError(t, store.Set(ctx, "bridge.config.integrationId.cobby", "int-1"))
	require.NoError(t, store.Set(ctx, "unrelated", "1"))

	value, ok, err := store.Get(ctx, "bridge.config.enableTagEvents")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "false", value)

	all, err := store.List(ctx, "bridge.config.")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"bridge.config.enableTagEvents":     "false",
		"bridge.config.integrationId.cobby": "int-1",
	}, all)

	require.NoError(t, store.Delete(ctx, "bridge.config.enableTagEvents"))
	_, ok, err = store.Get(ctx, "bridge.config.enableTagEvents")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDBStore(t *testing.T) {
	exerciseStore(t, newDBStore(t))
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("BRIDGE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("BRIDGE_TEST_REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	// unique prefix keeps parallel runs apart
	store := NewRedisStoreWithClient(client, "bridge-test:"+uuid.NewString()+":")
	exerciseStore(t, store)
}

func TestRedisStore_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	store := NewRedisStoreWithClient(client, "")
	ctx := context.Background()

	_, _, err := store.Get(ctx, "k")
	assert.Error(t, err)
	assert.Error(t, store.Set(ctx, "k", "v"))
	_, err = store.List(ctx, "")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	t.Run("database backend", func(t *testing.T) {
		cfg := &config.Config{Settings: config.SettingsConfig{Backend: "database"}}
		store, err := New(cfg, nil)
		require.NoError(t, err)
		assert.IsType(t, &DBStore{}, store)
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := &config.Config{Settings: config.SettingsConfig{Backend: "etcd"}}
		_, err := New(cfg, nil)
		assert.Error(t, err)
	})
}
