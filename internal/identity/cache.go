package identity

import (
	"context"
	"sync"
	"time"

	"github.com/juju/clock"
	"go.uber.org/zap"

	"github.com/georgeji/change-bridge/internal/config"
	"github.com/georgeji/change-bridge/internal/settings"
)

// Registry looks up integrations registered on the host platform
type Registry interface {
	LookupIntegrationID(ctx context.Context, label string) (string, bool, error)
}

// KeyFor settings key holding the cached id for label
func KeyFor(label string) string {
	return config.FlagPrefix + "integrationId." + label
}

// Cache resolves an integration label to its host id. Hits are persisted in the
// settings store and stay valid until edited there; misses are remembered for
// a short TTL so the registry is not queried on every change.
type Cache struct {
	store       settings.Store
	registry    Registry
	clock       clock.Clock
	negativeTTL time.Duration
	logger      *zap.Logger

	mu     sync.Mutex
	misses map[string]time.Time // label -> retry after
	warned map[string]bool      // absence already reported at warn level
}

// NewCache creates the identity cache. registry may be nil when no host database is configured.
func NewCache(store settings.Store, registry Registry, clk clock.Clock, negativeTTL time.Duration, logger *zap.Logger) *Cache {
	if clk == nil {
		clk = clock.WallClock
	}
	return &Cache{
		store:       store,
		registry:    registry,
		clock:       clk,
		negativeTTL: negativeTTL,
		logger:      logger,
		misses:      make(map[string]time.Time),
		warned:      make(map[string]bool),
	}
}

// Resolve returns the integration id for label, or false when it is not known.
func (c *Cache) Resolve(ctx context.Context, label string) (string, bool) {
	key := KeyFor(label)

	value, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("Failed to read cached integration id",
			zap.String("label", label),
			zap.Error(err))
	} else if ok && value != "" {
		return value, true
	}

	c.mu.Lock()
	retryAfter, negative := c.misses[label]
	c.mu.Unlock()
	if negative && c.clock.Now().Before(retryAfter) {
		return "", false
	}

	if c.registry == nil {
		c.recordMiss(label, nil)
		return "", false
	}

	id, found, err := c.registry.LookupIntegrationID(ctx, label)
	if err != nil || !found || id == "" {
		c.recordMiss(label, err)
		return "", false
	}

	if err := c.store.Set(ctx, key, id); err != nil {
		c.logger.Warn("Failed to cache integration id",
			zap.String("label", label),
			zap.Error(err))
	}

	c.mu.Lock()
	delete(c.misses, label)
	delete(c.warned, label)
	c.mu.Unlock()

	c.logger.Info("Resolved integration id",
		zap.String("label", label),
		zap.String("integration_id", id))
	return id, true
}

func (c *Cache) recordMiss(label string, lookupErr error) {
	c.mu.Lock()
	c.misses[label] = c.clock.Now().Add(c.negativeTTL)
	firstInStreak := !c.warned[label]
	c.warned[label] = true
	c.mu.Unlock()

	fields := []zap.Field{zap.String("label", label)}
	if lookupErr != nil {
		fields = append(fields, zap.Error(lookupErr))
	}

	if firstInStreak {
		c.logger.Warn("Integration not found", fields...)
		return
	}
	c.logger.Debug("Integration still not found", fields...)
}
