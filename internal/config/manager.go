package config

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SettingsSource persisted settings the flag manager reads and seeds
type SettingsSource interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	List(ctx context.Context, prefix string) (map[string]string, error)
}

// FlagManager runtime capture flags: static defaults from the config file
// overlaid by values in the settings store, refreshed periodically
type FlagManager struct {
	logger *zap.Logger
	source SettingsSource

	mu              sync.RWMutex
	defaults        map[string]bool
	overrides       map[string]bool
	debugDefault    bool
	lastRefresh     time.Time
	pollingInterval time.Duration
	stopChan        chan struct{}
	running         bool
}

// NewFlagManager create a flag manager; source may be nil for static flags only
func NewFlagManager(cfg *Config, source SettingsSource, logger *zap.Logger) *FlagManager {
	defaults := make(map[string]bool, len(cfg.Capture.Flags))
	for k, v := range cfg.Capture.Flags {
		defaults[strings.ToLower(k)] = v
	}

	interval := cfg.Capture.RefreshInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	return &FlagManager{
		logger:          logger,
		source:          source,
		defaults:        defaults,
		overrides:       make(map[string]bool),
		debugDefault:    cfg.Notifier.DebugLogging,
		pollingInterval: interval,
		stopChan:        make(chan struct{}),
	}
}

// Start loads the stored flags and keeps them fresh until Stop or ctx ends
func (fm *FlagManager) Start(ctx context.Context) error {
	fm.mu.Lock()
	if fm.running {
		fm.mu.Unlock()
		return nil
	}
	fm.running = true
	fm.mu.Unlock()

	if err := fm.Refresh(ctx); err != nil {
		fm.logger.Warn("Failed to load stored flags, using defaults", zap.Error(err))
	}

	go fm.pollSettings(ctx)

	fm.logger.Info("Flag manager started",
		zap.Duration("polling_interval", fm.pollingInterval))

	return nil
}

// Stop flag polling
func (fm *FlagManager) Stop() {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	if !fm.running {
		return
	}

	close(fm.stopChan)
	fm.running = false
	fm.logger.Info("Flag manager stopped")
}

func (fm *FlagManager) pollSettings(ctx context.Context) {
	ticker := time.NewTicker(fm.pollingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-fm.stopChan:
			return
		case <-ticker.C:
			if err := fm.Refresh(ctx); err != nil {
				fm.logger.Error("Failed to refresh flags", zap.Error(err))
			}
		}
	}
}

// Refresh re-reads every stored flag. Values that are not booleans are ignored.
func (fm *FlagManager) Refresh(ctx context.Context) error {
	if fm.source == nil {
		return nil
	}

	stored, err := fm.source.List(ctx, FlagPrefix)
	if err != nil {
		return err
	}

	overrides := make(map[string]bool, len(stored))
	for key, raw := range stored {
		name := strings.TrimPrefix(key, FlagPrefix)
		if !strings.HasPrefix(name, "enable") {
			continue
		}
		value, err := strconv.ParseBool(raw)
		if err != nil {
			fm.logger.Warn("Ignoring non-boolean flag value",
				zap.String("key", key),
				zap.String("value", raw))
			continue
		}
		overrides[strings.ToLower(name)] = value
	}

	fm.mu.Lock()
	fm.overrides = overrides
	fm.lastRefresh = time.Now()
	fm.mu.Unlock()

	return nil
}

// Enabled reports whether flag key is on. A flag set nowhere counts as enabled.
func (fm *FlagManager) Enabled(key string) bool {
	k := strings.ToLower(key)

	fm.mu.RLock()
	defer fm.mu.RUnlock()

	if v, ok := fm.overrides[k]; ok {
		return v
	}
	if v, ok := fm.defaults[k]; ok {
		return v
	}
	return true
}

// DebugLogging reports whether payloads may be written to logs
func (fm *FlagManager) DebugLogging() bool {
	fm.mu.RLock()
	defer fm.mu.RUnlock()

	if v, ok := fm.overrides[strings.ToLower(FlagDebugLogging)]; ok {
		return v
	}
	return fm.debugDefault
}

// SeedDefaults stores the default value of every flag that has no stored value yet
func (fm *FlagManager) SeedDefaults(ctx context.Context) error {
	if fm.source == nil {
		return nil
	}

	seed := make(map[string]bool, len(CaptureFlags)+1)
	for _, flag := range CaptureFlags {
		v, ok := fm.defaults[strings.ToLower(flag)]
		seed[flag] = !ok || v
	}
	seed[FlagDebugLogging] = fm.debugDefault

	for flag, value := range seed {
		key := FlagPrefix + flag
		_, exists, err := fm.source.Get(ctx, key)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := fm.source.Set(ctx, key, strconv.FormatBool(value)); err != nil {
			return err
		}
	}
	return nil
}

// Get manager status information
func (fm *FlagManager) GetStatus() map[string]interface{} {
	fm.mu.RLock()
	defer fm.mu.RUnlock()

	flags := make(map[string]bool, len(CaptureFlags))
	for _, flag := range CaptureFlags {
		k := strings.ToLower(flag)
		v, ok := fm.overrides[k]
		if !ok {
			v, ok = fm.defaults[k]
		}
		flags[flag] = !ok || v
	}

	return map[string]interface{}{
		"running":          fm.running,
		"last_refresh":     fm.lastRefresh,
		"polling_interval": fm.pollingInterval.String(),
		"flags":            flags,
	}
}
