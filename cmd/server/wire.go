package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/juju/clock"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/georgeji/change-bridge/internal/capture"
	"github.com/georgeji/change-bridge/internal/config"
	"github.com/georgeji/change-bridge/internal/hostdb"
	"github.com/georgeji/change-bridge/internal/identity"
	"github.com/georgeji/change-bridge/internal/notifier"
	"github.com/georgeji/change-bridge/internal/queue"
	"github.com/georgeji/change-bridge/internal/repository"
	"github.com/georgeji/change-bridge/internal/settings"
)

// app the components every command shares
type app struct {
	cfg    *config.Config
	logger *zap.Logger

	db       *gorm.DB
	repo     *repository.GormRepo
	store    settings.Store
	flags    *config.FlagManager
	hostPool *pgxpool.Pool
	resolver capture.ParentResolver
	queue    *queue.Service
	notifier *notifier.Notifier
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	db, err := repository.Open(&cfg.Database)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, db: db, repo: repository.NewGormRepo(db)}

	a.store, err = settings.New(cfg, a.repo)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("settings store: %w", err)
	}
	a.flags = config.NewFlagManager(cfg, a.store, logger)

	var registry identity.Registry
	if cfg.HostDB.URL != "" {
		a.hostPool, err = hostdb.NewPool(ctx, cfg.HostDB.URL, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		registry = hostdb.NewRegistry(a.hostPool)
		a.resolver = hostdb.NewAssociations(a.hostPool)
	} else {
		logger.Info("No host database configured, association lookups disabled")
	}

	ids := identity.NewCache(a.store, registry, clock.WallClock, cfg.Identity.NegativeTTL, logger)
	a.queue = queue.NewService(a.repo, ids, logger)
	a.notifier = notifier.New(notifier.Options{
		BaseURL:         cfg.Notifier.BaseURL,
		Timeout:         cfg.Notifier.Timeout,
		ConnectTimeout:  cfg.Notifier.ConnectTimeout,
		Secret:          cfg.Notifier.Secret,
		ShopURL:         cfg.Shop.URL,
		SoftwareVersion: cfg.Shop.SoftwareVersion,
		PluginVersion:   cfg.App.Version,
	}, a.flags, clock.WallClock, logger)

	return a, nil
}

func (a *app) Close() {
	if a.hostPool != nil {
		a.hostPool.Close()
	}
	if closer, ok := a.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			a.logger.Warn("Close settings store failed", zap.Error(err))
		}
	}
	if err := repository.Close(a.db); err != nil {
		a.logger.Warn("Close database failed", zap.Error(err))
	}
}
