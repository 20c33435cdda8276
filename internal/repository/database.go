package repository

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/georgeji/change-bridge/internal/config"
	"github.com/georgeji/change-bridge/internal/models"
)

// Open connects to the ledger database for the configured driver
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case dialectPostgres:
		dialector = postgres.Open(cfg.DSN())
	case dialectSQLite:
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.Driver == dialectSQLite {
		// sqlite serializes writers; one connection also keeps :memory: databases shared
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Close closes the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

var ledgerDDL = map[string]string{
	dialectPostgres: `CREATE TABLE IF NOT EXISTS change_ledger (
	queue_id BIGSERIAL PRIMARY KEY,
	entity_type VARCHAR(30) NOT NULL,
	entity_id VARCHAR(64) NOT NULL,
	operation VARCHAR(10) NOT NULL,
	user_name VARCHAR(255) NULL,
	context VARCHAR(64) NOT NULL DEFAULT 'backend',
	created_at TIMESTAMP(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3)
)`,
	dialectSQLite: `CREATE TABLE IF NOT EXISTS change_ledger (
	queue_id INTEGER PRIMARY KEY AUTOINCREMENT,
	entity_type VARCHAR(30) NOT NULL,
	entity_id VARCHAR(64) NOT NULL,
	operation VARCHAR(10) NOT NULL,
	user_name VARCHAR(255) NULL,
	context VARCHAR(64) NOT NULL DEFAULT 'backend',
	created_at DATETIME NOT NULL DEFAULT (strftime('%Y-%m-%d %H:%M:%f', 'now'))
)`,
}

// Migrate creates the ledger and settings tables when missing
func Migrate(ctx context.Context, db *gorm.DB) error {
	ddl, ok := ledgerDDL[db.Dialector.Name()]
	if !ok {
		return fmt.Errorf("unsupported dialect %q", db.Dialector.Name())
	}

	if err := db.WithContext(ctx).Exec(ddl).Error; err != nil {
		return fmt.Errorf("create change_ledger: %w", err)
	}
	if err := db.WithContext(ctx).Exec(
		"CREATE INDEX IF NOT EXISTS idx_change_ledger_entity ON change_ledger (entity_type, entity_id)",
	).Error; err != nil {
		return fmt.Errorf("create change_ledger index: %w", err)
	}
	if err := db.WithContext(ctx).AutoMigrate(&models.Setting{}); err != nil {
		return fmt.Errorf("migrate settings: %w", err)
	}
	return nil
}

// Drop removes the bridge tables
func Drop(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Migrator().DropTable(&models.ChangeRecord{}, &models.Setting{})
}
