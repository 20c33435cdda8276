package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/georgeji/change-bridge/internal/models"
)

const (
	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite"

	// ledgerLockKey advisory lock id guarding sequence assignment on postgres
	ledgerLockKey int64 = 0x6c6564676572
)

// GormRepo ledger and settings storage on top of gorm
type GormRepo struct {
	db      *gorm.DB
	dialect string
}

// NewGormRepo wraps an opened gorm DB
func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db, dialect: db.Dialector.Name()}
}

// ---------------------------------------------------------------------------
// change ledger
// ---------------------------------------------------------------------------

const insertChangeSQL = `INSERT INTO change_ledger (entity_type, entity_id, operation, user_name, context)
VALUES (?, ?, ?, ?, ?) RETURNING queue_id`

// AppendChange inserts one ledger row. On postgres the insert holds the ledger
// advisory lock until commit, so sequences become visible in assignment order.
func (r *GormRepo) AppendChange(ctx context.Context, rec *models.ChangeRecord) (uint64, error) {
	contextLabel := rec.Context
	if contextLabel == "" {
		contextLabel = models.ContextBackend
	}

	var seq uint64
	err := r.withTransaction(ctx, func(tx *gorm.DB) error {
		if err := r.lockLedger(tx); err != nil {
			return err
		}

		row := tx.Raw(insertChangeSQL,
			rec.EntityType, rec.EntityID, string(rec.Operation), rec.UserName, contextLabel).Row()
		if err := row.Scan(&seq); err != nil {
			return fmt.Errorf("insert change: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	rec.Sequence = seq
	rec.Context = contextLabel
	return seq, nil
}

func (r *GormRepo) GetChangesAfter(ctx context.Context, afterSeq uint64, limit int) ([]models.ChangeRecord, error) {
	records := make([]models.ChangeRecord, 0)
	err := r.db.WithContext(ctx).
		Where("queue_id > ?", afterSeq).
		Order("queue_id ASC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list changes: %w", err)
	}
	return records, nil
}

func (r *GormRepo) GetMaxSequence(ctx context.Context) (uint64, error) {
	var maxSeq uint64
	row := r.db.WithContext(ctx).Raw("SELECT COALESCE(MAX(queue_id), 0) FROM change_ledger").Row()
	if err := row.Scan(&maxSeq); err != nil {
		return 0, fmt.Errorf("max sequence: %w", err)
	}
	return maxSeq, nil
}

// ResetChanges truncates the ledger and restarts numbering in one transaction.
func (r *GormRepo) ResetChanges(ctx context.Context) error {
	return r.withTransaction(ctx, func(tx *gorm.DB) error {
		switch r.dialect {
		case dialectPostgres:
			if err := r.lockLedger(tx); err != nil {
				return err
			}
			if err := tx.Exec("TRUNCATE TABLE change_ledger RESTART IDENTITY").Error; err != nil {
				return fmt.Errorf("truncate ledger: %w", err)
			}
		default:
			if err := tx.Exec("DELETE FROM change_ledger").Error; err != nil {
				return fmt.Errorf("delete ledger rows: %w", err)
			}
			if err := tx.Exec("DELETE FROM sqlite_sequence WHERE name = ?", "change_ledger").Error; err != nil {
				return fmt.Errorf("reset ledger sequence: %w", err)
			}
		}
		return nil
	})
}

func (r *GormRepo) lockLedger(tx *gorm.DB) error {
	if r.dialect != dialectPostgres {
		return nil
	}
	if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", ledgerLockKey).Error; err != nil {
		return fmt.Errorf("lock ledger: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// settings
// ---------------------------------------------------------------------------

func (r *GormRepo) GetSetting(ctx context.Context, key string) (*models.Setting, error) {
	var s models.Setting
	err := r.db.WithContext(ctx).Where("config_key = ?", key).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get setting %s: %w", key, err)
	}
	return &s, nil
}

func (r *GormRepo) PutSetting(ctx context.Context, key, value string) error {
	s := &models.Setting{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "config_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"config_value", "updated_at"}),
	}).Create(s).Error
	if err != nil {
		return fmt.Errorf("put setting %s: %w", key, err)
	}
	return nil
}

func (r *GormRepo) DeleteSetting(ctx context.Context, key string) error {
	if err := r.db.WithContext(ctx).Where("config_key = ?", key).Delete(&models.Setting{}).Error; err != nil {
		return fmt.Errorf("delete setting %s: %w", key, err)
	}
	return nil
}

func (r *GormRepo) ListSettings(ctx context.Context, params ListSettingsParams) ([]*models.Setting, error) {
	query := r.db.WithContext(ctx).Model(&models.Setting{})
	if params.Prefix != "" {
		query = query.Where("config_key LIKE ?", params.Prefix+"%")
	}

	var settings []*models.Setting
	if err := query.Order("config_key ASC").Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return settings, nil
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func (r *GormRepo) withTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
