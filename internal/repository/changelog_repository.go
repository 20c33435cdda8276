package repository

import (
	"context"

	"github.com/georgeji/change-bridge/internal/models"
)

// ChangeLogRepository handles change ledger operations
type ChangeLogRepository interface {
	// AppendChange stores one record and returns the sequence assigned to it.
	AppendChange(ctx context.Context, rec *models.ChangeRecord) (uint64, error)
	// GetChangesAfter returns up to limit records with sequence > afterSeq, ascending.
	GetChangesAfter(ctx context.Context, afterSeq uint64, limit int) ([]models.ChangeRecord, error)
	// GetMaxSequence returns the highest stored sequence, 0 when empty.
	GetMaxSequence(ctx context.Context) (uint64, error)
	// ResetChanges removes every record and restarts numbering at 1.
	ResetChanges(ctx context.Context) error
}
