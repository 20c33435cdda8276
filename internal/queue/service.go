// Package queue owns every read and write of the change ledger.
package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/georgeji/change-bridge/internal/metrics"
	"github.com/georgeji/change-bridge/internal/models"
	"github.com/georgeji/change-bridge/internal/repository"
)

var (
	ErrEnqueueFailed = errors.New("enqueue failed")
	ErrResetFailed   = errors.New("reset failed")
)

const (
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

// ClampPageSize bounds a requested page size to [1, MaxPageSize]
func ClampPageSize(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

// IdentityResolver resolves a well-known integration label to its host id
type IdentityResolver interface {
	Resolve(ctx context.Context, label string) (string, bool)
}

// Service change ledger access
type Service struct {
	repo     repository.ChangeLogRepository
	identity IdentityResolver
	logger   *zap.Logger

	// appends hold the read side, Reset the write side
	resetMu sync.RWMutex
}

func NewService(repo repository.ChangeLogRepository, identity IdentityResolver, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		identity: identity,
		logger:   logger,
	}
}

// Enqueue appends one change record and returns its sequence.
// Storage faults are logged and reported as ErrEnqueueFailed.
func (s *Service) Enqueue(ctx context.Context, entityType, entityID string, op models.Operation, origin models.Origin) (uint64, error) {
	rec := &models.ChangeRecord{
		EntityType: entityType,
		EntityID:   entityID,
		Operation:  op,
		Context:    origin.Context,
	}
	if origin.Actor != "" {
		actor := origin.Actor
		rec.UserName = &actor
	}

	s.resetMu.RLock()
	seq, err := s.repo.AppendChange(ctx, rec)
	s.resetMu.RUnlock()

	if err != nil {
		metrics.LedgerEnqueueFailures.Inc()
		s.logger.Error("Failed to enqueue change",
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID),
			zap.String("operation", string(op)),
			zap.String("context", origin.Context),
			zap.Error(err))
		return 0, fmt.Errorf("%w: %v", ErrEnqueueFailed, err)
	}

	metrics.LedgerEnqueued.WithLabelValues(entityType).Inc()
	s.logger.Info("Change enqueued",
		zap.Uint64("queue_id", seq),
		zap.String("entity_type", entityType),
		zap.String("entity_id", entityID),
		zap.String("operation", string(op)),
		zap.String("context", origin.Context),
		zap.String("user_name", origin.Actor))
	return seq, nil
}

// ReadFrom returns up to pageSize records with sequence > minSequence in ascending
// order. A storage fault is logged and reads as an empty page.
func (s *Service) ReadFrom(ctx context.Context, minSequence uint64, pageSize int) []models.ChangeRecord {
	records, err := s.repo.GetChangesAfter(ctx, minSequence, ClampPageSize(pageSize))
	if err != nil {
		s.logger.Error("Failed to read changes",
			zap.Uint64("min_sequence", minSequence),
			zap.Int("page_size", pageSize),
			zap.Error(err))
		return []models.ChangeRecord{}
	}
	if records == nil {
		return []models.ChangeRecord{}
	}
	return records
}

// MaxSequence highest stored sequence; 0 when empty or on fault
func (s *Service) MaxSequence(ctx context.Context) uint64 {
	maxSeq, err := s.repo.GetMaxSequence(ctx)
	if err != nil {
		s.logger.Error("Failed to read max sequence", zap.Error(err))
		return 0
	}
	return maxSeq
}

// Reset deletes every record and restarts numbering. Resets never interleave
// with each other or with an in-flight Enqueue of this process.
func (s *Service) Reset(ctx context.Context) error {
	s.resetMu.Lock()
	defer s.resetMu.Unlock()

	if err := s.repo.ResetChanges(ctx); err != nil {
		metrics.LedgerResets.WithLabelValues(metrics.ResultFailure).Inc()
		s.logger.Error("Failed to reset change ledger", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrResetFailed, err)
	}

	metrics.LedgerResets.WithLabelValues(metrics.ResultSuccess).Inc()
	s.logger.Info("Change ledger reset")
	return nil
}

// ResolveIntegrationIdentity looks up the host id of the integration registered under label.
func (s *Service) ResolveIntegrationIdentity(ctx context.Context, label string) (string, bool) {
	if s.identity == nil {
		return "", false
	}
	return s.identity.Resolve(ctx, label)
}
