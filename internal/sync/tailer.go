// Package sync follows the change ledger and fans new records out to
// in-process listeners such as the change feed.
package sync

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	"go.uber.org/zap"

	"github.com/georgeji/change-bridge/internal/models"
	"github.com/georgeji/change-bridge/internal/repository"
)

const tailPageSize = 1000

// ChangeType kind of ledger change seen by the tailer
type ChangeType int

const (
	// ChangeRecorded a new record was appended
	ChangeRecorded ChangeType = iota
	// LedgerReset the ledger was emptied and numbering restarted
	LedgerReset
)

func (t ChangeType) String() string {
	switch t {
	case ChangeRecorded:
		return "change"
	case LedgerReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Change one event published by the tailer
type Change struct {
	Type   ChangeType
	Record *models.ChangeRecord // nil for LedgerReset
}

// ChangeHandler change callback; called from the tailer goroutine
type ChangeHandler func(change *Change)

// LedgerTailer polls the ledger for records past its cursor
type LedgerTailer struct {
	repo     repository.ChangeLogRepository
	logger   *zap.Logger
	interval time.Duration
	pageSize int

	mu       gosync.RWMutex
	handlers []ChangeHandler
	lastSeq  uint64

	stopOnce  gosync.Once
	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func NewLedgerTailer(repo repository.ChangeLogRepository, interval time.Duration, logger *zap.Logger) *LedgerTailer {
	if interval <= 0 {
		interval = time.Second
	}
	return &LedgerTailer{
		repo:      repo,
		logger:    logger,
		interval:  interval,
		pageSize:  tailPageSize,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// RegisterChangeHandler adds a listener. Register before Start.
func (t *LedgerTailer) RegisterChangeHandler(handler ChangeHandler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handlers = append(t.handlers, handler)
}

// Start polls until ctx is done or Stop is called. Only records appended after
// Start are published.
func (t *LedgerTailer) Start(ctx context.Context) error {
	defer close(t.stoppedCh)

	if err := t.initLastSeq(ctx); err != nil {
		return fmt.Errorf("init last sequence: %w", err)
	}

	t.logger.Info("Ledger tailer started",
		zap.Uint64("last_seq", t.LastSequence()),
		zap.Duration("interval", t.interval))

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("Ledger tailer stopped by context")
			return nil
		case <-t.stopCh:
			t.logger.Info("Ledger tailer stopped")
			return nil
		case <-ticker.C:
			if err := t.Poll(ctx); err != nil {
				t.logger.Error("Poll ledger failed", zap.Error(err))
			}
		}
	}
}

// Stop ends polling and waits for Start to return
func (t *LedgerTailer) Stop() {
	t.stopOnce.Do(func() { close(t.stopCh) })
	<-t.stoppedCh
}

func (t *LedgerTailer) initLastSeq(ctx context.Context) error {
	maxSeq, err := t.repo.GetMaxSequence(ctx)
	if err != nil {
		return err
	}
	t.setLastSeq(maxSeq)
	return nil
}

// Poll publishes everything past the cursor. A maximum below the cursor means
// the ledger was reset; listeners get a LedgerReset and the cursor rewinds to 0.
func (t *LedgerTailer) Poll(ctx context.Context) error {
	maxSeq, err := t.repo.GetMaxSequence(ctx)
	if err != nil {
		return fmt.Errorf("read max sequence: %w", err)
	}

	lastSeq := t.LastSequence()
	if maxSeq < lastSeq {
		t.logger.Info("Ledger reset detected",
			zap.Uint64("last_seq", lastSeq),
			zap.Uint64("max_seq", maxSeq))
		lastSeq = 0
		t.setLastSeq(0)
		t.publish(&Change{Type: LedgerReset})
	}

	for {
		records, err := t.repo.GetChangesAfter(ctx, lastSeq, t.pageSize)
		if err != nil {
			return fmt.Errorf("list changes: %w", err)
		}

		for i := range records {
			rec := records[i]
			t.publish(&Change{Type: ChangeRecorded, Record: &rec})
			lastSeq = rec.Sequence
		}
		t.setLastSeq(lastSeq)

		if len(records) > 0 {
			t.logger.Debug("Polled ledger",
				zap.Int("count", len(records)),
				zap.Uint64("last_seq", lastSeq))
		}
		if len(records) < t.pageSize {
			return nil
		}
	}
}

func (t *LedgerTailer) publish(change *Change) {
	t.mu.RLock()
	handlers := t.handlers
	t.mu.RUnlock()

	for _, handler := range handlers {
		handler(change)
	}
}

func (t *LedgerTailer) setLastSeq(seq uint64) {
	t.mu.Lock()
	t.lastSeq = seq
	t.mu.Unlock()
}

// LastSequence current cursor, for health reporting
func (t *LedgerTailer) LastSequence() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastSeq
}
