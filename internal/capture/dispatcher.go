// Package capture turns host entity events into ledger records and webhook
// notifications.
package capture

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/georgeji/change-bridge/internal/metrics"
	"github.com/georgeji/change-bridge/internal/models"
	"github.com/georgeji/change-bridge/internal/notifier"
)

// Skip reasons
const (
	SkipUnknownEvent = "unknown_event"
	SkipDisabled     = "disabled"
)

// Ledger the queue operations capture needs
type Ledger interface {
	Enqueue(ctx context.Context, entityType, entityID string, op models.Operation, origin models.Origin) (uint64, error)
	ResolveIntegrationIdentity(ctx context.Context, label string) (string, bool)
}

// Notifier sends change notifications without reporting back
type Notifier interface {
	EntityPayload(eventName, entityType, entityID string, op models.Operation, queueID uint64) map[string]any
	FireAndForget(ctx context.Context, eventName string, payload map[string]any)
}

// Flags runtime capture switches
type Flags interface {
	Enabled(key string) bool
}

// ParentResolver looks association rows up in the host database
type ParentResolver interface {
	ParentID(ctx context.Context, table, childID string) (string, bool, error)
	MediaID(ctx context.Context, productMediaID string) (string, bool, error)
}

// Dispatcher routes host events through the capture rules
type Dispatcher struct {
	ledger   Ledger
	notifier Notifier
	flags    Flags
	resolver ParentResolver
	label    string
	logger   *zap.Logger
}

// NewDispatcher create a dispatcher. resolver may be nil, in which case only
// parent ids carried by the event itself are used.
func NewDispatcher(ledger Ledger, n Notifier, flags Flags, resolver ParentResolver, integrationLabel string, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		ledger:   ledger,
		notifier: n,
		flags:    flags,
		resolver: resolver,
		label:    integrationLabel,
		logger:   logger,
	}
}

// Handle captures one host event. It never fails and never panics; faults are
// logged and counted.
func (d *Dispatcher) Handle(ctx context.Context, ev Event) {
	kind, deleted, ok := Lookup(ev.Name)
	if !ok {
		metrics.CaptureSkipped.WithLabelValues(SkipUnknownEvent).Inc()
		d.logger.Debug("Ignoring unknown event", zap.String("event", ev.Name))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			d.fault(kind.EntityType, ev.Name, fmt.Errorf("panic: %v", r))
		}
	}()

	if !d.flags.Enabled(kind.FlagKey) {
		metrics.CaptureSkipped.WithLabelValues(SkipDisabled).Inc()
		d.logger.Debug("Capture disabled for entity",
			zap.String("entity_type", kind.EntityType),
			zap.String("flag", kind.FlagKey))
		return
	}

	origin := d.Classify(ctx, ev.Source)

	switch kind.Rule.Type {
	case RuleSimple:
		d.captureSimple(ctx, kind, ev, deleted, origin)
	case RuleParentCascade:
		d.captureParents(ctx, kind, ev, origin)
	case RuleMediaAssociation:
		d.captureParents(ctx, kind, ev, origin)
		d.captureMedia(ctx, kind, ev, origin)
	}
}

func (d *Dispatcher) captureSimple(ctx context.Context, kind Kind, ev Event, deleted bool, origin models.Origin) {
	for _, result := range ev.Results {
		id, ok := result.EntityID()
		if !ok {
			continue
		}
		op := models.OperationDelete
		if !deleted {
			op = models.ParseOperation(result.Operation)
		}
		d.record(ctx, kind.EntityType, id, op, origin)
	}
}

// captureParents records an update of every distinct parent touched by the event
func (d *Dispatcher) captureParents(ctx context.Context, kind Kind, ev Event, origin models.Origin) {
	seen := make(map[string]struct{})
	for _, result := range ev.Results {
		parentID, ok := result.field(kind.Rule.ParentField)
		if !ok {
			parentID, ok = d.lookupParent(ctx, kind, ev.Name, result)
		}
		if !ok {
			continue
		}
		if _, dup := seen[parentID]; dup {
			continue
		}
		seen[parentID] = struct{}{}
		d.record(ctx, kind.Rule.ParentType, parentID, models.OperationUpdate, origin)
	}
}

// captureMedia records the media items referenced by association rows. Removing
// a link leaves the media item in place, so the record is always an update.
func (d *Dispatcher) captureMedia(ctx context.Context, kind Kind, ev Event, origin models.Origin) {
	seen := make(map[string]struct{})
	for _, result := range ev.Results {
		mediaID, ok := result.field(fieldMediaID)
		if !ok {
			mediaID, ok = d.lookupMedia(ctx, kind, ev.Name, result)
		}
		if !ok {
			continue
		}
		if _, dup := seen[mediaID]; dup {
			continue
		}
		seen[mediaID] = struct{}{}
		d.record(ctx, models.EntityMedia, mediaID, models.OperationUpdate, origin)
	}
}

func (d *Dispatcher) lookupParent(ctx context.Context, kind Kind, eventName string, result WriteResult) (string, bool) {
	childID, ok := result.EntityID()
	if !ok || d.resolver == nil {
		return "", false
	}
	parentID, found, err := d.resolver.ParentID(ctx, kind.Rule.LookupTable, childID)
	if err != nil {
		d.fault(kind.EntityType, eventName, err)
		return "", false
	}
	return parentID, found
}

func (d *Dispatcher) lookupMedia(ctx context.Context, kind Kind, eventName string, result WriteResult) (string, bool) {
	childID, ok := result.EntityID()
	if !ok || d.resolver == nil {
		return "", false
	}
	mediaID, found, err := d.resolver.MediaID(ctx, childID)
	if err != nil {
		d.fault(kind.EntityType, eventName, err)
		return "", false
	}
	return mediaID, found
}

// record appends one ledger record and announces it unless the change came
// from the integration that consumes the ledger.
func (d *Dispatcher) record(ctx context.Context, entityType, entityID string, op models.Operation, origin models.Origin) {
	queueID, err := d.ledger.Enqueue(ctx, entityType, entityID, op, origin)
	if err != nil {
		return
	}
	if origin.Context == models.ContextCobby {
		return
	}

	eventName := notifier.EventName(entityType, op)
	d.notifier.FireAndForget(ctx, eventName, d.notifier.EntityPayload(eventName, entityType, entityID, op, queueID))
}

func (d *Dispatcher) fault(entityType, eventName string, err error) {
	metrics.CaptureFaults.WithLabelValues(entityType).Inc()
	d.logger.Error("Error capturing entity event",
		zap.String("entity_type", entityType),
		zap.String("event", eventName),
		zap.Error(err))
}
