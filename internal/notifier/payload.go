package notifier

import (
	"regexp"
	"time"

	"github.com/georgeji/change-bridge/internal/models"
)

// EventLifecycle event name of lifecycle status notifications
const EventLifecycle = "plugin.lifecycle"

// Lifecycle statuses
const (
	StatusInstalled   = "installed"
	StatusActivated   = "activated"
	StatusDeactivated = "deactivated"
	StatusUninstalled = "uninstalled"
)

// DefaultShopHost shop identity used when the configured host is unusable
const DefaultShopHost = "localhost"

var hostPattern = regexp.MustCompile(`^[a-zA-Z0-9.:-]+$`)

// SafeHost returns host when it looks like a plain host[:port], else fallback.
func SafeHost(host, fallback string) string {
	if host == "" || len(host) > 253 || !hostPattern.MatchString(host) {
		return fallback
	}
	return host
}

// EventName webhook event name for a change of entityType
func EventName(entityType string, op models.Operation) string {
	if op == models.OperationDelete {
		return entityType + ".deleted"
	}
	return entityType + ".written"
}

// EntityPayload envelope of a per-record change notification
func (n *Notifier) EntityPayload(eventName, entityType, entityID string, op models.Operation, queueID uint64) map[string]any {
	return map[string]any{
		"event":         eventName,
		"shopUrl":       n.shopURL,
		"entityType":    entityType,
		"entityId":      entityID,
		"operation":     string(op),
		"queueId":       queueID,
		"timestamp":     n.clock.Now().Unix(),
		"pluginVersion": n.pluginVersion,
	}
}

// LifecyclePayload envelope of a lifecycle status notification
func (n *Notifier) LifecyclePayload(status string) map[string]any {
	return map[string]any{
		"status":        status,
		"shopUrl":       n.shopURL,
		"pluginVersion": n.pluginVersion,
		"timestamp":     n.clock.Now().UTC().Format(time.RFC3339),
	}
}
