package capture

import (
	"context"

	"go.uber.org/zap"

	"github.com/georgeji/change-bridge/internal/models"
)

// Classify derives the ledger origin of a host write from its call context.
func (d *Dispatcher) Classify(ctx context.Context, src Source) models.Origin {
	switch src.Type {
	case SourceAdminAPI:
		if src.IntegrationID != "" {
			if id, ok := d.ledger.ResolveIntegrationIdentity(ctx, d.label); ok && id == src.IntegrationID {
				return models.Origin{Context: models.ContextCobby, Actor: d.label}
			}
			return models.Origin{Context: src.IntegrationID, Actor: src.IntegrationID}
		}
		if src.UserID != "" {
			return models.Origin{Context: models.ContextAdminBackend, Actor: src.UserID}
		}
		return models.Origin{Context: models.ContextAdminBackend, Actor: models.ActorSystem}
	case SourceSalesChannelAPI:
		return models.Origin{Context: models.ContextAPI, Actor: models.ActorSystem}
	case SourceSystem:
		return models.Origin{Context: models.ContextSystem, Actor: models.ActorSystem}
	default:
		d.logger.Warn("Unknown context source type encountered",
			zap.String("source_type", src.Type))
		return models.SystemOrigin()
	}
}
