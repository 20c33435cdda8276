package repository

import (
	"context"

	"github.com/georgeji/change-bridge/internal/models"
)

// SettingsRepository handles persisted key/value settings
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (*models.Setting, error)
	PutSetting(ctx context.Context, key, value string) error
	DeleteSetting(ctx context.Context, key string) error
	ListSettings(ctx context.Context, params ListSettingsParams) ([]*models.Setting, error)
}

// ListSettingsParams query parameters for listing settings
type ListSettingsParams struct {
	Prefix string
}
