package repository

import "errors"

// ErrNotFound returned when a looked-up row does not exist
var ErrNotFound = errors.New("not found")

// Repository data access for the bridge
type Repository interface {
	ChangeLogRepository
	SettingsRepository
}
