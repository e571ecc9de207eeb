package repository

import (
	"context"

	"kegwatch/internal/domain"
)

// ReadingRepository defines persistence operations for device readings.
// Readings are append-only; the only removal is a bulk purge per device.
type ReadingRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, reading *domain.Reading) error
	ListByDevice(ctx context.Context, deviceID string) ([]domain.Reading, error)
	DeleteByDevice(ctx context.Context, deviceID string) error
}
