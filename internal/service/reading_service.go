package service

import (
	"context"
	"fmt"

	"kegwatch/internal/domain"
	"kegwatch/internal/repository"
)

// ReadingService records and queries device telemetry. Readings are
// append-only; the only removal is a bulk purge per device.
type ReadingService interface {
	Record(ctx context.Context, deviceID string, reading float64, readingTime int64) error
	List(ctx context.Context, deviceID string) ([]domain.Reading, error)
	Purge(ctx context.Context, deviceID string) error
}

type readingService struct {
	readings repository.ReadingRepository
}

func NewReadingService(readings repository.ReadingRepository) ReadingService {
	return &readingService{readings: readings}
}

func (s *readingService) Record(ctx context.Context, deviceID string, reading float64, readingTime int64) error {
	r := &domain.Reading{
		DeviceID:    deviceID,
		Reading:     reading,
		ReadingTime: readingTime,
	}
	if err := s.readings.Create(ctx, r); err != nil {
		return fmt.Errorf("record reading: %w", err)
	}
	return nil
}

func (s *readingService) List(ctx context.Context, deviceID string) ([]domain.Reading, error) {
	readings, err := s.readings.ListByDevice(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}
	return readings, nil
}

func (s *readingService) Purge(ctx context.Context, deviceID string) error {
	if err := s.readings.DeleteByDevice(ctx, deviceID); err != nil {
		return fmt.Errorf("purge readings: %w", err)
	}
	return nil
}
