package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"kegwatch/internal/domain"
	"kegwatch/internal/repository"
)

type readingDoc struct {
	DeviceID    string  `bson:"device_id"`
	Reading     float64 `bson:"reading"`
	ReadingTime int64   `bson:"reading_time"`
}

type ReadingRepository struct {
	readings *mongo.Collection
}

func NewReadingRepository(db *mongo.Database) repository.ReadingRepository {
	return &ReadingRepository{readings: db.Collection("status")}
}

func (r *ReadingRepository) Init(ctx context.Context) error {
	_, err := r.readings.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "device_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create device index: %w", err)
	}
	return nil
}

func (r *ReadingRepository) Create(ctx context.Context, reading *domain.Reading) error {
	_, err := r.readings.InsertOne(ctx, readingDoc{
		DeviceID:    reading.DeviceID,
		Reading:     reading.Reading,
		ReadingTime: reading.ReadingTime,
	})
	if err != nil {
		return fmt.Errorf("insert reading: %w", err)
	}
	return nil
}

func (r *ReadingRepository) ListByDevice(ctx context.Context, deviceID string) ([]domain.Reading, error) {
	cursor, err := r.readings.Find(ctx, bson.M{"device_id": deviceID})
	if err != nil {
		return nil, fmt.Errorf("query readings: %w", err)
	}
	defer cursor.Close(ctx)

	var readings []domain.Reading
	for cursor.Next(ctx) {
		var doc readingDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode reading: %w", err)
		}
		readings = append(readings, domain.Reading{
			DeviceID:    doc.DeviceID,
			Reading:     doc.Reading,
			ReadingTime: doc.ReadingTime,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate readings: %w", err)
	}
	return readings, nil
}

func (r *ReadingRepository) DeleteByDevice(ctx context.Context, deviceID string) error {
	if _, err := r.readings.DeleteMany(ctx, bson.M{"device_id": deviceID}); err != nil {
		return fmt.Errorf("delete readings: %w", err)
	}
	return nil
}
