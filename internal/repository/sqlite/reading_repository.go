package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"kegwatch/internal/domain"
	"kegwatch/internal/repository"
)

const createReadingsTable = `
CREATE TABLE IF NOT EXISTS readings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	device_id TEXT NOT NULL,
	reading REAL NOT NULL,
	reading_time INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_readings_device ON readings (device_id);
`

type ReadingRepository struct {
	db *sql.DB
}

func NewReadingRepository(db *sql.DB) repository.ReadingRepository {
	return &ReadingRepository{db: db}
}

func (r *ReadingRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createReadingsTable); err != nil {
		return fmt.Errorf("create readings table: %w", err)
	}
	return nil
}

func (r *ReadingRepository) Create(ctx context.Context, reading *domain.Reading) error {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO readings (device_id, reading, reading_time)
VALUES (?, ?, ?)`,
		reading.DeviceID,
		reading.Reading,
		reading.ReadingTime,
	)
	if err != nil {
		return fmt.Errorf("insert reading: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading last insert id: %w", err)
	}
	reading.ID = id
	return nil
}

func (r *ReadingRepository) ListByDevice(ctx context.Context, deviceID string) ([]domain.Reading, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, device_id, reading, reading_time
FROM readings
WHERE device_id = ?
ORDER BY id`,
		deviceID,
	)
	if err != nil {
		return nil, fmt.Errorf("query readings: %w", err)
	}
	defer rows.Close()

	var readings []domain.Reading
	for rows.Next() {
		var reading domain.Reading
		if err := rows.Scan(
			&reading.ID,
			&reading.DeviceID,
			&reading.Reading,
			&reading.ReadingTime,
		); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		readings = append(readings, reading)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate readings: %w", err)
	}
	return readings, nil
}

func (r *ReadingRepository) DeleteByDevice(ctx context.Context, deviceID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM readings WHERE device_id = ?`, deviceID); err != nil {
		return fmt.Errorf("delete readings: %w", err)
	}
	return nil
}
