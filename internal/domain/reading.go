package domain

// Reading is a single append-only telemetry sample reported by a device.
type Reading struct {
	ID          int64
	DeviceID    string
	Reading     float64
	ReadingTime int64
}
