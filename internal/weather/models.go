package weather

import "time"

// Reading is one timestamped weather observation as stored in the
// time-series store. Readings are written once at ingest time and never
// mutated afterwards.
type Reading struct {
	Timestamp   time.Time `json:"timestamp"` // always UTC
	City        string    `json:"city"`
	Temperature float64   `json:"temperature"` // °C
	Humidity    float64   `json:"humidity"`    // %
	WindSpeed   float64   `json:"wind_speed"`
}

// Observation is the unstamped payload returned by a weather source.
// The ingestor attaches the timestamp and city label before the
// observation becomes a Reading.
type Observation struct {
	Temperature float64
	Humidity    float64
	WindSpeed   float64
}
