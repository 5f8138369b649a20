package store

import (
	"context"
	"fmt"
	"log/slog"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/minhvu-dn/weather-predict/internal/weather"
)

// InfluxStore persists readings in an InfluxDB v2 bucket, one point per
// reading with the city as a tag. Appends use the blocking write API so
// a single-shot ingest job observes failure in its exit status.
type InfluxStore struct {
	client      influxdb2.Client
	writeAPI    api.WriteAPIBlocking
	queryAPI    api.QueryAPI
	bucket      string
	measurement string
	log         *slog.Logger
}

// NewInfluxStore connects to InfluxDB and verifies connectivity before
// returning.
func NewInfluxStore(ctx context.Context, url, token, org, bucket, measurement string, log *slog.Logger) (*InfluxStore, error) {
	client := influxdb2.NewClient(url, token)

	if _, err := client.Health(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to influxdb at %s: %w", url, err)
	}

	return &InfluxStore{
		client:      client,
		writeAPI:    client.WriteAPIBlocking(org, bucket),
		queryAPI:    client.QueryAPI(org),
		bucket:      bucket,
		measurement: measurement,
		log:         log,
	}, nil
}

func (s *InfluxStore) Append(ctx context.Context, readings ...weather.Reading) error {
	points := make([]*write.Point, 0, len(readings))
	for _, r := range readings {
		points = append(points, write.NewPoint(
			s.measurement,
			map[string]string{"city": r.City},
			map[string]interface{}{
				"temperature": r.Temperature,
				"humidity":    r.Humidity,
				"wind_speed":  r.WindSpeed,
			},
			r.Timestamp,
		))
	}

	if err := s.writeAPI.WritePoint(ctx, points...); err != nil {
		return fmt.Errorf("influxdb append: %w", err)
	}
	return nil
}

func (s *InfluxStore) Query(ctx context.Context, limit int, order Order) []weather.Reading {
	flux := fmt.Sprintf(`
from(bucket: %q)
  |> range(start: 0)
  |> filter(fn: (r) => r._measurement == %q)
  |> pivot(rowKey: ["_time"], columnKey: ["_field"], valueColumn: "_value")
  |> sort(columns: ["_time"], desc: %t)
  |> limit(n: %d)`,
		s.bucket, s.measurement, order == OrderDesc, limit)

	result, err := s.queryAPI.Query(ctx, flux)
	if err != nil {
		s.log.Warn("influxdb query failed, returning empty result", "error", err)
		return nil
	}

	var readings []weather.Reading
	for result.Next() {
		rec := result.Record()
		readings = append(readings, weather.Reading{
			Timestamp:   rec.Time().UTC(),
			City:        stringField(rec.ValueByKey("city")),
			Temperature: floatField(rec.ValueByKey("temperature")),
			Humidity:    floatField(rec.ValueByKey("humidity")),
			WindSpeed:   floatField(rec.ValueByKey("wind_speed")),
		})
	}
	if result.Err() != nil {
		s.log.Warn("influxdb query iteration failed, returning empty result", "error", result.Err())
		return nil
	}

	return readings
}

func (s *InfluxStore) Close() error {
	s.client.Close()
	return nil
}

func stringField(v interface{}) string {
	s, _ := v.(string)
	return s
}

func floatField(v interface{}) float64 {
	f, _ := v.(float64)
	return f
}
