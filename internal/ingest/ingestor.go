package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"

	"github.com/minhvu-dn/weather-predict/internal/store"
	"github.com/minhvu-dn/weather-predict/internal/weather"
)

// Ingestor runs the fetch-and-append cycle: one current observation
// from the source, stamped with the current UTC instant and the
// configured city label, appended to the store.
//
// The append is at-least-once: a retried job may write the same
// reading twice, and the feature pipeline tolerates duplicates.
type Ingestor struct {
	source weather.Source
	store  store.Store
	lat    float64
	lon    float64
	city   string
	log    *slog.Logger

	// now is a seam for tests.
	now func() time.Time
}

func New(source weather.Source, st store.Store, lat, lon float64, city string, log *slog.Logger) *Ingestor {
	return &Ingestor{
		source: source,
		store:  st,
		lat:    lat,
		lon:    lon,
		city:   city,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Cycle performs one fetch-and-append. Both the fetch and the append
// error propagate to the caller: a single-shot scheduled job relies on
// a nonzero exit status to trigger external retry and alerting.
func (i *Ingestor) Cycle(ctx context.Context) (weather.Reading, error) {
	runID := uuid.NewString()

	obs, err := i.source.FetchCurrent(ctx, i.lat, i.lon)
	if err != nil {
		return weather.Reading{}, fmt.Errorf("fetch weather: %w", err)
	}

	reading := weather.Reading{
		Timestamp:   i.now(),
		City:        i.city,
		Temperature: obs.Temperature,
		Humidity:    obs.Humidity,
		WindSpeed:   obs.WindSpeed,
	}

	if err := i.store.Append(ctx, reading); err != nil {
		return weather.Reading{}, fmt.Errorf("append reading: %w", err)
	}

	i.log.Info("reading recorded",
		"run_id", runID,
		"city", reading.City,
		"temperature", reading.Temperature,
		"timestamp", reading.Timestamp.Format(time.RFC3339))
	return reading, nil
}

// RunStream repeats Cycle on a fixed interval until ctx is done. A
// failed cycle is logged and the loop continues; resilience across
// cycles belongs to the loop, not the pipeline. At most one cycle is in
// flight at a time.
func (i *Ingestor) RunStream(ctx context.Context, interval time.Duration) error {
	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.SingletonModeAll()

	_, err := scheduler.Every(interval).Do(func() {
		cycleCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		if _, err := i.Cycle(cycleCtx); err != nil {
			i.log.Error("ingest cycle failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule ingest cycle: %w", err)
	}

	i.log.Info("streaming readings", "city", i.city, "interval", interval.String())
	scheduler.StartAsync()

	<-ctx.Done()
	scheduler.Stop()
	i.log.Info("stream stopped")
	return nil
}
