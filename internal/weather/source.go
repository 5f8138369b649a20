package weather

import "context"

// Source abstracts a current-conditions weather endpoint
// (e.g. Open-Meteo). Implementations must respect ctx cancellation and
// return an error on any non-success response; they never fabricate
// partial observations.
type Source interface {
	FetchCurrent(ctx context.Context, lat, lon float64) (Observation, error)
}
