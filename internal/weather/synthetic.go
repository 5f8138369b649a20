package weather

import (
	"context"
	"math"
	"math/rand"
	"sync"
)

// SyntheticSource generates plausible random observations for local
// development, so the full ingest → train → predict loop can run
// without network access.
type SyntheticSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSyntheticSource(seed int64) *SyntheticSource {
	return &SyntheticSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *SyntheticSource) FetchCurrent(_ context.Context, _, _ float64) (Observation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Observation{
		Temperature: round2(20.0 + s.rng.Float64()*15.0),
		Humidity:    round2(40.0 + s.rng.Float64()*55.0),
		WindSpeed:   round2(s.rng.Float64() * 10.0),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
