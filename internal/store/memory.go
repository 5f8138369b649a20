package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/minhvu-dn/weather-predict/internal/weather"
)

// MemoryStore is a concurrency-safe in-memory readings store, used for
// local development and tests. Retention limits are optional; zero
// means unlimited.
type MemoryStore struct {
	mu       sync.RWMutex
	readings []weather.Reading

	maxHistory int
	maxAge     time.Duration
}

func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

func (s *MemoryStore) Append(_ context.Context, readings ...weather.Reading) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.readings = append(s.readings, readings...)

	if s.maxHistory > 0 && len(s.readings) > s.maxHistory {
		over := len(s.readings) - s.maxHistory
		s.readings = s.readings[over:]
	}

	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.readings); i++ {
			if !s.readings[i].Timestamp.Before(cutoff) {
				break
			}
		}
		if i > 0 {
			s.readings = s.readings[i:]
		}
	}

	return nil
}

func (s *MemoryStore) Query(_ context.Context, limit int, order Order) []weather.Reading {
	s.mu.RLock()
	result := make([]weather.Reading, len(s.readings))
	copy(result, s.readings)
	s.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		if order == OrderDesc {
			return result[i].Timestamp.After(result[j].Timestamp)
		}
		return result[i].Timestamp.Before(result[j].Timestamp)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

func (s *MemoryStore) Close() error { return nil }
