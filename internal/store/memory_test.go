package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhvu-dn/weather-predict/internal/weather"
)

func memReading(ts time.Time, temp float64) weather.Reading {
	return weather.Reading{
		Timestamp:   ts,
		City:        "Danang",
		Temperature: temp,
		Humidity:    60,
		WindSpeed:   2,
	}
}

func TestMemoryStoreQueryOrderAndLimit(t *testing.T) {
	s := NewMemoryStore(0, 0)
	ctx := context.Background()
	base := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

	// Append out of order; queries must still come back sorted.
	require.NoError(t, s.Append(ctx,
		memReading(base.Add(2*time.Hour), 22),
		memReading(base, 20),
		memReading(base.Add(1*time.Hour), 21),
	))

	asc := s.Query(ctx, 10, OrderAsc)
	require.Len(t, asc, 3)
	assert.Equal(t, 20.0, asc[0].Temperature)
	assert.Equal(t, 22.0, asc[2].Temperature)

	desc := s.Query(ctx, 2, OrderDesc)
	require.Len(t, desc, 2)
	assert.Equal(t, 22.0, desc[0].Temperature)
	assert.Equal(t, 21.0, desc[1].Temperature)
}

func TestMemoryStoreEmptyQuery(t *testing.T) {
	s := NewMemoryStore(0, 0)
	assert.Empty(t, s.Query(context.Background(), 10, OrderAsc))
}

func TestMemoryStoreRetentionByCount(t *testing.T) {
	s := NewMemoryStore(2, 0)
	ctx := context.Background()
	base := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Append(ctx, memReading(base.Add(time.Duration(i)*time.Hour), float64(20+i))))
	}

	got := s.Query(ctx, 10, OrderAsc)
	require.Len(t, got, 2)
	assert.Equal(t, 23.0, got[0].Temperature)
	assert.Equal(t, 24.0, got[1].Temperature)
}

func TestMemoryStoreToleratesDuplicateAppends(t *testing.T) {
	s := NewMemoryStore(0, 0)
	ctx := context.Background()
	r := memReading(time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC), 20)

	// At-least-once semantics: a retried append simply lands twice.
	require.NoError(t, s.Append(ctx, r))
	require.NoError(t, s.Append(ctx, r))

	assert.Len(t, s.Query(ctx, 10, OrderAsc), 2)
}
