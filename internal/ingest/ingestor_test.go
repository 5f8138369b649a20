package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhvu-dn/weather-predict/internal/store"
	"github.com/minhvu-dn/weather-predict/internal/weather"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeSource struct {
	obs weather.Observation
	err error
}

func (f fakeSource) FetchCurrent(context.Context, float64, float64) (weather.Observation, error) {
	return f.obs, f.err
}

type failingStore struct {
	store.Store
	err error
}

func (f failingStore) Append(context.Context, ...weather.Reading) error { return f.err }

func TestCycleStampsAndAppends(t *testing.T) {
	src := fakeSource{obs: weather.Observation{Temperature: 27.4, Humidity: 71, WindSpeed: 3.1}}
	mem := store.NewMemoryStore(0, 0)

	ing := New(src, mem, 16.047079, 108.206230, "Danang", discardLogger())
	stamped := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	ing.now = func() time.Time { return stamped }

	got, err := ing.Cycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Danang", got.City)
	assert.Equal(t, stamped, got.Timestamp)
	assert.Equal(t, 27.4, got.Temperature)

	stored := mem.Query(context.Background(), 10, store.OrderAsc)
	require.Len(t, stored, 1)
	assert.Equal(t, got, stored[0])
}

func TestCycleFetchFailurePropagates(t *testing.T) {
	src := fakeSource{err: errors.New("endpoint unreachable")}
	mem := store.NewMemoryStore(0, 0)

	ing := New(src, mem, 0, 0, "Danang", discardLogger())
	_, err := ing.Cycle(context.Background())

	require.Error(t, err)
	assert.Empty(t, mem.Query(context.Background(), 10, store.OrderAsc))
}

func TestCycleAppendFailurePropagates(t *testing.T) {
	src := fakeSource{obs: weather.Observation{Temperature: 27.4}}
	appendErr := errors.New("store unreachable")

	ing := New(src, failingStore{err: appendErr}, 0, 0, "Danang", discardLogger())
	_, err := ing.Cycle(context.Background())

	assert.ErrorIs(t, err, appendErr)
}

func TestRunStreamStopsOnContextCancel(t *testing.T) {
	src := fakeSource{obs: weather.Observation{Temperature: 25}}
	mem := store.NewMemoryStore(0, 0)
	ing := New(src, mem, 0, 0, "Danang", discardLogger())

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- ing.RunStream(ctx, 10*time.Millisecond) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not stop on cancel")
	}

	assert.NotEmpty(t, mem.Query(context.Background(), 0, store.OrderAsc))
}
