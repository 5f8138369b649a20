package store

import (
	"context"

	"github.com/minhvu-dn/weather-predict/internal/weather"
)

// Order controls timestamp ordering of query results.
type Order int

const (
	OrderAsc Order = iota
	OrderDesc
)

// Store is the contract every readings backend must satisfy.
//
// Append has at-least-once batch semantics: a retried job may append
// the same reading twice and downstream consumers tolerate that. It
// waits for the write to complete and returns an error on failure; the
// caller treats that as fatal.
//
// Query returns up to limit readings ordered by timestamp. It degrades
// to an empty slice on any failure so read paths can surface their own
// no-data states instead of crashing.
type Store interface {
	Append(ctx context.Context, readings ...weather.Reading) error
	Query(ctx context.Context, limit int, order Order) []weather.Reading
	Close() error
}
