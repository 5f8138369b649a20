package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/minhvu-dn/weather-predict/internal/config"
)

// Open builds the store backend selected by cfg.Store.Driver.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (Store, error) {
	switch cfg.Store.Driver {
	case "influxdb":
		return NewInfluxStore(
			ctx,
			cfg.Store.InfluxURL,
			cfg.Store.InfluxToken,
			cfg.GCP.ProjectID,
			cfg.GCP.DatasetID,
			cfg.GCP.TableID,
			log,
		)
	case "sqlite":
		return NewSQLiteStore(cfg.SQLitePath(), cfg.GCP.TableID, log)
	case "memory":
		return NewMemoryStore(0, 0), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
