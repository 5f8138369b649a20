package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/minhvu-dn/weather-predict/internal/config"
	"github.com/minhvu-dn/weather-predict/internal/ingest"
	"github.com/minhvu-dn/weather-predict/internal/logging"
	"github.com/minhvu-dn/weather-predict/internal/store"
	"github.com/minhvu-dn/weather-predict/internal/weather"
)

// Default cadences: the live feed polls every 5 minutes; the synthetic
// stream is only for local development and runs fast.
const (
	liveInterval      = 300 * time.Second
	syntheticInterval = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.json", "path to the JSON config file")
	stream := flag.Bool("stream", false, "run the fetch-and-append loop instead of a single shot")
	synthetic := flag.Bool("synthetic", false, "generate random readings instead of calling the weather API")
	interval := flag.Duration("interval", 0, "stream interval (default 300s live, 5s synthetic)")
	flag.Parse()

	_ = godotenv.Load()

	log := logging.New(os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load(*configPath, log)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	var source weather.Source
	if *synthetic {
		source = weather.NewSyntheticSource(time.Now().UnixNano())
	} else {
		source = weather.NewOpenMeteoSource(
			&http.Client{Timeout: 10 * time.Second},
			weather.DefaultRetryPolicy,
		)
	}

	ingestor := ingest.New(source, st, cfg.Weather.Latitude, cfg.Weather.Longitude, cfg.Weather.City, log)

	if !*stream {
		// Single-shot mode for external schedulers: a nonzero exit is
		// the retry/alerting signal.
		cycleCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		if _, err := ingestor.Cycle(cycleCtx); err != nil {
			log.Error("ingest failed", "store", cfg.FullTablePath(), "error", err)
			os.Exit(1)
		}
		return
	}

	every := *interval
	if every <= 0 {
		every = liveInterval
		if *synthetic {
			every = syntheticInterval
		}
	}

	if err := ingestor.RunStream(ctx, every); err != nil {
		log.Error("stream failed", "error", err)
		os.Exit(1)
	}
}
