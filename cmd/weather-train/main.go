package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/minhvu-dn/weather-predict/internal/config"
	"github.com/minhvu-dn/weather-predict/internal/logging"
	"github.com/minhvu-dn/weather-predict/internal/model"
	"github.com/minhvu-dn/weather-predict/internal/pipeline"
	"github.com/minhvu-dn/weather-predict/internal/store"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the JSON config file")
	flag.Parse()

	_ = godotenv.Load()

	log := logging.New(os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load(*configPath, log)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	st, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	log.Info("loading readings", "store", cfg.FullTablePath(), "limit", cfg.Store.QueryLimit)
	readings := st.Query(ctx, cfg.Store.QueryLimit, store.OrderAsc)
	if len(readings) == 0 {
		log.Error("no data found in the weather store; start the ingest stream first")
		os.Exit(1)
	}

	frame, trainable := pipeline.Engineer(readings)
	log.Info("engineered features", "rows", len(frame), "trainable", len(trainable))

	trainer := model.NewTrainer(model.NewFileStore(cfg.ModelPath()), log)

	if _, err := trainer.Train(trainable); err != nil {
		if errors.Is(err, model.ErrInsufficientData) {
			log.Error("not enough data to train a model; keep the stream running", "trainable", len(trainable))
		} else {
			log.Error("training failed", "error", err)
		}
		os.Exit(1)
	}
}
