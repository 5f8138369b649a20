package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/minhvu-dn/weather-predict/internal/config"
	"github.com/minhvu-dn/weather-predict/internal/logging"
	"github.com/minhvu-dn/weather-predict/internal/model"
	"github.com/minhvu-dn/weather-predict/internal/pipeline"
	"github.com/minhvu-dn/weather-predict/internal/predict"
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

	readings := st.Query(ctx, cfg.Store.QueryLimit, store.OrderAsc)
	if len(readings) == 0 {
		log.Error("no data found in the weather store; start the ingest stream first")
		os.Exit(1)
	}

	frame, trainable := pipeline.Engineer(readings)
	predictor := predict.New(model.NewFileStore(cfg.ModelPath()), log)

	p := predictor.Predict(frame, trainable)
	switch p.Status {
	case predict.StatusNoModel:
		log.Warn("trained model not found; run the weather-train job first", "path", cfg.ModelPath())
	case predict.StatusNoData:
		log.Warn("not enough clean data to predict; keep the stream running")
	default:
		fmt.Printf("Current temp: %.2f°C\n", p.CurrentTemp)
		fmt.Printf("Predicted next temp: %.2f°C\n", p.PredictedTemp)
	}
}
