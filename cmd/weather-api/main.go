package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	httpapi "github.com/minhvu-dn/weather-predict/internal/api/http"
	"github.com/minhvu-dn/weather-predict/internal/config"
	"github.com/minhvu-dn/weather-predict/internal/logging"
	"github.com/minhvu-dn/weather-predict/internal/model"
	"github.com/minhvu-dn/weather-predict/internal/predict"
	"github.com/minhvu-dn/weather-predict/internal/store"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the JSON config file")
	flag.Parse()

	// A missing .env is the normal case outside local dev.
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

	artifacts := model.NewFileStore(cfg.ModelPath())
	predictor := predict.New(artifacts, log)

	app := fiber.New(fiber.Config{
		AppName:               "weather-predict",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-predict",
		})
	})

	httpapi.RegisterRoutes(app, st, predictor, cfg, log)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	go func() {
		log.Info("serving predictions", "port", port, "store", cfg.FullTablePath())
		if err := app.Listen(":" + port); err != nil {
			log.Error("server stopped", "error", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
}
