package httpapi

import (
	"log/slog"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/minhvu-dn/weather-predict/internal/config"
	"github.com/minhvu-dn/weather-predict/internal/pipeline"
	"github.com/minhvu-dn/weather-predict/internal/predict"
	"github.com/minhvu-dn/weather-predict/internal/store"
)

var validate = validator.New()

const (
	msgNoData        = "No data found in the weather store. Start your real-time streamer first."
	msgNoModel       = "Trained model not found. Run the weather-train job first."
	msgNotEnoughData = "Not enough clean data to predict. Keep the real-time stream running."
)

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, st store.Store, predictor *predict.Predictor, cfg *config.Config, log *slog.Logger) {
	app.Get("/data", func(c *fiber.Ctx) error {
		req := dataQuery{Limit: c.QueryInt("limit", 100)}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "limit must be between 1 and 1000")
		}

		rows := st.Query(c.UserContext(), req.Limit, store.OrderAsc)
		if len(rows) == 0 {
			return c.JSON(fiber.Map{
				"status":  "error",
				"message": msgNoData,
				"rows":    []any{},
			})
		}

		return c.JSON(fiber.Map{
			"status":    "success",
			"row_count": len(rows),
			"rows":      rows,
		})
	})

	app.Get("/predict", func(c *fiber.Ctx) error {
		rows := st.Query(c.UserContext(), cfg.Store.QueryLimit, store.OrderAsc)
		if len(rows) == 0 {
			return c.JSON(fiber.Map{
				"status":  "error",
				"message": msgNoData,
			})
		}

		frame, trainable := pipeline.Engineer(rows)
		p := predictor.Predict(frame, trainable)

		switch p.Status {
		case predict.StatusNoModel:
			return c.JSON(fiber.Map{
				"status":  "error",
				"message": msgNoModel,
			})
		case predict.StatusNoData:
			return c.JSON(fiber.Map{
				"status":  "error",
				"message": msgNotEnoughData,
			})
		}

		if cfg.App.ShowDebugInfo {
			log.Debug("prediction served",
				"current", p.CurrentTemp,
				"predicted", p.PredictedTemp,
				"rows", len(rows),
				"trainable", len(trainable))
		}

		return c.JSON(fiber.Map{
			"status": "success",
			"current_weather": fiber.Map{
				"temp": p.CurrentTemp,
			},
			"forecast_next": math.Round(p.PredictedTemp*100) / 100,
		})
	})
}

// dataQuery holds the validated query parameters of the /data endpoint.
type dataQuery struct {
	Limit int `validate:"required,min=1,max=1000"`
}
