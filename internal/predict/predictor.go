package predict

import (
	"log/slog"

	"github.com/minhvu-dn/weather-predict/internal/model"
	"github.com/minhvu-dn/weather-predict/internal/pipeline"
)

// Status is the closed set of prediction outcomes.
type Status string

const (
	StatusOK      Status = "ok"
	StatusNoData  Status = "no_data"  // not enough clean readings yet
	StatusNoModel Status = "no_model" // no persisted artifact to load
)

// Prediction is one inference result. CurrentTemp and PredictedTemp
// carry values only when Status is StatusOK.
type Prediction struct {
	Status        Status
	CurrentTemp   float64
	PredictedTemp float64
}

// Predictor produces "current vs next" temperature predictions from the
// persisted model and freshly engineered frames.
type Predictor struct {
	artifacts *model.FileStore
	log       *slog.Logger
}

func New(artifacts *model.FileStore, log *slog.Logger) *Predictor {
	return &Predictor{artifacts: artifacts, log: log}
}

// Predict anchors on the most recent row of the feature frame, the one
// excluded from training because its true next temperature is unknown;
// that unknown value is exactly what the model estimates.
func (p *Predictor) Predict(frame pipeline.FeatureFrame, trainable pipeline.TrainableFrame) Prediction {
	if len(trainable) == 0 {
		return Prediction{Status: StatusNoData}
	}

	artifact, present, err := p.artifacts.Load()
	if err != nil {
		p.log.Warn("could not load model artifact", "path", p.artifacts.Path(), "error", err)
		return Prediction{Status: StatusNoModel}
	}
	if !present {
		return Prediction{Status: StatusNoModel}
	}

	latest, ok := frame.Latest()
	if !ok {
		return Prediction{Status: StatusNoData}
	}

	predicted := artifact.Coefficients.Predict(latest.Temperature, latest.Hour, latest.Humidity)
	return Prediction{
		Status:        StatusOK,
		CurrentTemp:   latest.Temperature,
		PredictedTemp: predicted,
	}
}
