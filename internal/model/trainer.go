package model

import (
	"log/slog"
	"time"

	"github.com/minhvu-dn/weather-predict/internal/pipeline"
)

// Trainer fits the regression on a trainable frame and persists the
// result. One artifact write per successful call; the input frame is
// never mutated.
type Trainer struct {
	artifacts *FileStore
	log       *slog.Logger
	now       func() time.Time
}

func NewTrainer(artifacts *FileStore, log *slog.Logger) *Trainer {
	return &Trainer{
		artifacts: artifacts,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Train fits and persists. ErrInsufficientData passes through untouched
// so callers can distinguish it from persistence failures.
func (t *Trainer) Train(trainable pipeline.TrainableFrame) (Artifact, error) {
	coeffs, err := Fit(trainable)
	if err != nil {
		return Artifact{}, err
	}

	artifact := Artifact{
		Kind:         artifactKind,
		Features:     artifactFeatures,
		Coefficients: coeffs,
		TrainedAt:    t.now(),
		SampleCount:  len(trainable),
	}

	if err := t.artifacts.Save(artifact); err != nil {
		return Artifact{}, err
	}

	t.log.Info("model trained and saved",
		"path", t.artifacts.Path(),
		"samples", artifact.SampleCount)
	return artifact, nil
}
