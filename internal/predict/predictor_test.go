package predict

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhvu-dn/weather-predict/internal/model"
	"github.com/minhvu-dn/weather-predict/internal/pipeline"
	"github.com/minhvu-dn/weather-predict/internal/weather"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func frames(t *testing.T, temps ...float64) (pipeline.FeatureFrame, pipeline.TrainableFrame) {
	t.Helper()
	base := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	readings := make([]weather.Reading, 0, len(temps))
	for i, temp := range temps {
		readings = append(readings, weather.Reading{
			Timestamp:   base.Add(time.Duration(i) * time.Hour),
			City:        "Danang",
			Temperature: temp,
			Humidity:    60,
			WindSpeed:   2,
		})
	}
	return pipeline.Engineer(readings)
}

func TestPredictNoData(t *testing.T) {
	fs := model.NewFileStore(filepath.Join(t.TempDir(), "weather_model.json"))
	p := New(fs, discardLogger())

	got := p.Predict(pipeline.FeatureFrame{}, pipeline.TrainableFrame{})
	assert.Equal(t, StatusNoData, got.Status)
}

func TestPredictNoModel(t *testing.T) {
	fs := model.NewFileStore(filepath.Join(t.TempDir(), "weather_model.json"))
	p := New(fs, discardLogger())

	frame, trainable := frames(t, 20, 21, 22, 23)
	require.NotEmpty(t, trainable)

	got := p.Predict(frame, trainable)
	assert.Equal(t, StatusNoModel, got.Status)
}

func TestPredictOK(t *testing.T) {
	fs := model.NewFileStore(filepath.Join(t.TempDir(), "weather_model.json"))
	trainer := model.NewTrainer(fs, discardLogger())

	frame, trainable := frames(t, 20, 21, 22, 23, 24, 25)
	_, err := trainer.Train(trainable)
	require.NoError(t, err)

	p := New(fs, discardLogger())
	got := p.Predict(frame, trainable)

	require.Equal(t, StatusOK, got.Status)
	assert.Equal(t, 25.0, got.CurrentTemp)

	// The anchor row is the latest raw reading; its feature vector
	// evaluated against the persisted coefficients is the forecast.
	artifact, present, err := fs.Load()
	require.NoError(t, err)
	require.True(t, present)
	latest, ok := frame.Latest()
	require.True(t, ok)
	want := artifact.Coefficients.Predict(latest.Temperature, latest.Hour, latest.Humidity)
	assert.Equal(t, want, got.PredictedTemp)

	// Unchanged artifact and input must give bit-identical output.
	again := p.Predict(frame, trainable)
	assert.Equal(t, got, again)
}

func TestPredictCorruptArtifactReportsNoModel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weather_model.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	p := New(model.NewFileStore(path), discardLogger())
	frame, trainable := frames(t, 20, 21, 22, 23)

	got := p.Predict(frame, trainable)
	assert.Equal(t, StatusNoModel, got.Status)
}
