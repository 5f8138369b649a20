package model

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArtifact() Artifact {
	return Artifact{
		Kind:     artifactKind,
		Features: artifactFeatures,
		Coefficients: Coefficients{
			Intercept:   1.25,
			Temperature: 0.9,
			Hour:        0.05,
			Humidity:    -0.01,
		},
		TrainedAt:   time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC),
		SampleCount: 42,
	}
}

func TestLoadAbsentArtifact(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "weather_model.json"))

	_, present, err := fs.Load()
	require.NoError(t, err)
	assert.False(t, present)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "weather_model.json"))

	want := testArtifact()
	require.NoError(t, fs.Save(want))

	got, present, err := fs.Load()
	require.NoError(t, err)
	require.True(t, present)
	assert.Equal(t, want, got)
}

func TestSaveReplacesExistingArtifact(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(filepath.Join(dir, "weather_model.json"))

	first := testArtifact()
	require.NoError(t, fs.Save(first))

	second := first
	second.Coefficients.Intercept = 99
	second.SampleCount = 43
	require.NoError(t, fs.Save(second))

	got, present, err := fs.Load()
	require.NoError(t, err)
	require.True(t, present)
	assert.Equal(t, second, got)

	// The temp-write-and-rename must not litter the directory.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoadRejectsForeignArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather_model.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"kind":"random_forest"}`), 0o644))

	_, _, err := NewFileStore(path).Load()
	assert.Error(t, err)
}
