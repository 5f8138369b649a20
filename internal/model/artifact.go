package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Artifact is the serialized form of a trained model: the coefficients
// plus enough metadata to sanity-check what is being loaded.
type Artifact struct {
	Kind         string       `json:"kind"`
	Features     []string     `json:"features"`
	Coefficients Coefficients `json:"coefficients"`
	TrainedAt    time.Time    `json:"trained_at"`
	SampleCount  int          `json:"sample_count"`
}

const artifactKind = "linear_regression"

var artifactFeatures = []string{"temperature", "hour", "humidity"}

// FileStore persists the model artifact as a single JSON file at a
// well-known path. There is one active model per deployment; each
// successful training run replaces it.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the artifact location.
func (s *FileStore) Path() string { return s.path }

// Save writes the artifact atomically: to a temporary file in the
// target directory first, then renamed over the destination. A reader
// racing a writer observes either the old artifact or the new one,
// never a partial write.
func (s *FileStore) Save(a Artifact) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("encode model artifact: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp artifact: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace model artifact: %w", err)
	}
	return nil
}

// Load reads the persisted artifact. A missing file is reported as
// present == false, not as an error; callers translate absence into
// their no-model state.
func (s *FileStore) Load() (Artifact, bool, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Artifact{}, false, nil
	}
	if err != nil {
		return Artifact{}, false, fmt.Errorf("read model artifact: %w", err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return Artifact{}, false, fmt.Errorf("decode model artifact: %w", err)
	}
	if a.Kind != artifactKind {
		return Artifact{}, false, fmt.Errorf("unexpected model artifact kind %q", a.Kind)
	}
	return a, true, nil
}
