package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Config is the immutable, process-lifetime configuration snapshot.
// It is built once by Load and passed by reference into every component
// that needs it; nothing mutates it afterwards.
//
// Layering, lowest to highest precedence: built-in defaults, config
// file (recursive key-wise merge), dedicated environment variables
// (leaf overrides), optional secrets file (leaf overrides).
type Config struct {
	GCP     GCPConfig     `mapstructure:"gcp"`
	API     APIConfig     `mapstructure:"api"`
	Weather WeatherConfig `mapstructure:"weather"`
	Model   ModelConfig   `mapstructure:"model"`
	App     AppConfig     `mapstructure:"app"`
	Store   StoreConfig   `mapstructure:"store"`

	// Directory the config file lives in; relative paths resolve
	// against it.
	baseDir string
}

// GCPConfig names the store location. The key names are kept for
// compatibility with existing deployments: the Influx backend maps
// project → org, dataset → bucket, table → measurement; the sqlite
// backend maps dataset → database file and table → table name.
type GCPConfig struct {
	ProjectID       string `mapstructure:"project_id"`
	DatasetID       string `mapstructure:"dataset_id"`
	TableID         string `mapstructure:"table_id"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

type APIConfig struct {
	PredictAPIURL  string `mapstructure:"predict_api_url"`
	TimeoutSeconds int    `mapstructure:"timeout"`
}

type WeatherConfig struct {
	Latitude  float64 `mapstructure:"latitude"`
	Longitude float64 `mapstructure:"longitude"`
	City      string  `mapstructure:"city"`
}

type ModelConfig struct {
	ModelFile string `mapstructure:"model_file"`
}

type AppConfig struct {
	ShowDebugInfo bool `mapstructure:"show_debug_info"`
}

// StoreConfig selects and parameterizes the store backend.
type StoreConfig struct {
	Driver      string `mapstructure:"driver"` // influxdb | sqlite | memory
	InfluxURL   string `mapstructure:"influx_url"`
	InfluxToken string `mapstructure:"influx_token"`

	// QueryLimit caps how many recent readings the training and
	// prediction paths pull from the store.
	QueryLimit int `mapstructure:"query_limit"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"gcp": map[string]interface{}{
			"project_id":       "ai-realtime-project",
			"dataset_id":       "sensor_data_stream",
			"table_id":         "real-weather",
			"credentials_file": "ai-realtime-project-4de709b969f4.json",
		},
		"api": map[string]interface{}{
			"predict_api_url": "http://localhost:8000",
			"timeout":         5,
		},
		"weather": map[string]interface{}{
			"latitude":  16.047079,
			"longitude": 108.206230,
			"city":      "Danang",
		},
		"model": map[string]interface{}{
			"model_file": "weather_model.json",
		},
		"app": map[string]interface{}{
			"show_debug_info": false,
		},
		"store": map[string]interface{}{
			"driver":       "sqlite",
			"influx_url":   "http://localhost:8086",
			"influx_token": "",
			"query_limit":  500,
		},
	}
}

// Load builds the configuration snapshot. A missing or malformed config
// file is never fatal: it is logged and the defaults plus env/secret
// overrides are used instead.
func Load(configFile string, log *slog.Logger) (*Config, error) {
	merged := defaults()

	if configFile == "" {
		configFile = "config.json"
	}

	fileCfg, err := readJSONFile(configFile)
	switch {
	case os.IsNotExist(err):
		log.Info("config file not found, using defaults with overrides", "path", configFile)
	case err != nil:
		log.Warn("could not load config file, using defaults with overrides", "path", configFile, "error", err)
	default:
		merged = deepMerge(merged, fileCfg)
	}

	applyEnvOverrides(merged, log)

	if secrets, path, err := readSecrets(configFile); err != nil {
		log.Warn("could not load secrets file, ignoring it", "path", path, "error", err)
	} else if secrets != nil {
		merged = deepMerge(merged, secrets)
	}

	cfg := &Config{}
	if err := mapstructure.Decode(merged, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	abs, err := filepath.Abs(configFile)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	cfg.baseDir = filepath.Dir(abs)

	return cfg, nil
}

func readJSONFile(path string) (map[string]interface{}, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return m, nil
}

// readSecrets loads the optional secrets document: SECRETS_FILE if set,
// otherwise secrets.json next to the config file. Absence is not an
// error.
func readSecrets(configFile string) (map[string]interface{}, string, error) {
	path := os.Getenv("SECRETS_FILE")
	if path == "" {
		path = filepath.Join(filepath.Dir(configFile), "secrets.json")
	}
	m, err := readJSONFile(path)
	if os.IsNotExist(err) {
		return nil, path, nil
	}
	if err != nil {
		return nil, path, err
	}
	return m, path, nil
}

func applyEnvOverrides(m map[string]interface{}, log *slog.Logger) {
	if v := os.Getenv("GCP_PROJECT_ID"); v != "" {
		setLeaf(m, v, "gcp", "project_id")
	}
	if v := os.Getenv("BIGQUERY_DATASET"); v != "" {
		setLeaf(m, v, "gcp", "dataset_id")
	}
	if v := os.Getenv("BIGQUERY_TABLE"); v != "" {
		setLeaf(m, v, "gcp", "table_id")
	}
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		setLeaf(m, v, "gcp", "credentials_file")
	}
	if v := os.Getenv("PREDICT_API_URL"); v != "" {
		setLeaf(m, v, "api", "predict_api_url")
	}
	if v := os.Getenv("WEATHER_LAT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			setLeaf(m, f, "weather", "latitude")
		} else {
			log.Warn("invalid WEATHER_LAT, keeping configured value", "value", v)
		}
	}
	if v := os.Getenv("WEATHER_LON"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			setLeaf(m, f, "weather", "longitude")
		} else {
			log.Warn("invalid WEATHER_LON, keeping configured value", "value", v)
		}
	}
	if v := os.Getenv("WEATHER_CITY"); v != "" {
		setLeaf(m, v, "weather", "city")
	}
	if v := os.Getenv("STORE_DRIVER"); v != "" {
		setLeaf(m, v, "store", "driver")
	}
	if v := os.Getenv("INFLUXDB_URL"); v != "" {
		setLeaf(m, v, "store", "influx_url")
	}
	if v := os.Getenv("INFLUX_TOKEN"); v != "" {
		setLeaf(m, v, "store", "influx_token")
	}
}

// FullTablePath returns the dotted store location, for logs.
func (c *Config) FullTablePath() string {
	return fmt.Sprintf("%s.%s.%s", c.GCP.ProjectID, c.GCP.DatasetID, c.GCP.TableID)
}

// APITimeout returns the configured API timeout as a duration.
func (c *Config) APITimeout() time.Duration {
	if c.API.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// ModelPath resolves the model artifact path against the config
// directory when it is relative.
func (c *Config) ModelPath() string {
	return c.resolve(c.Model.ModelFile)
}

// CredentialsPath resolves the credentials file path against the config
// directory when it is relative.
func (c *Config) CredentialsPath() string {
	return c.resolve(c.GCP.CredentialsFile)
}

// SQLitePath is the database file for the sqlite backend, derived from
// the dataset name and resolved against the config directory.
func (c *Config) SQLitePath() string {
	return c.resolve(c.GCP.DatasetID + ".db")
}

func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.baseDir, path)
}
