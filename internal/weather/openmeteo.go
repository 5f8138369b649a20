package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

// OpenMeteoSource fetches current conditions from the Open-Meteo
// forecast API. No API key is required.
type OpenMeteoSource struct {
	baseURL string
	client  *http.Client
	retry   RetryPolicy
	circuit *gobreaker.CircuitBreaker
}

// NewOpenMeteoSource builds a source backed by the given HTTP client.
// The client's timeout bounds each attempt; the retry policy bounds the
// number of attempts.
func NewOpenMeteoSource(client *http.Client, retry RetryPolicy) *OpenMeteoSource {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenMeteoSource{
		baseURL: "https://api.open-meteo.com/v1/forecast",
		client:  client,
		retry:   retry,
		circuit: cb,
	}
}

func (s *OpenMeteoSource) FetchCurrent(ctx context.Context, lat, lon float64) (Observation, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", lat))
		values.Set("longitude", fmt.Sprintf("%f", lon))
		values.Set("current", "temperature_2m,relative_humidity_2m,wind_speed_10m")

		u := fmt.Sprintf("%s?%s", s.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := s.retry.do(ctx, s.client, s.circuit, buildRequest)
	if err != nil {
		return Observation{}, fmt.Errorf("openmeteo fetch: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Current struct {
			Temperature2m      float64 `json:"temperature_2m"`
			RelativeHumidity2m float64 `json:"relative_humidity_2m"`
			WindSpeed10m       float64 `json:"wind_speed_10m"`
		} `json:"current"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Observation{}, fmt.Errorf("openmeteo decode: %w", err)
	}

	return Observation{
		Temperature: payload.Current.Temperature2m,
		Humidity:    payload.Current.RelativeHumidity2m,
		WindSpeed:   payload.Current.WindSpeed10m,
	}, nil
}
