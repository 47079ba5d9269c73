// Package weather queries the OpenWeather current-conditions API.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the current-conditions endpoint.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

var (
	// ErrMissingAPIKey indicates the client was built without credentials;
	// no request is attempted in that case.
	ErrMissingAPIKey = errors.New("openweather API key not configured")
	// ErrNotFound indicates the service does not know the location.
	ErrNotFound = errors.New("location not found")
)

// Report mirrors the current-conditions fields the assistant speaks
// about. Temperatures are Kelvin, as returned by the API.
type Report struct {
	Name    string `json:"name"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Condition returns the primary textual condition, if any.
func (r *Report) Condition() string {
	if len(r.Weather) == 0 {
		return ""
	}
	return r.Weather[0].Description
}

// Client fetches current conditions by city name.
type Client struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

// NewClient creates a Client with an explicit request timeout.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: DefaultBaseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// CurrentByCity looks up current conditions for a free-text city name.
func (c *Client) CurrentByCity(ctx context.Context, city string) (*Report, error) {
	if c.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext failed: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%q: %w", city, ErrNotFound)
	default:
		return nil, fmt.Errorf("unexpected weather API status %d", resp.StatusCode)
	}

	report := &Report{}
	if err := json.NewDecoder(resp.Body).Decode(report); err != nil {
		return nil, fmt.Errorf("json.NewDecoder.Decode failed: %w", err)
	}

	return report, nil
}
