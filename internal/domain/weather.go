package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// Location is a free-form place query such as "London, UK"
type Location = string

// RawWeather is the decoded body of a current-weather response.
// Numbers are kept as json.Number so they render exactly as sent.
type RawWeather map[string]any

// DecodeRawWeather reads a JSON object from r
func DecodeRawWeather(r io.Reader) (RawWeather, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw RawWeather
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("weather: failed to decode response: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("weather: response body is not a JSON object")
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("weather: unexpected data after the response object")
	}
	return raw, nil
}

// WeatherReport represents the current conditions for one place
type WeatherReport struct {
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Temperature float64   `json:"temperature"`
	FeelsLike   float64   `json:"feels_like"`
	Humidity    string    `json:"humidity"`
	Pressure    string    `json:"pressure"`
	WindSpeed   string    `json:"wind_speed"`
	Description string    `json:"description"`
	Sunrise     time.Time `json:"sunrise"`
	Sunset      time.Time `json:"sunset"`
}
