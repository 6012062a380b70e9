package service

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the OpenWeatherMap current-weather endpoint.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// DefaultTimeout bounds the single outbound request.
const DefaultTimeout = 10 * time.Second

// Option configures a WeatherFetcher.
type Option func(*WeatherFetcher)

// WithBaseURL sets the endpoint queried by Fetch.
func WithBaseURL(url string) Option {
	return func(f *WeatherFetcher) {
		f.baseURL = url
	}
}

// WithTimeout sets the request timeout (default: 10s).
// Ignored when WithHTTPClient is also given.
func WithTimeout(d time.Duration) Option {
	return func(f *WeatherFetcher) {
		f.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *WeatherFetcher) {
		f.httpClient = client
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *zap.Logger) Option {
	return func(f *WeatherFetcher) {
		f.logger = logger
	}
}

// WithProgress registers a callback invoked right before the network request.
func WithProgress(fn func(location string)) Option {
	return func(f *WeatherFetcher) {
		f.progress = fn
	}
}
