package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartcity/weather/internal/domain"
)

// PlaceholderAPIKey is the value shipped in sample configs; it never authenticates.
const PlaceholderAPIKey = "YOUR_API_KEY_HERE"

// maxErrorBody caps how much of a non-2xx body is read for its message.
const maxErrorBody = 4 << 10

// WeatherFetcher queries the current-weather endpoint for a location
type WeatherFetcher struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *zap.Logger
	progress   func(location string)
}

// NewWeatherFetcher creates a new weather fetcher
func NewWeatherFetcher(apiKey string, opts ...Option) *WeatherFetcher {
	f := &WeatherFetcher{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.httpClient == nil {
		f.httpClient = &http.Client{
			Timeout: f.timeout,
		}
	}
	if f.logger == nil {
		f.logger = zap.NewNop()
	}
	return f
}

// HasCredential reports whether a usable API key is configured.
func (f *WeatherFetcher) HasCredential() bool {
	key := strings.TrimSpace(f.apiKey)
	return key != "" && key != PlaceholderAPIKey
}

// Fetch performs one request for location and returns the decoded body.
// Every failure is a *domain.FetchError.
func (f *WeatherFetcher) Fetch(ctx context.Context, location string) (domain.RawWeather, error) {
	if !f.HasCredential() {
		return nil, f.fail(&domain.FetchError{Kind: domain.MissingCredential})
	}

	req, err := f.newRequest(ctx, location)
	if err != nil {
		return nil, f.fail(&domain.FetchError{
			Kind:     domain.UnknownRequestError,
			Location: location,
			Detail:   err.Error(),
			Err:      err,
		})
	}

	requestID := uuid.New().String()
	req.Header.Set("X-Request-Id", requestID)
	log := f.logger.With(zap.String("request_id", requestID), zap.String("location", location))

	if f.progress != nil {
		f.progress(location)
	}

	start := time.Now()
	log.Debug("requesting current weather", zap.String("endpoint", f.baseURL))

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, f.fail(&domain.FetchError{
			Kind:     classifyTransportError(err),
			Location: location,
			Detail:   err.Error(),
			Err:      err,
		})
	}
	defer resp.Body.Close()

	log.Debug("weather response received",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if fe := classifyStatus(resp, location); fe != nil {
		return nil, f.fail(fe)
	}

	raw, err := domain.DecodeRawWeather(resp.Body)
	if err != nil {
		return nil, f.fail(&domain.FetchError{
			Kind:     domain.UnknownRequestError,
			Location: location,
			Detail:   err.Error(),
			Err:      err,
		})
	}
	return raw, nil
}

func (f *WeatherFetcher) newRequest(ctx context.Context, location string) (*http.Request, error) {
	u, err := url.Parse(f.baseURL)
	if err != nil {
		return nil, fmt.Errorf("weather: invalid endpoint: %w", err)
	}

	q := u.Query()
	q.Set("q", location)
	q.Set("appid", f.apiKey)
	q.Set("units", "metric")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("weather: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (f *WeatherFetcher) fail(fe *domain.FetchError) error {
	f.logger.Warn("weather fetch failed",
		zap.Stringer("kind", fe.Kind),
		zap.String("location", fe.Location),
		zap.Int("status", fe.StatusCode),
		zap.String("detail", fe.Detail),
	)
	return fe
}

// classifyStatus maps a non-2xx response onto a FetchError.
// 404 and 401 are checked before the generic case.
func classifyStatus(resp *http.Response, location string) *domain.FetchError {
	code := resp.StatusCode
	switch {
	case code == http.StatusNotFound:
		return &domain.FetchError{Kind: domain.NotFound, Location: location, StatusCode: code, Detail: statusLine(code)}
	case code == http.StatusUnauthorized:
		return &domain.FetchError{Kind: domain.Unauthorized, Location: location, StatusCode: code, Detail: statusLine(code)}
	case code < 200 || code > 299:
		detail := statusLine(code)
		if msg := apiMessage(resp.Body); msg != "" {
			detail += ": " + msg
		}
		return &domain.FetchError{Kind: domain.HTTPError, Location: location, StatusCode: code, Detail: detail}
	}
	return nil
}

func statusLine(code int) string {
	if text := http.StatusText(code); text != "" {
		return fmt.Sprintf("%d %s", code, text)
	}
	return fmt.Sprintf("%d", code)
}

// apiMessage extracts the "message" field OpenWeatherMap puts in error bodies.
func apiMessage(body io.Reader) string {
	var apiErr struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(body, maxErrorBody)).Decode(&apiErr); err != nil {
		return ""
	}
	return apiErr.Message
}

// classifyTransportError decides between Timeout, ConnectionFailure and
// UnknownRequestError for an error returned by http.Client.Do.
// A failed dial is a connection failure even when it timed out; only
// deadlines hit after the connection is up count as Timeout.
func classifyTransportError(err error) domain.FetchKind {
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return domain.ConnectionFailure
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.Timeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.Timeout
	}

	var dnsErr *net.DNSError
	switch {
	case errors.As(err, &opErr), errors.As(err, &dnsErr):
		return domain.ConnectionFailure
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET):
		return domain.ConnectionFailure
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return domain.ConnectionFailure
	}
	return domain.UnknownRequestError
}
