package console

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/smartcity/weather/internal/domain"
	"github.com/smartcity/weather/pkg/utils"
)

const reportRule = "=============================================="

// Presenter renders a current-weather response as the fixed report layout
type Presenter struct {
	palette  Palette
	location *time.Location
}

// PresenterOption configures a Presenter.
type PresenterOption func(*Presenter)

// WithPalette sets the colour palette (default: plain text).
func WithPalette(p Palette) PresenterOption {
	return func(pr *Presenter) {
		pr.palette = p
	}
}

// WithLocation sets the zone sunrise and sunset are shown in (default: time.Local).
func WithLocation(loc *time.Location) PresenterOption {
	return func(pr *Presenter) {
		pr.location = loc
	}
}

// NewPresenter creates a new presenter
func NewPresenter(opts ...PresenterOption) *Presenter {
	p := &Presenter{location: time.Local}
	for _, opt := range opts {
		opt(p)
	}
	if p.location == nil {
		p.location = time.Local
	}
	return p
}

// Render extracts every required field from raw, then formats the report.
// Nothing is returned on error, so a partial report is never printed.
func (p *Presenter) Render(raw domain.RawWeather) (string, error) {
	report, err := p.Extract(raw)
	if err != nil {
		return "", err
	}
	return p.Format(report), nil
}

// Extract reads the required fields in display order.
// The first absent key yields a MissingField error naming it.
func (p *Presenter) Extract(raw domain.RawWeather) (domain.WeatherReport, error) {
	var r domain.WeatherReport
	root := map[string]any(raw)

	var err error
	if r.City, err = stringField(root, "name"); err != nil {
		return r, err
	}
	sys, err := objectField(root, "sys")
	if err != nil {
		return r, err
	}
	if r.Country, err = stringField(sys, "country"); err != nil {
		return r, err
	}

	main, err := objectField(root, "main")
	if err != nil {
		return r, err
	}
	if r.Temperature, _, err = numberField(main, "temp"); err != nil {
		return r, err
	}
	if r.FeelsLike, _, err = numberField(main, "feels_like"); err != nil {
		return r, err
	}
	if _, r.Humidity, err = numberField(main, "humidity"); err != nil {
		return r, err
	}
	if _, r.Pressure, err = numberField(main, "pressure"); err != nil {
		return r, err
	}

	condition, err := firstCondition(root)
	if err != nil {
		return r, err
	}
	description, err := stringField(condition, "description")
	if err != nil {
		return r, err
	}
	r.Description = utils.Capitalize(description)

	wind, err := objectField(root, "wind")
	if err != nil {
		return r, err
	}
	if _, r.WindSpeed, err = numberField(wind, "speed"); err != nil {
		return r, err
	}

	sunrise, err := epochField(sys, "sunrise")
	if err != nil {
		return r, err
	}
	sunset, err := epochField(sys, "sunset")
	if err != nil {
		return r, err
	}
	r.Sunrise = time.Unix(sunrise, 0).In(p.location)
	r.Sunset = time.Unix(sunset, 0).In(p.location)

	return r, nil
}

// Format lays out an already extracted report.
func (p *Presenter) Format(r domain.WeatherReport) string {
	var b strings.Builder
	label := func(s string) string { return p.palette.Paint(Blue, s) }

	b.WriteString(p.palette.Paint(Yellow, "\n"+reportRule) + "\n")
	b.WriteString(p.palette.Paint(Bold, r.City+", "+r.Country) + "\n")
	b.WriteString(p.palette.Paint(Yellow, reportRule) + "\n")

	fmt.Fprintf(&b, "🌡️  %s %.1f°C (Feels like: %.1f°C)\n", label("Temperature:"), r.Temperature, r.FeelsLike)
	fmt.Fprintf(&b, "☁️  %s %s\n", label("Condition:  "), r.Description)
	fmt.Fprintf(&b, "💧  %s %s%%\n", label("Humidity:   "), r.Humidity)
	fmt.Fprintf(&b, "💨  %s %s m/s\n", label("Wind Speed: "), r.WindSpeed)
	fmt.Fprintf(&b, "⏱️  %s %s hPa\n", label("Pressure:   "), r.Pressure)
	fmt.Fprintf(&b, "🌅  %s %s\n", label("Sunrise:    "), r.Sunrise.Format("15:04:05"))
	fmt.Fprintf(&b, "🌇  %s %s\n", label("Sunset:     "), r.Sunset.Format("15:04:05"))

	b.WriteString(p.palette.Paint(Yellow, reportRule) + "\n")
	return b.String()
}

func missing(key string) error {
	return &domain.DisplayError{Kind: domain.MissingField, Field: key}
}

func unexpected(format string, args ...any) error {
	return &domain.DisplayError{Kind: domain.Unexpected, Detail: fmt.Sprintf(format, args...)}
}

func objectField(obj map[string]any, key string) (map[string]any, error) {
	v, ok := obj[key]
	if !ok {
		return nil, missing(key)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, unexpected("%s: expected an object, got %T", key, v)
	}
	return m, nil
}

func stringField(obj map[string]any, key string) (string, error) {
	v, ok := obj[key]
	if !ok {
		return "", missing(key)
	}
	s, ok := v.(string)
	if !ok {
		return "", unexpected("%s: expected a string, got %T", key, v)
	}
	return s, nil
}

// numberField returns the value and the text it should be displayed as.
func numberField(obj map[string]any, key string) (float64, string, error) {
	v, ok := obj[key]
	if !ok {
		return 0, "", missing(key)
	}
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, "", unexpected("%s: %v", key, err)
		}
		return f, n.String(), nil
	case float64:
		return n, strconv.FormatFloat(n, 'f', -1, 64), nil
	case int:
		return float64(n), strconv.Itoa(n), nil
	case int64:
		return float64(n), strconv.FormatInt(n, 10), nil
	default:
		return 0, "", unexpected("%s: expected a number, got %T", key, v)
	}
}

// Timestamps are limited to years 1 through 9999.
const (
	minEpoch = -62135596800
	maxEpoch = 253402300799
)

func epochField(obj map[string]any, key string) (int64, error) {
	v, ok := obj[key]
	if !ok {
		return 0, missing(key)
	}
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			if i < minEpoch || i > maxEpoch {
				return 0, unexpected("%s: timestamp %d out of range", key, i)
			}
			return i, nil
		}
	}
	f, _, err := numberField(obj, key)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || f < minEpoch || f >= maxEpoch+1 {
		return 0, unexpected("%s: timestamp %v out of range", key, f)
	}
	return int64(math.Floor(f)), nil
}

func firstCondition(root map[string]any) (map[string]any, error) {
	v, ok := root["weather"]
	if !ok {
		return nil, missing("weather")
	}
	list, ok := v.([]any)
	if !ok {
		return nil, unexpected("weather: expected a list, got %T", v)
	}
	if len(list) == 0 {
		return nil, unexpected("weather: condition list is empty")
	}
	first, ok := list[0].(map[string]any)
	if !ok {
		return nil, unexpected("weather[0]: expected an object, got %T", list[0])
	}
	return first, nil
}
