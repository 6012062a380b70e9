package console

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/smartcity/weather/internal/domain"
	"github.com/smartcity/weather/internal/owmtest"
)

// decode round-trips a fixture through JSON so numbers arrive as they would from the API.
func decode(t *testing.T, v any) domain.RawWeather {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	raw, err := domain.DecodeRawWeather(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return raw
}

const londonReport = `
==============================================
London, GB
==============================================
🌡️  Temperature: 15.2°C (Feels like: 14.0°C)
☁️  Condition:   Clear sky
💧  Humidity:    80%
💨  Wind Speed:  3.1 m/s
⏱️  Pressure:    1012 hPa
🌅  Sunrise:     22:13:20
🌇  Sunset:      09:20:00
==============================================
`

func TestRenderLondon(t *testing.T) {
	p := NewPresenter(WithLocation(time.UTC))

	got, err := p.Render(decode(t, owmtest.London()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != londonReport {
		t.Fatalf("report mismatch\n got: %q\nwant: %q", got, londonReport)
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	p := NewPresenter(WithLocation(time.UTC), WithPalette(Palette{Enabled: true}))
	raw := decode(t, owmtest.London())

	first, err := p.Render(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.Render(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("render is not deterministic:\n%q\n%q", first, second)
	}
}

func TestRenderColour(t *testing.T) {
	p := NewPresenter(WithLocation(time.UTC), WithPalette(Palette{Enabled: true}))

	got, err := p.Render(decode(t, owmtest.London()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, string(Bold)+"London, GB"+reset) {
		t.Fatalf("expected bold header, got %q", got)
	}
	if !strings.Contains(got, string(Blue)+"Temperature:"+reset+" 15.2°C") {
		t.Fatalf("expected blue temperature label, got %q", got)
	}
}

func TestRenderLocalTimeZone(t *testing.T) {
	p := NewPresenter(WithLocation(time.FixedZone("UTC+2", 2*60*60)))

	got, err := p.Render(decode(t, owmtest.London()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "Sunrise:     00:13:20") || !strings.Contains(got, "Sunset:      11:20:00") {
		t.Fatalf("expected shifted clock times, got %q", got)
	}
}

func TestRenderKeepsNumericText(t *testing.T) {
	raw := decode(t, owmtest.London())
	raw["main"].(map[string]any)["humidity"] = json.Number("80.5")
	raw["wind"] = map[string]any{"speed": json.Number("5")}

	got, err := NewPresenter(WithLocation(time.UTC)).Render(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "Humidity:    80.5%") || !strings.Contains(got, "Wind Speed:  5 m/s") {
		t.Fatalf("numbers not rendered as sent: %q", got)
	}
}

func TestRenderMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		strip func(m map[string]any)
		field string
	}{
		{"name", func(m map[string]any) { delete(m, "name") }, "name"},
		{"sys", func(m map[string]any) { delete(m, "sys") }, "sys"},
		{"main", func(m map[string]any) { delete(m, "main") }, "main"},
		{"feels like", func(m map[string]any) { delete(m["main"].(map[string]any), "feels_like") }, "feels_like"},
		{"weather", func(m map[string]any) { delete(m, "weather") }, "weather"},
		{"description", func(m map[string]any) { m["weather"] = []any{map[string]any{"icon": "01d"}} }, "description"},
		{"wind", func(m map[string]any) { delete(m, "wind") }, "wind"},
		{"sunset", func(m map[string]any) { delete(m["sys"].(map[string]any), "sunset") }, "sunset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := decode(t, owmtest.London())
			tt.strip(raw)

			got, err := NewPresenter().Render(raw)
			if got != "" {
				t.Fatalf("expected no output, got %q", got)
			}
			if !errors.Is(err, domain.ErrMissingField) {
				t.Fatalf("expected MissingField, got %v", err)
			}
			var de *domain.DisplayError
			if !errors.As(err, &de) || de.Field != tt.field {
				t.Fatalf("expected field %q, got %v", tt.field, err)
			}
		})
	}
}

func TestRenderUnexpectedShapes(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m map[string]any)
	}{
		{"empty condition list", func(m map[string]any) { m["weather"] = []any{} }},
		{"main not an object", func(m map[string]any) { m["main"] = "warm" }},
		{"temp not a number", func(m map[string]any) { m["main"].(map[string]any)["temp"] = "hot" }},
		{"null country", func(m map[string]any) { m["sys"].(map[string]any)["country"] = nil }},
		{"sunrise overflows", func(m map[string]any) { m["sys"].(map[string]any)["sunrise"] = json.Number("1e300") }},
		{"sunset past year 9999", func(m map[string]any) { m["sys"].(map[string]any)["sunset"] = json.Number("99999999999999") }},
		{"sunrise before year 1", func(m map[string]any) { m["sys"].(map[string]any)["sunrise"] = json.Number("-7e10") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := decode(t, owmtest.London())
			tt.mutate(raw)

			got, err := NewPresenter().Render(raw)
			if got != "" {
				t.Fatalf("expected no output, got %q", got)
			}
			if !errors.Is(err, domain.ErrUnexpected) {
				t.Fatalf("expected Unexpected, got %v", err)
			}
		})
	}
}

func TestExtractReport(t *testing.T) {
	r, err := NewPresenter(WithLocation(time.UTC)).Extract(decode(t, owmtest.London()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.City != "London" || r.Country != "GB" || r.Description != "Clear sky" {
		t.Fatalf("unexpected report: %+v", r)
	}
	if r.Temperature != 15.2 || r.FeelsLike != 14.0 {
		t.Fatalf("unexpected temperatures: %v / %v", r.Temperature, r.FeelsLike)
	}
	if !r.Sunrise.Equal(time.Unix(1700000000, 0)) {
		t.Fatalf("unexpected sunrise: %v", r.Sunrise)
	}
}
