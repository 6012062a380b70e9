package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/common-nighthawk/go-figure"

	"github.com/smartcity/weather/internal/domain"
)

const (
	bannerTitle = "GoWeather"
	bannerFont  = "slant"
	bannerRule  = "---------------------------------------------------"
)

// Console writes the CLI's human-readable output
type Console struct {
	out     io.Writer
	palette Palette
}

// New creates a console writing to out
func New(out io.Writer, palette Palette) *Console {
	return &Console{out: out, palette: palette}
}

// Banner prints the title art and subtitle
func (c *Console) Banner() {
	art := figure.NewFigure(bannerTitle, bannerFont, true).String()
	c.println(c.palette.Paint(Cyan, art))
	c.println(c.palette.Paint(Yellow, bannerRule))
	c.println(c.palette.Paint(Green, "A simple command-line weather viewer."))
	c.println(c.palette.Paint(Yellow, bannerRule))
}

// Usage prints the invocation help for program
func (c *Console) Usage(program string) {
	c.println("\n" + c.palette.Paint(Bold, "Usage:") + " " + program + " <city_name>")
	c.println(c.palette.Paint(Bold, "Example:") + " " + program + ` "London, UK"`)
}

// Searching announces the outbound request
func (c *Console) Searching(location string) {
	c.println("\n" + c.palette.Paint(DarkCyan, fmt.Sprintf("Searching for weather in %s...", location)))
}

// Report prints a rendered report as is
func (c *Console) Report(text string) {
	_, _ = io.WriteString(c.out, text)
}

// FetchFailed prints the message for a fetch error
func (c *Console) FetchFailed(err error) {
	c.println(c.palette.Paint(Red, "\n"+FetchMessage(err)))
}

// DisplayFailed prints the message for a render error
func (c *Console) DisplayFailed(err error) {
	c.println(c.palette.Paint(Red, DisplayMessage(err)))
}

func (c *Console) println(s string) {
	_, _ = fmt.Fprintln(c.out, s)
}

// FetchMessage returns the user-facing line for a fetch error.
func FetchMessage(err error) string {
	var fe *domain.FetchError
	if !errors.As(err, &fe) {
		return "[ERROR] An unexpected error occurred: " + err.Error()
	}

	switch fe.Kind {
	case domain.MissingCredential:
		return "[ERROR] Please set OPENWEATHER_API_KEY to your actual API key."
	case domain.NotFound:
		return "[ERROR] City not found: " + fe.Location
	case domain.Unauthorized:
		return "[ERROR] Invalid API Key. Please check your key configuration."
	case domain.HTTPError:
		return "[ERROR] HTTP Error occurred: " + fe.Detail
	case domain.ConnectionFailure:
		return "[ERROR] Connection Error. Please check your network and API endpoint."
	case domain.Timeout:
		return "[ERROR] Request timed out."
	default:
		return "[ERROR] An unexpected error occurred: " + strings.TrimSpace(fe.Detail)
	}
}

// DisplayMessage returns the user-facing line for a render error.
func DisplayMessage(err error) string {
	var de *domain.DisplayError
	if errors.As(err, &de) && de.Kind == domain.MissingField {
		return fmt.Sprintf("[ERROR] Data structure error. Missing key: '%s'", de.Field)
	}
	detail := err.Error()
	if de != nil {
		detail = de.Detail
	}
	return "[ERROR] An error occurred while displaying data: " + detail
}
