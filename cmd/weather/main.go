package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smartcity/weather/internal/delivery/console"
	"github.com/smartcity/weather/internal/service"
)

const defaultProgram = "weather"

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	cfg := loadConfig()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "weather: %v, falling back to level error\n", err)
		logger, _ = newLogger("error")
	}
	if envErr != nil {
		logger.Debug("no .env file found, using system environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, cfg, console.Stdout(), logger)

	stop()
	_ = logger.Sync()
	os.Exit(code)
}

// run executes one CLI invocation and returns the exit code.
// Only a wrong argument count exits non-zero; handled fetch and display
// errors print their message and exit 0.
func run(ctx context.Context, args []string, cfg *Config, stdout io.Writer, logger *zap.Logger) int {
	palette := console.Palette{Enabled: cfg.Color}
	out := console.New(stdout, palette)
	out.Banner()

	if len(args) != 2 {
		out.Usage(programName(args))
		return 1
	}
	location := args[1]

	fetcher := service.NewWeatherFetcher(cfg.OpenWeatherAPIKey,
		service.WithBaseURL(cfg.BaseURL),
		service.WithLogger(logger),
		service.WithProgress(out.Searching),
	)

	raw, err := fetcher.Fetch(ctx, location)
	if err != nil {
		out.FetchFailed(err)
		return 0
	}

	report, err := console.NewPresenter(console.WithPalette(palette)).Render(raw)
	if err != nil {
		logger.Warn("weather report not rendered", zap.Error(err))
		out.DisplayFailed(err)
		return 0
	}

	out.Report(report)
	return 0
}

func programName(args []string) string {
	if len(args) == 0 || args[0] == "" {
		return defaultProgram
	}
	return filepath.Base(args[0])
}

type Config struct {
	OpenWeatherAPIKey string
	BaseURL           string
	LogLevel          string
	Color             bool
}

func loadConfig() *Config {
	return &Config{
		OpenWeatherAPIKey: getEnv("OPENWEATHER_API_KEY", ""),
		BaseURL:           getEnv("OPENWEATHER_BASE_URL", service.DefaultBaseURL),
		LogLevel:          getEnv("WEATHER_LOG_LEVEL", "error"),
		Color:             console.DetectColor(os.Stdout),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// newLogger builds a stderr logger for diagnostics; report output never goes through it.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid WEATHER_LOG_LEVEL %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.Sampling = nil
	return cfg.Build()
}
