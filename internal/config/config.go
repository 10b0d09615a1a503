package config

import (
	"os"
	"strconv"

	"gopower/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Config carries the runtime configuration of the calculator CLI.
// The engine itself takes everything through its parameter struct;
// config only shapes the calling boundary (defaults, output, logging).
type Config struct {
	OutputDir string         `validate:"required"`
	LogLevel  string         `validate:"omitempty,oneof=ERROR WARN INFO DEBUG"`
	Defaults  DefaultsConfig `validate:"required"`
}

// DefaultsConfig holds the parameter defaults the CLI applies when a
// flag is omitted. The dropout inflation is deliberately absent: it is
// a fixed policy constant of the engine, not configuration.
type DefaultsConfig struct {
	TestType string  `validate:"required"`
	Alpha    float64 `validate:"gt=0,lt=1"`
	Power    float64 `validate:"gt=0,lt=1"`
	Groups   int     `validate:"gte=2"`
}

var validate = validator.New()

// Load reads configuration from environment variables, applying
// defaults for anything unset, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		OutputDir: getEnv("GOPOWER_OUTPUT_DIR", "."),
		LogLevel:  getEnv("LOG_LEVEL", "INFO"),
		Defaults: DefaultsConfig{
			TestType: getEnv("GOPOWER_DEFAULT_TEST", "two-sample t-test"),
			Alpha:    getEnvFloat("GOPOWER_DEFAULT_ALPHA", 0.05),
			Power:    getEnvFloat("GOPOWER_DEFAULT_POWER", 0.80),
			Groups:   getEnvInt("GOPOWER_DEFAULT_GROUPS", 2),
		},
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid(err.Error()), "invalid configuration")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
