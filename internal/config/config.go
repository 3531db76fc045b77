package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultSource is where the document is read from when nothing is configured.
const DefaultSource = "mock_data.json"

// Config holds environment-backed defaults. Command-line flags override it.
type Config struct {
	Source      string        `env:"BINGO_SOURCE" envDefault:"mock_data.json"`
	Format      string        `env:"BINGO_FORMAT" envDefault:"json"`
	LogLevel    string        `env:"BINGO_LOG_LEVEL" envDefault:"info"`
	LogFile     string        `env:"BINGO_LOG_FILE"`
	LogEncoding string        `env:"BINGO_LOG_ENCODING" envDefault:"console"`
	HTTPTimeout time.Duration `env:"BINGO_HTTP_TIMEOUT" envDefault:"15s"`
}

// Load reads Config from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
