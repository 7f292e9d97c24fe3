package core

import (
	"fmt"
	"os"
	"time"

	"github.com/juan-rv/tallereval/pkg/models"
	"github.com/spf13/viper"
)

// Config holds the tool-level settings read from .tallerrc.
type Config struct {
	// ServiceBaseURL is the base URL of the scoring service.
	ServiceBaseURL string
	// RequestTimeout bounds each evaluation/synthesis request. Zero means
	// the transport default (no explicit timeout).
	RequestTimeout time.Duration
	// DefaultPopulation seeds new and reset sessions.
	DefaultPopulation models.Population
}

// DefaultConfig returns the settings used when no .tallerrc exists.
func DefaultConfig() *Config {
	return &Config{
		ServiceBaseURL:    "http://localhost:5000",
		RequestTimeout:    0,
		DefaultPopulation: models.PopulationYoung,
	}
}

// LoadConfig reads .tallerrc from the base path using Viper. Missing file
// means defaults; TALLER_SERVICE_URL overrides the configured base URL.
func LoadConfig(basePath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName(".tallerrc")
	v.SetConfigType("yaml")
	v.AddConfigPath(basePath)

	v.SetDefault("service.base_url", cfg.ServiceBaseURL)
	v.SetDefault("service.timeout", cfg.RequestTimeout)
	v.SetDefault("defaults.population", string(cfg.DefaultPopulation))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading .tallerrc: %w", err)
		}
	}

	cfg.ServiceBaseURL = v.GetString("service.base_url")
	cfg.RequestTimeout = v.GetDuration("service.timeout")
	cfg.DefaultPopulation = models.Population(v.GetString("defaults.population"))

	if url := os.Getenv("TALLER_SERVICE_URL"); url != "" {
		cfg.ServiceBaseURL = url
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.ServiceBaseURL == "" {
		return fmt.Errorf("config: service.base_url must not be empty")
	}
	if cfg.RequestTimeout < 0 {
		return fmt.Errorf("config: service.timeout must not be negative, got %s", cfg.RequestTimeout)
	}
	if cfg.DefaultPopulation != models.PopulationYoung && cfg.DefaultPopulation != models.PopulationAdult {
		return fmt.Errorf("config: defaults.population %q is invalid, must be %q or %q",
			cfg.DefaultPopulation, models.PopulationYoung, models.PopulationAdult)
	}
	return nil
}
