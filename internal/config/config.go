// Package config loads service configuration from config/{ENV_NAME}.yaml
// with environment variable overrides. Open-Meteo requires no API key, so
// a missing config file falls back to defaults rather than failing.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds service configuration loaded from YAML and env.
type Config struct {
	ServerHost string
	ServerPort string

	GeocodingURL  string
	ForecastURL   string
	AirQualityURL string

	RequestTimeout time.Duration

	RateLimitRPS   int
	RateLimitBurst int

	ShutdownTimeout time.Duration

	TrackedCities []string
}

type fileConfig struct {
	Server struct {
		Host string `yaml:"host"`
		Port string `yaml:"port"`
	} `yaml:"server"`

	OpenMeteo struct {
		GeocodingURL  string `yaml:"geocoding_url"`
		ForecastURL   string `yaml:"forecast_url"`
		AirQualityURL string `yaml:"air_quality_url"`
		Timeout       string `yaml:"timeout"`
	} `yaml:"open_meteo"`

	Reliability struct {
		RateLimitRPS   int `yaml:"rate_limit_rps"`
		RateLimitBurst int `yaml:"rate_limit_burst"`
	} `yaml:"reliability"`

	Shutdown struct {
		Timeout string `yaml:"timeout"`
	} `yaml:"shutdown"`

	Metrics struct {
		TrackedCities []string `yaml:"tracked_cities"`
	} `yaml:"metrics"`
}

// Load reads configuration from config/{ENV_NAME}.yaml (default dev),
// relative to the working directory. A missing file yields the defaults.
func Load() (*Config, error) {
	env := os.Getenv("ENV_NAME")
	if env == "" {
		env = "dev"
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("config: get working directory: %w", err)
	}
	return loadFile(filepath.Join(cwd, "config", env+".yaml"))
}

func loadFile(configPath string) (*Config, error) {
	var fc fileConfig
	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.ServerHost = firstNonEmpty(os.Getenv("SERVER_HOST"), fc.Server.Host, "127.0.0.1")
	cfg.ServerPort = firstNonEmpty(os.Getenv("SERVER_PORT"), fc.Server.Port, "8000")

	cfg.GeocodingURL = strings.TrimSpace(fc.OpenMeteo.GeocodingURL)
	cfg.ForecastURL = strings.TrimSpace(fc.OpenMeteo.ForecastURL)
	cfg.AirQualityURL = strings.TrimSpace(fc.OpenMeteo.AirQualityURL)

	cfg.RequestTimeout = parseDuration(fc.OpenMeteo.Timeout, 30*time.Second)

	cfg.RateLimitRPS = fc.Reliability.RateLimitRPS
	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = 100
	}
	cfg.RateLimitBurst = fc.Reliability.RateLimitBurst
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = 250
	}

	cfg.ShutdownTimeout = parseDuration(fc.Shutdown.Timeout, 30*time.Second)

	cfg.TrackedCities = fc.Metrics.TrackedCities

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// parseDuration parses a duration string, returning defaultVal on empty
// string, parse error, or a non-positive result.
func parseDuration(s string, defaultVal time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}
