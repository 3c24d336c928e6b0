package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tropicaldog17/appa/internal/db"
)

// Config holds all runtime settings. Values come from the environment (after
// an optional .env file) and may be overridden by a YAML file.
type Config struct {
	Port              string        `yaml:"port"`
	LogEnv            string        `yaml:"log_env"`
	APIBaseURL        string        `yaml:"api_base_url"`
	APITimeout        time.Duration `yaml:"api_timeout"`
	PriceRateLimit    float64       `yaml:"price_rate_limit"`
	PriceRateBurst    int           `yaml:"price_rate_burst"`
	PriceResponsePath string        `yaml:"price_response_path"`
	MarketTimezone    string        `yaml:"market_timezone"`
	SessionTTL        time.Duration `yaml:"session_ttl"`
	Cache             db.Config     `yaml:"cache"`
}

// Load reads .env (if present), the environment, and then the YAML file at
// path when path is not empty.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		Port:              getEnv("SERVER_PORT", "8080"),
		LogEnv:            getEnv("LOG_ENV", os.Getenv("APP_ENV")),
		APIBaseURL:        getEnv("API_BASE_URL", "http://localhost:8080/api"),
		APITimeout:        getDuration("API_TIMEOUT", 10*time.Second),
		PriceRateLimit:    getFloat("PRICE_RATE_LIMIT", 5),
		PriceRateBurst:    getInt("PRICE_RATE_BURST", 5),
		PriceResponsePath: getEnv("PRICE_RESPONSE_PATH", "$.price"),
		MarketTimezone:    getEnv("MARKET_TIMEZONE", "America/New_York"),
		SessionTTL:        getDuration("SESSION_TTL", 30*time.Minute),
		Cache:             *db.NewConfig(),
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that have no usable fallback.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url is required")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive, got %s", c.SessionTTL)
	}
	if c.PriceRateBurst < 1 {
		return fmt.Errorf("price_rate_burst must be at least 1, got %d", c.PriceRateBurst)
	}
	if c.PriceResponsePath == "" {
		return fmt.Errorf("price_response_path is required")
	}
	return nil
}

// Location returns the market time zone, falling back to UTC when the zone
// database does not know it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.MarketTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return f
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if i, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return i
	}
	return defaultValue
}
