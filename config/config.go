package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL         string
	APITimeout         time.Duration
	SessionFile        string
	LogFile            string
	LogLevel           string
	ServerPort         string
	CORSOrigin         string
	BreakerMaxFailures uint32
	BreakerTimeout     time.Duration
	RateLimit          float64
	RateBurst          int
}

// Load reads envFile (when present) into the environment and builds the
// configuration from it.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		APIBaseURL:  os.Getenv("API_BASE_URL"),
		SessionFile: getEnv("SESSION_FILE", "session.json"),
		LogFile:     os.Getenv("LOG_FILE"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		CORSOrigin:  getEnv("CORS_ORIGIN", "*"),
	}
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is not set")
	}

	var err error
	if cfg.APITimeout, err = getDuration("API_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.BreakerTimeout, err = getDuration("BREAKER_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}

	failures, err := getInt("BREAKER_MAX_FAILURES", 3)
	if err != nil {
		return nil, err
	}
	cfg.BreakerMaxFailures = uint32(failures)

	if cfg.RateBurst, err = getInt("RATE_BURST", 20); err != nil {
		return nil, err
	}
	rps, err := getInt("RATE_LIMIT", 10)
	if err != nil {
		return nil, err
	}
	cfg.RateLimit = float64(rps)

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}
