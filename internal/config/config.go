package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Backend the client core talks to.
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Gateway HTTP server.
	GatewayPort       string
	ServerReadTimeout time.Duration
	ServerIdleTimeout time.Duration
	RequestTimeout    time.Duration
	CORSOrigins       []string
	RateLimitRPM      int
	LoginRateLimitRPM int

	// Session storage. Empty SessionFile keeps the session in process
	// memory; a path makes it shareable with sibling gateway processes.
	SessionFile         string
	SessionPollInterval time.Duration
	StoragePollInterval time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:          getEnv("PITSTOP_API_URL", "http://localhost:3000"),
		HTTPTimeout:         getDuration("PITSTOP_HTTP_TIMEOUT", 30*time.Second),
		GatewayPort:         getEnv("GATEWAY_PORT", "8080"),
		ServerReadTimeout:   getDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		ServerIdleTimeout:   getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		RequestTimeout:      getDuration("REQUEST_TIMEOUT", 30*time.Second),
		CORSOrigins:         splitCSV(getEnv("CORS_ORIGINS", "*")),
		RateLimitRPM:        getInt("RATE_LIMIT_RPM", 120),
		LoginRateLimitRPM:   getInt("LOGIN_RATE_LIMIT_RPM", 10),
		SessionFile:         strings.TrimSpace(os.Getenv("SESSION_FILE")),
		SessionPollInterval: getDuration("SESSION_POLL_INTERVAL", 30*time.Second),
		StoragePollInterval: getDuration("STORAGE_POLL_INTERVAL", time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("PITSTOP_API_URL cannot be empty")
	}

	if c.GatewayPort == "" {
		return fmt.Errorf("GATEWAY_PORT cannot be empty")
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("PITSTOP_HTTP_TIMEOUT must be positive")
	}

	if c.SessionPollInterval <= 0 {
		return fmt.Errorf("SESSION_POLL_INTERVAL must be positive")
	}

	if c.StoragePollInterval <= 0 {
		return fmt.Errorf("STORAGE_POLL_INTERVAL must be positive")
	}

	return nil
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return v
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}
