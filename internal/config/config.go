package config

import (
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	// APIBaseURL is the restaurant backend all requests are made against.
	APIBaseURL string

	// StateDir holds the client-local session file (tokens, guest id,
	// pending order draft).
	StateDir string

	// ReturnAddr is the listen address for the local payment-return server.
	ReturnAddr string

	// PollInterval is how often order status views refresh.
	PollInterval time.Duration
}

func Load() *Config {
	return &Config{
		APIBaseURL:   getEnv("SMARTDINE_API_URL", "http://localhost:8080"),
		StateDir:     getEnv("SMARTDINE_STATE_DIR", defaultStateDir()),
		ReturnAddr:   getEnv("SMARTDINE_RETURN_ADDR", ":8735"),
		PollInterval: getDuration("SMARTDINE_POLL_INTERVAL", 5*time.Second),
	}
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".smartdine"
	}
	return filepath.Join(home, ".smartdine")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
