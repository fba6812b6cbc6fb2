// Package config loads client configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	APIBaseURL    string
	HTTPTimeout   time.Duration
	RedisAddr     string
	SessionTTL    time.Duration
	PollInterval  time.Duration
	MaxMessageLen int
}

func Load() Config {
	return Config{
		APIBaseURL:    getenv("FERRY_API_URL", "http://localhost:8080"),
		HTTPTimeout:   getenvDuration("FERRY_HTTP_TIMEOUT", 30*time.Second),
		RedisAddr:     getenv("FERRY_REDIS_ADDR", ""),
		SessionTTL:    getenvDuration("FERRY_SESSION_TTL", 0),
		PollInterval:  getenvDuration("FERRY_CHAT_POLL_INTERVAL", 5*time.Second),
		MaxMessageLen: getenvInt("FERRY_MAX_MESSAGE_LEN", 2000),
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}
