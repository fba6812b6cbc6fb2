package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	if cfg.APIBaseURL == "" {
		t.Fatal("APIBaseURL default missing")
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if cfg.MaxMessageLen != 2000 {
		t.Fatalf("MaxMessageLen = %d", cfg.MaxMessageLen)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("FERRY_API_URL", "https://api.example.test")
	t.Setenv("FERRY_HTTP_TIMEOUT", "10s")
	t.Setenv("FERRY_CHAT_POLL_INTERVAL", "2s")
	t.Setenv("FERRY_MAX_MESSAGE_LEN", "512")

	cfg := Load()
	if cfg.APIBaseURL != "https://api.example.test" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Fatalf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if cfg.PollInterval != 2*time.Second {
		t.Fatalf("PollInterval = %v", cfg.PollInterval)
	}
	if cfg.MaxMessageLen != 512 {
		t.Fatalf("MaxMessageLen = %d", cfg.MaxMessageLen)
	}
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("FERRY_HTTP_TIMEOUT", "soon")
	t.Setenv("FERRY_MAX_MESSAGE_LEN", "lots")

	cfg := Load()
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if cfg.MaxMessageLen != 2000 {
		t.Fatalf("MaxMessageLen = %d", cfg.MaxMessageLen)
	}
}
