package config

import (
	"errors"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Environment: "dev",
		Service:     "paperboy-digest",
		LogLevel:    "info",
		Server:      ServerConfig{Port: "8080"},
		Email:       EmailConfig{FallbackHTML: "<p>fallback</p>"},
		Worker:      WorkerConfig{Concurrency: 2},
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	noFallback := validConfig()
	noFallback.Email.FallbackHTML = ""
	if err := Validate(noFallback); err == nil {
		t.Error("expected an error for an empty fallback")
	}
}

func TestIsLocal(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"local", true},
		{"LOCAL", true},
		{"dev", false},
		{"prod", false},
	}
	for _, tt := range tests {
		cfg := &Config{Environment: tt.env}
		if got := cfg.IsLocal(); got != tt.want {
			t.Errorf("IsLocal() with %q = %v, want %v", tt.env, got, tt.want)
		}
	}
}

func TestRequireQueue(t *testing.T) {
	cfg := validConfig()

	err := cfg.RequireQueue()
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %v", err)
	}
	if cfgErr.Type != ErrMissingEnv {
		t.Errorf("Type = %s, want %s", cfgErr.Type, ErrMissingEnv)
	}

	cfg.AWS.RenderedDigestQueue = "https://sqs.us-east-1.amazonaws.com/123/rendered"
	if err := cfg.RequireQueue(); err != nil {
		t.Errorf("RequireQueue() error: %v", err)
	}
}
