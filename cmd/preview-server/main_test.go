package main

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperboy/internal/config"
)

func TestNewServer_ServesPreview(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0"},
		Email:  config.EmailConfig{FallbackHTML: "<p>fallback</p>"},
	}

	srv, err := newServer(cfg, newLogger("error"))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"templates":{"status":"healthy"}`)

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/preview", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level   string
		enabled bool
	}{
		{level: "debug", enabled: true},
		{level: "info", enabled: false},
		{level: "", enabled: false},
	}
	for _, tt := range tests {
		logger := newLogger(tt.level)
		assert.Equal(t, tt.enabled, logger.Enabled(t.Context(), slog.LevelDebug), tt.level)
	}
}
