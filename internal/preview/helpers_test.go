package preview

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"paperboy/internal/render"
)

const testFallback = "<p>digest unavailable</p>"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestServer returns a server rendering with the embedded templates.
func newTestServer(t *testing.T, probes ...HealthProbe) *Server {
	t.Helper()
	return newTestServerWithRenderer(t, render.NewRenderer(render.RendererConfig{}), probes...)
}

// newBrokenServer returns a server whose environment holds no templates.
func newBrokenServer(t *testing.T) *Server {
	t.Helper()
	env := render.NewEnvironment(fstest.MapFS{}, "tmpl")
	return newTestServerWithRenderer(t, render.NewRenderer(render.RendererConfig{Environment: env}))
}

func newTestServerWithRenderer(t *testing.T, r *render.Renderer, probes ...HealthProbe) *Server {
	t.Helper()
	srv, err := NewServer(Config{
		Renderer:     r,
		Logger:       discardLogger(),
		FallbackHTML: testFallback,
		HealthProbes: probes,
	})
	require.NoError(t, err)
	return srv
}

// stubProbe implements HealthProbe for tests.
type stubProbe struct {
	name  string
	err   error
	delay time.Duration
}

func (p stubProbe) Name() string { return p.name }

func (p stubProbe) Check(ctx context.Context) error {
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return p.err
}
