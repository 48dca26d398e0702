package preview

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"paperboy/internal/render"
)

// healthCheckTimeout bounds the time all probes may take together.
const healthCheckTimeout = 2 * time.Second

// HealthProbe checks one dependency the server needs to render.
type HealthProbe interface {
	Name() string
	Check(ctx context.Context) error
}

// TemplateProbe reports unhealthy when a digest template cannot be loaded
// or compiled.
type TemplateProbe struct {
	// Env is the environment to check. Nil means render.Default().
	Env *render.Environment
}

// Name implements HealthProbe.
func (TemplateProbe) Name() string { return "templates" }

// Check implements HealthProbe.
func (p TemplateProbe) Check(ctx context.Context) error {
	env := p.Env
	if env == nil {
		env = render.Default()
	}
	for _, name := range []string{render.DigestTemplate, render.DigestTextTemplate} {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := env.GetTemplate(name); err != nil {
			return err
		}
	}
	return nil
}

type componentStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type healthResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components,omitempty"`
}

// HandleHealth runs every probe concurrently under a short deadline. It
// answers 200 when all probes pass and 503 when any fails or times out.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if len(s.probes) == 0 {
		JSON(w, r, http.StatusOK, healthResponse{Status: "healthy"})
		return
	}

	var (
		mu      sync.Mutex
		results = make(map[string]error, len(s.probes))
		wg      sync.WaitGroup
	)

	for _, probe := range s.probes {
		wg.Add(1)
		go func(p HealthProbe) {
			defer wg.Done()

			var err error
			func() {
				defer func() {
					if rec := recover(); rec != nil {
						err = fmt.Errorf("probe panicked: %v", rec)
					}
				}()
				err = p.Check(ctx)
			}()

			mu.Lock()
			results[p.Name()] = err
			mu.Unlock()
		}(probe)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}

	mu.Lock()
	defer mu.Unlock()

	components := make(map[string]componentStatus, len(s.probes))
	healthy := true
	for _, probe := range s.probes {
		name := probe.Name()
		err, finished := results[name]
		switch {
		case !finished:
			healthy = false
			components[name] = componentStatus{Status: "unhealthy", Message: "health check timed out"}
		case err != nil:
			healthy = false
			components[name] = componentStatus{Status: "unhealthy", Message: err.Error()}
		default:
			components[name] = componentStatus{Status: "healthy"}
		}
	}

	if healthy {
		JSON(w, r, http.StatusOK, healthResponse{Status: "healthy", Components: components})
		return
	}
	JSON(w, r, http.StatusServiceUnavailable, healthResponse{Status: "unhealthy", Components: components})
}
