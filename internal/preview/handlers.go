package preview

import (
	"net/http"
	"strings"

	"paperboy/internal/digest"
	"paperboy/internal/notifications/core"
	"paperboy/internal/render"
	"paperboy/internal/theme"
	"paperboy/internal/types"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
)

// HandlePreview renders the built-in sample digest.
//
// Query parameters:
//   - format=text renders the plain-text body instead of HTML.
//   - safe=true renders through RenderSafe, answering with the configured
//     fallback document instead of an error.
func (s *Server) HandlePreview(w http.ResponseWriter, r *http.Request) {
	s.renderDocument(w, r, digest.Sample())
}

// HandleRender renders a digest posted as JSON. Malformed or invalid digests
// are rejected with 400 before any template runs.
func (s *Server) HandleRender(w http.ResponseWriter, r *http.Request) {
	var d types.DigestEmailData
	if err := DecodeJSON(w, r, &d); err != nil {
		Error(w, r, err)
		return
	}
	if err := digest.Validate(&d); err != nil {
		Error(w, r, err)
		return
	}
	s.renderDocument(w, r, &d)
}

// HandleTheme returns every theme token under its dotted name.
func (s *Server) HandleTheme(w http.ResponseWriter, r *http.Request) {
	JSON(w, r, http.StatusOK, theme.Default().Flatten())
}

func (s *Server) renderDocument(w http.ResponseWriter, r *http.Request, d *types.DigestEmailData) {
	q := r.URL.Query()

	if strings.EqualFold(q.Get("format"), "text") {
		body, err := s.renderer.RenderText(d)
		if err != nil {
			Error(w, r, render.ToAppError(err))
			return
		}
		writeDocument(w, r, contentTypeText, body)
		return
	}

	if q.Get("safe") == "true" {
		writeDocument(w, r, contentTypeHTML, s.renderer.RenderSafe(d, s.fallbackHTML))
		return
	}

	body, err := s.renderer.Render(d)
	if err != nil {
		Error(w, r, render.ToAppError(err))
		return
	}
	writeDocument(w, r, contentTypeHTML, body)
}

// writeDocument writes a rendered body with a strong ETag derived from its
// content hash, answering 304 when the client already holds it.
func writeDocument(w http.ResponseWriter, r *http.Request, contentType, body string) {
	etag := `"` + core.ContentHash(body) + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")

	if matchesETag(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func matchesETag(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
