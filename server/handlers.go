package server

import (
	"bytes"
	"crypto/subtle"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	slogctx "github.com/veqryn/slog-context"

	"github.com/syncronet/athletos-web/site"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	html, err := s.svc.RenderHome(r.Context())
	s.respondDocument(w, r, html, err)
}

func (s *Server) handleServices(w http.ResponseWriter, r *http.Request) {
	html, err := s.svc.RenderServices(r.Context())
	s.respondDocument(w, r, html, err)
}

func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	html, err := s.svc.RenderPosts(r.Context())
	s.respondDocument(w, r, html, err)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	html, err := s.svc.RenderPage(r.Context(), r.PathValue("slug"))
	s.respondDocument(w, r, html, err)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if !allowReadMethod(r.Method) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.respondNotFound(w, r)
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	payload, err := s.svc.Sitemap(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeBody(w, http.StatusOK, "application/xml; charset=utf-8", payload)
}

func (s *Server) handleHighlightCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	http.ServeContent(w, r, "highlight.css", time.Time{}, bytes.NewReader(s.svc.HighlightCSS()))
}

func (s *Server) handleThemeAsset(w http.ResponseWriter, r *http.Request) {
	assets := s.svc.ThemeAssets()
	name := strings.TrimPrefix(r.URL.Path, "/theme/")
	if assets == nil || name == "" || !fs.ValidPath(name) {
		s.respondNotFound(w, r)
		return
	}
	data, err := fs.ReadFile(assets, name)
	if err != nil {
		s.respondNotFound(w, r)
		return
	}
	if data, err = s.svc.MinifyAsset(name, data); err != nil {
		s.respondError(w, r, err)
		return
	}
	http.ServeContent(w, r, path.Base(name), time.Time{}, bytes.NewReader(data))
}

// handleStatic serves the exported site from OutputDir.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if !allowReadMethod(r.Method) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.tryStatic(w, r) {
		return
	}
	target, err := s.svc.StaticDocumentPath(r.URL.Path)
	if err == nil {
		if info, statErr := os.Stat(target); statErr == nil && !info.IsDir() {
			payload, readErr := os.ReadFile(target)
			if readErr != nil {
				s.respondError(w, r, readErr)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			http.ServeContent(w, r, filepath.Base(target), info.ModTime(), bytes.NewReader(payload))
			return
		}
	}
	s.serveStaticNotFound(w, r)
}

func (s *Server) serveStaticNotFound(w http.ResponseWriter, r *http.Request) {
	payload, err := os.ReadFile(s.svc.NotFoundDocumentPath())
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeBody(w, http.StatusNotFound, "text/html; charset=utf-8", payload)
}

func (s *Server) tryStatic(w http.ResponseWriter, r *http.Request) bool {
	clean := sanitizeRequestPath(r.URL.Path)
	if clean == "/" {
		return false
	}
	ext := strings.ToLower(filepath.Ext(clean))
	if ext == "" || ext == ".html" {
		return false
	}
	target := filepath.Join(s.cfg.OutputDir, filepath.FromSlash(strings.TrimPrefix(clean, "/")))
	if !isWithin(s.cfg.OutputDir, target) {
		return false
	}
	info, err := os.Stat(target)
	if err != nil || info.IsDir() {
		return false
	}
	http.ServeFile(w, r, target)
	return true
}

func (s *Server) handleWebhookRebuild(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.Webhook.Enabled {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if !allowWebhookMethod(r.Method) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.authorizeWebhook(r) {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx := r.Context()
	if err := s.svc.Rebuild(ctx); err != nil {
		slogctx.FromCtx(ctx).ErrorContext(ctx, "webhook rebuild", "error", err)
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "rebuilt"})
}

func (s *Server) respondDocument(w http.ResponseWriter, r *http.Request, html []byte, err error) {
	if err != nil {
		if errors.Is(err, site.ErrNotFound) || errors.Is(err, site.ErrInvalidSlug) {
			s.respondNotFound(w, r)
			return
		}
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	writeBody(w, http.StatusOK, "text/html; charset=utf-8", html)
}

func (s *Server) respondNotFound(w http.ResponseWriter, r *http.Request) {
	payload, err := s.svc.RenderNotFoundPage(r.Context(), r.URL.Path)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeBody(w, http.StatusNotFound, "text/html; charset=utf-8", payload)
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	slogctx.FromCtx(ctx).ErrorContext(ctx, "render", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

func allowReadMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

func allowWebhookMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPost:
		return true
	default:
		return false
	}
}

func (s *Server) authorizeWebhook(r *http.Request) bool {
	secret := strings.TrimSpace(s.cfg.Webhook.Secret)
	if secret == "" {
		return true
	}

	token := strings.TrimSpace(r.Header.Get("Authorization"))
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(secret)) == 1
}

func isWithin(base, target string) bool {
	baseAbs, err := filepath.Abs(base)
	if err != nil {
		return false
	}
	targetAbs, err := filepath.Abs(target)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(baseAbs, targetAbs)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return false
	}
	return true
}

func sanitizeRequestPath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	clean := path.Clean(p)
	if clean == "." {
		return "/"
	}
	return clean
}
