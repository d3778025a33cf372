package site

import (
	"path"
	"path/filepath"
	"strings"
)

const (
	notFoundOutput = "404.html"
	sitemapOutput  = "sitemap.xml"
	themeOutput    = "theme"
	highlightCSS   = "highlight.css"
)

// StaticDocumentPath resolves the on-disk HTML file corresponding to a
// request path in the static output.
func (s *Service) StaticDocumentPath(requestPath string) (string, error) {
	route := sanitizeRoute(requestPath)
	if route == "/" {
		return filepath.Join(s.cfg.OutputDir, "index.html"), nil
	}

	trimmed := strings.Trim(route, "/")
	trimmed = strings.TrimSuffix(trimmed, ".html")
	if strings.Contains(trimmed, "/") {
		return "", ErrNotFound
	}
	slug, err := normalizeSlug(trimmed)
	if err != nil {
		return "", err
	}
	// The home page has exactly one URL.
	if routeFor(slug) == "/" {
		return "", ErrNotFound
	}
	return filepath.Join(s.cfg.OutputDir, filepath.FromSlash(outputPathFor(routeFor(slug)))), nil
}

// NotFoundDocumentPath returns the static 404 page path.
func (s *Service) NotFoundDocumentPath() string {
	return filepath.Join(s.cfg.OutputDir, notFoundOutput)
}

// SitemapPath returns the static sitemap path.
func (s *Service) SitemapPath() string {
	return filepath.Join(s.cfg.OutputDir, sitemapOutput)
}

func sanitizeRoute(input string) string {
	route := strings.TrimSpace(input)
	if route == "" {
		return "/"
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	cleaned := path.Clean(route)
	if cleaned == "." {
		cleaned = "/"
	}
	return cleaned
}
