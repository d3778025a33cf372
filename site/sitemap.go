package site

import (
	"context"
	"encoding/xml"
	"fmt"
	"sort"
	"time"

	"github.com/syncronet/athletos-web/wpapi"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Sitemap lists the fixed routes and every published CMS page.
func (s *Service) Sitemap(ctx context.Context) ([]byte, error) {
	pages := s.source.Pages(ctx, wpapi.ListQuery{})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.sitemap(pages)
}

func (s *Service) sitemap(pages []wpapi.Page) ([]byte, error) {
	lastMod := make(map[string]time.Time)
	for _, route := range []string{"/", servicesRoute, postsRoute} {
		lastMod[route] = time.Time{}
	}
	for _, p := range pages {
		slug, err := normalizeSlug(p.Slug)
		if err != nil {
			continue
		}
		route := routeFor(slug)
		if t, ok := lastMod[route]; !ok || p.Modified.After(t) {
			lastMod[route] = p.Modified
		}
	}

	routes := make([]string, 0, len(lastMod))
	for route := range lastMod {
		routes = append(routes, route)
	}
	sort.Strings(routes)

	set := sitemapURLSet{Xmlns: sitemapNamespace, URLs: make([]sitemapURL, 0, len(routes))}
	for _, route := range routes {
		entry := sitemapURL{Loc: s.absoluteURL(route)}
		if t := lastMod[route]; !t.IsZero() {
			entry.LastMod = t.UTC().Format("2006-01-02")
		}
		set.URLs = append(set.URLs, entry)
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
