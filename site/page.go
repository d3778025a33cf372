package site

import (
	"html/template"
	"path"
	"strings"
	"time"

	"github.com/syncronet/athletos-web/fallback"
	"github.com/syncronet/athletos-web/renderer"
	"github.com/syncronet/athletos-web/templatex"
	"github.com/syncronet/athletos-web/wpapi"
)

type page struct {
	Slug       string
	Route      string
	OutputPath string
	Title      string
	TitleHTML  template.HTML
	HTML       template.HTML
	Summary    string
	Image      *templatex.Image
	Published  time.Time
	Modified   time.Time
}

func pageFromCMS(p wpapi.Page) page {
	title := renderer.PlainText(p.Title)
	if title == "" {
		title = renderer.TitleFromSlug(p.Slug)
	}
	summary := renderer.PlainText(p.Excerpt)
	if summary == "" {
		summary = renderer.PlainText(p.Content)
	}
	doc := page{
		Slug:      p.Slug,
		Route:     routeFor(p.Slug),
		Title:     title,
		TitleHTML: template.HTML(p.Title),
		HTML:      template.HTML(p.Content),
		Summary:   summarize(summary),
		Published: p.Published,
		Modified:  p.Modified,
	}
	doc.OutputPath = outputPathFor(doc.Route)
	if m := p.FeaturedMedia; m != nil && m.SourceURL != "" {
		doc.Image = &templatex.Image{URL: m.SourceURL, Alt: m.AltText}
	}
	return doc
}

func routeFor(slug string) string {
	if slug == "" || slug == fallback.FrontPageSlug {
		return "/"
	}
	return "/" + strings.Trim(slug, "/")
}

func outputPathFor(route string) string {
	if route == "/" {
		return "index.html"
	}
	return path.Join(strings.TrimPrefix(route, "/"), "index.html")
}
