package site

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/syncronet/athletos-web/config"
	"github.com/syncronet/athletos-web/fallback"
	"github.com/syncronet/athletos-web/renderer"
	"github.com/syncronet/athletos-web/templatex"
	"github.com/syncronet/athletos-web/wpapi"
)

// Home assembles the landing page. The front page and site info are fetched
// concurrently; without a CMS front page the built-in copy stands in.
func (s *Service) Home(ctx context.Context) (*templatex.PageData, error) {
	var front *wpapi.Page
	info, err := s.withSiteInfo(ctx, func(ctx context.Context) {
		front = s.source.FrontPage(ctx)
	})
	if err != nil {
		return nil, err
	}
	return s.homeData(info, front), nil
}

// Page assembles the CMS page for slug. A slug the CMS does not know is
// ErrNotFound.
func (s *Service) Page(ctx context.Context, rawSlug string) (*templatex.PageData, error) {
	slug, err := normalizeSlug(rawSlug)
	if err != nil {
		return nil, err
	}

	var found *wpapi.Page
	info, err := s.withSiteInfo(ctx, func(ctx context.Context) {
		found = s.source.PageBySlug(ctx, slug)
	})
	if err != nil {
		return nil, err
	}

	if found == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	doc := pageFromCMS(*found)
	if doc.Route == "/" {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return s.pageData(info, doc), nil
}

// Services assembles the static platform overview.
func (s *Service) Services(ctx context.Context) (*templatex.PageData, error) {
	info, err := s.withSiteInfo(ctx, nil)
	if err != nil {
		return nil, err
	}
	return s.servicesData(info), nil
}

// Posts assembles the blog listing.
func (s *Service) Posts(ctx context.Context) (*templatex.PageData, error) {
	var posts []wpapi.Post
	info, err := s.withSiteInfo(ctx, func(ctx context.Context) {
		posts = s.source.Posts(ctx, s.listQuery())
	})
	if err != nil {
		return nil, err
	}
	return s.postsData(info, posts), nil
}

// NotFound assembles the themed 404 page for requestedPath.
func (s *Service) NotFound(ctx context.Context, requestedPath string) (*templatex.PageData, error) {
	info, err := s.withSiteInfo(ctx, nil)
	if err != nil {
		return nil, err
	}
	return s.notFoundData(info, requestedPath), nil
}

// RenderHome renders and minifies the landing page.
func (s *Service) RenderHome(ctx context.Context) ([]byte, error) {
	return s.renderWith(s.Home(ctx))
}

// RenderPage renders and minifies the page for slug.
func (s *Service) RenderPage(ctx context.Context, slug string) ([]byte, error) {
	return s.renderWith(s.Page(ctx, slug))
}

// RenderServices renders and minifies the services page.
func (s *Service) RenderServices(ctx context.Context) ([]byte, error) {
	return s.renderWith(s.Services(ctx))
}

// RenderPosts renders and minifies the blog listing.
func (s *Service) RenderPosts(ctx context.Context) ([]byte, error) {
	return s.renderWith(s.Posts(ctx))
}

// RenderNotFoundPage renders a themed 404 page.
func (s *Service) RenderNotFoundPage(ctx context.Context, requestedPath string) ([]byte, error) {
	return s.renderWith(s.NotFound(ctx, requestedPath))
}

func (s *Service) renderWith(data *templatex.PageData, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	return s.render(data)
}

func (s *Service) render(data *templatex.PageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.templates.Render(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", data.ActivePath, err)
	}
	return s.renderer.MinifyHTML(buf.Bytes())
}

func (s *Service) listQuery() wpapi.ListQuery {
	return wpapi.ListQuery{Embed: s.cfg.WordPress.Embed}
}

func (s *Service) homeData(info wpapi.SiteInfo, front *wpapi.Page) *templatex.PageData {
	hero := &templatex.Hero{CTAHref: contactRoute, Stats: heroStats}
	doc := page{Route: "/", OutputPath: "index.html", Title: frontTitle}
	if fb, ok := s.fallback.Get(fallback.FrontPageSlug); ok {
		hero.Title = fb.Title
		hero.Subtitle = fb.PlainText
		doc.Summary = fb.Excerpt
	}
	if front != nil {
		cms := pageFromCMS(*front)
		doc.Title = cms.Title
		doc.HTML = cms.HTML
		doc.Image = cms.Image
		doc.Modified = cms.Modified
		if cms.Summary != "" {
			doc.Summary = cms.Summary
		}
	}

	data := s.pageData(info, doc)
	data.ContentTemplate = templatex.HomeContentTemplate
	data.Meta.OpenGraphType = "website"
	data.Hero = hero
	data.Features = homeFeatures
	data.Services = homeServices
	return data
}

func (s *Service) servicesData(info wpapi.SiteInfo) *templatex.PageData {
	doc := page{Route: servicesRoute, OutputPath: outputPathFor(servicesRoute), Title: servicesTitle, Summary: servicesDesc}
	data := s.pageData(info, doc)
	data.ContentTemplate = templatex.ServicesContentTemplate
	data.Meta.OpenGraphType = "website"
	data.Services = platformServices
	data.Support = supportItems
	return data
}

func (s *Service) postsData(info wpapi.SiteInfo, posts []wpapi.Post) *templatex.PageData {
	doc := page{Route: postsRoute, OutputPath: outputPathFor(postsRoute), Title: postsTitle, Summary: postsDesc}
	if len(posts) == 0 {
		doc.HTML = postsEmpty
	}
	data := s.pageData(info, doc)
	data.ContentTemplate = templatex.PostsContentTemplate
	data.Meta.OpenGraphType = "website"
	data.Posts = make([]templatex.PostSummary, 0, len(posts))
	for _, post := range posts {
		p := pageFromCMS(wpapi.Page(post))
		summary := templatex.PostSummary{
			Title:   p.Title,
			URL:     post.Link,
			Excerpt: p.Summary,
			Image:   p.Image,
		}
		if summary.URL == "" {
			summary.URL = postsRoute + "#" + p.Slug
		}
		summary.Published, summary.PublishedISO = formatDate(p.Published, info)
		data.Posts = append(data.Posts, summary)
	}
	return data
}

func (s *Service) notFoundData(info wpapi.SiteInfo, requestedPath string) *templatex.PageData {
	sanitized := strings.TrimSpace(requestedPath)
	if sanitized != "" {
		sanitized = sanitizeRequestedPath(sanitized)
	}
	description := "Siden, du leder efter, kunne ikke findes."
	if sanitized != "" && sanitized != "/" {
		description = fmt.Sprintf("Siden %s kunne ikke findes.", sanitized)
	}

	data := s.pageData(info, page{Title: notFoundTitle, Summary: description})
	data.ContentTemplate = templatex.NotFoundContentTemplate
	data.ActivePath = ""
	data.RequestedPath = sanitized
	data.Canonical = ""
	data.Breadcrumbs = nil
	data.Meta.OpenGraphType = "website"
	data.Meta.NoIndex = true
	return data
}

func sanitizeRequestedPath(raw string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "/")
	cleaned := path.Clean("/" + trimmed)
	if cleaned == "." || cleaned == "" {
		return "/"
	}
	return cleaned
}

func (s *Service) pageData(info wpapi.SiteInfo, doc page) *templatex.PageData {
	siteName := displaySiteName(info)
	published, publishedISO := formatDate(doc.Published, info)

	data := &templatex.PageData{
		SiteName:        siteName,
		SiteDescription: renderer.PlainText(info.Description),
		Title:           doc.Title,
		TitleHTML:       doc.TitleHTML,
		PageTitle:       pageTitle(doc.Title, siteName),
		ContentHTML:     doc.HTML,
		ContentTemplate: templatex.DefaultContentTemplate,
		ActivePath:      doc.Route,
		RequestedPath:   doc.Route,
		Canonical:       s.absoluteURL(doc.Route),
		Live:            s.cfg.Live,
		Year:            s.now().Year(),
		Menu:            mainMenu,
		Breadcrumbs:     buildBreadcrumbs(doc.Route, doc.Title),
		Image:           doc.Image,
		Published:       published,
		PublishedISO:    publishedISO,
		Contact:         contactFrom(s.cfg.Contact),
	}
	data.Meta = buildMeta(siteName, doc.Summary, doc.Title, "article")
	if doc.Image != nil {
		data.Meta.Image = doc.Image.URL
	}
	return data
}

func contactFrom(c config.ContactConfig) templatex.Contact {
	return templatex.Contact{Email: c.Email, Phone: c.Phone, Address: c.Address}
}

func (s *Service) absoluteURL(route string) string {
	if route == "" {
		return ""
	}
	return s.cfg.BaseURL + route
}

func buildMeta(siteName, summary, fallbackText, ogType string) templatex.Meta {
	if ogType == "" {
		ogType = "website"
	}
	description := metaDescription(summary, fallbackText)
	if description == "" {
		description = siteName
	}
	return templatex.Meta{
		Description:   description,
		OpenGraphType: ogType,
		OpenGraphSite: siteName,
	}
}

func displaySiteName(info wpapi.SiteInfo) string {
	if name := renderer.PlainText(info.Name); name != "" {
		return name
	}
	return wpapi.FallbackSiteName
}

func pageTitle(raw, site string) string {
	title := strings.TrimSpace(raw)
	if title == "" {
		return site
	}
	if site == "" || title == site {
		return title
	}
	return fmt.Sprintf("%s - %s", title, site)
}
