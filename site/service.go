package site

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/syncronet/athletos-web/config"
	"github.com/syncronet/athletos-web/fallback"
	"github.com/syncronet/athletos-web/renderer"
	"github.com/syncronet/athletos-web/templatex"
	"github.com/syncronet/athletos-web/wpapi"
)

// Service assembles route data from the CMS and the built-in copy and
// renders it through the theme.
type Service struct {
	cfg       *config.Config
	source    ContentSource
	templates *templatex.Engine
	renderer  *renderer.Renderer
	fallback  *fallback.Library
	highlight []byte
	now       func() time.Time
	builds    singleflight.Group
}

// NewService constructs a Service instance.
func NewService(cfg *config.Config, source ContentSource, templates *templatex.Engine) (*Service, error) {
	rend := renderer.New()
	lib, err := fallback.Load(rend)
	if err != nil {
		return nil, fmt.Errorf("load fallback copy: %w", err)
	}
	css, err := renderer.HighlightCSS(renderer.DefaultHighlightStyle)
	if err != nil {
		return nil, err
	}
	if css, err = rend.MinifyCSS(css); err != nil {
		return nil, err
	}
	return &Service{
		cfg:       cfg,
		source:    source,
		templates: templates,
		renderer:  rend,
		fallback:  lib,
		highlight: css,
		now:       time.Now,
	}, nil
}

// HighlightCSS returns the minified code highlighting stylesheet.
func (s *Service) HighlightCSS() []byte {
	return s.highlight
}

// ThemeAssets exposes the theme's static files.
func (s *Service) ThemeAssets() fs.FS {
	return s.templates.Assets()
}

// MinifyAsset compacts theme stylesheets and leaves other files untouched.
func (s *Service) MinifyAsset(name string, data []byte) ([]byte, error) {
	if path.Ext(name) == ".css" {
		return s.renderer.MinifyCSS(data)
	}
	return data, nil
}

// withSiteInfo resolves the site info and fn concurrently and waits for both.
func (s *Service) withSiteInfo(ctx context.Context, fn func(context.Context)) (wpapi.SiteInfo, error) {
	var info wpapi.SiteInfo
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		info = s.source.SiteInfo(gctx)
		return nil
	})
	if fn != nil {
		g.Go(func() error {
			fn(gctx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return wpapi.SiteInfo{}, err
	}
	return info, ctx.Err()
}
