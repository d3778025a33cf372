package site

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	slogctx "github.com/veqryn/slog-context"
	"golang.org/x/sync/errgroup"

	"github.com/syncronet/athletos-web/fsutil"
	"github.com/syncronet/athletos-web/templatex"
	"github.com/syncronet/athletos-web/wpapi"
)

// Rebuild runs BuildStatic, joining a build that is already in flight.
func (s *Service) Rebuild(ctx context.Context) error {
	_, err, _ := s.builds.Do("static", func() (any, error) {
		return nil, s.BuildStatic(ctx)
	})
	return err
}

// BuildStatic renders every route into OutputDir. The output is staged in a
// sibling temp directory and swapped in only after everything was written.
func (s *Service) BuildStatic(ctx context.Context) error {
	started := s.now()
	finalDir := s.cfg.OutputDir
	parent := filepath.Dir(finalDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("ensure output parent: %w", err)
	}

	tempDir, err := os.MkdirTemp(parent, ".__build-")
	if err != nil {
		return fmt.Errorf("create temp output dir: %w", err)
	}
	cleanTemp := true
	defer func() {
		if cleanTemp {
			_ = os.RemoveAll(tempDir)
		}
	}()

	var (
		info  wpapi.SiteInfo
		front *wpapi.Page
		pages []wpapi.Page
		posts []wpapi.Post
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { info = s.source.SiteInfo(gctx); return nil })
	g.Go(func() error { front = s.source.FrontPage(gctx); return nil })
	g.Go(func() error { pages = s.source.Pages(gctx, s.listQuery()); return nil })
	g.Go(func() error { posts = s.source.Posts(gctx, s.listQuery()); return nil })
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	written := make(map[string]bool)
	write := func(outputPath string, data *templatex.PageData, modTime time.Time) error {
		if written[outputPath] {
			return nil
		}
		if err := s.writeDocument(tempDir, outputPath, data, modTime); err != nil {
			return err
		}
		written[outputPath] = true
		return nil
	}

	home := s.homeData(info, front)
	var homeMod time.Time
	if front != nil {
		homeMod = front.Modified
	}
	if err := write("index.html", home, homeMod); err != nil {
		return err
	}
	if err := write(outputPathFor(servicesRoute), s.servicesData(info), time.Time{}); err != nil {
		return err
	}
	if err := write(outputPathFor(postsRoute), s.postsData(info, posts), time.Time{}); err != nil {
		return err
	}

	logger := slogctx.FromCtx(ctx)
	for _, p := range pages {
		slug, err := normalizeSlug(p.Slug)
		if err != nil {
			logger.WarnContext(ctx, "skipping page with unusable slug", slog.Int("id", p.ID), slog.String("slug", p.Slug))
			continue
		}
		p.Slug = slug
		doc := pageFromCMS(p)
		if doc.Route == "/" {
			continue
		}
		if err := write(doc.OutputPath, s.pageData(info, doc), doc.Modified); err != nil {
			return err
		}
	}
	if err := s.writeDocument(tempDir, notFoundOutput, s.notFoundData(info, ""), time.Time{}); err != nil {
		return err
	}

	sitemap, err := s.sitemap(pages)
	if err != nil {
		return err
	}
	if err := fsutil.WriteFile(filepath.Join(tempDir, sitemapOutput), sitemap); err != nil {
		return fmt.Errorf("write sitemap: %w", err)
	}

	themeDir := filepath.Join(tempDir, themeOutput)
	if assets := s.ThemeAssets(); assets != nil {
		if err := fsutil.CopyFS(assets, themeDir, s.MinifyAsset); err != nil {
			return fmt.Errorf("copy theme assets: %w", err)
		}
	}
	if err := fsutil.WriteFile(filepath.Join(themeDir, highlightCSS), s.highlight); err != nil {
		return fmt.Errorf("write highlight css: %w", err)
	}

	if err := fsutil.ReplaceDir(tempDir, finalDir); err != nil {
		return err
	}
	cleanTemp = false

	logger.InfoContext(ctx, "static build complete",
		slog.String("output", finalDir),
		slog.Int("documents", len(written)+1),
		slog.Duration("elapsed", s.now().Sub(started)),
	)
	return nil
}

func (s *Service) writeDocument(baseDir, outputPath string, data *templatex.PageData, modTime time.Time) error {
	html, err := s.render(data)
	if err != nil {
		return err
	}
	target := filepath.Join(baseDir, filepath.FromSlash(outputPath))
	if err := fsutil.WriteFile(target, html); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	if !modTime.IsZero() {
		stamp := modTime.UTC()
		if err := os.Chtimes(target, stamp, stamp); err != nil {
			return fmt.Errorf("set mod time %s: %w", outputPath, err)
		}
	}
	return nil
}
