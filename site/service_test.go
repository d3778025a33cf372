package site

import (
	"context"
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/onsi/gomega"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	"github.com/syncronet/athletos-web/config"
	"github.com/syncronet/athletos-web/templatex"
	"github.com/syncronet/athletos-web/wpapi"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, cfg *config.Config) (*Service, *MockContentSource) {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{}
	}
	if cfg.Contact.Email == "" {
		cfg.Contact = config.ContactConfig{
			Email:   "jonas.kerwin.hansen@gmail.com",
			Phone:   "+45 50 10 69 17",
			Address: "Servicevej 6, 4220 Korsør",
		}
	}
	ctrl := gomock.NewController(t)
	source := NewMockContentSource(ctrl)

	engine, err := templatex.Load("")
	if err != nil {
		t.Fatalf("load templates: %v", err)
	}
	svc, err := NewService(cfg, source, engine)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	svc.now = func() time.Time { return fixedNow }
	return svc, source
}

func TestHomeUsesCMSFrontPage(t *testing.T) {
	g := gomega.NewWithT(t)
	svc, source := newTestService(t, &config.Config{BaseURL: "https://athletos.dk", Live: true})

	source.EXPECT().SiteInfo(gomock.Any()).Return(wpapi.SiteInfo{Name: "Athletos"})
	source.EXPECT().FrontPage(gomock.Any()).Return(&wpapi.Page{
		Slug:    "velkommen",
		Title:   "Velkommen",
		Content: "<p>CMS indhold</p>",
		Excerpt: "<p>Kort intro</p>",
	})

	data, err := svc.Home(context.Background())
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(data.ContentTemplate).To(gomega.Equal(templatex.HomeContentTemplate))
	g.Expect(data.Title).To(gomega.Equal("Velkommen"))
	g.Expect(data.PageTitle).To(gomega.Equal("Velkommen - Athletos"))
	g.Expect(string(data.ContentHTML)).To(gomega.ContainSubstring("CMS indhold"))
	g.Expect(data.Meta.Description).To(gomega.Equal("Kort intro"))
	g.Expect(data.Canonical).To(gomega.Equal("https://athletos.dk/"))
	g.Expect(data.Breadcrumbs).To(gomega.BeEmpty())
	g.Expect(data.Hero).NotTo(gomega.BeNil())
	g.Expect(data.Hero.Title).To(gomega.HavePrefix("Synkroniser sportsdata."))
	g.Expect(data.Hero.CTAHref).To(gomega.Equal("/kontakt"))
	g.Expect(data.Features).To(gomega.HaveLen(3))
	g.Expect(data.Year).To(gomega.Equal(2026))
	g.Expect(data.Live).To(gomega.BeTrue())
}

func TestHomeWithoutFrontPageFallsBack(t *testing.T) {
	g := gomega.NewWithT(t)
	svc, source := newTestService(t, nil)

	source.EXPECT().SiteInfo(gomock.Any()).Return(wpapi.FallbackSiteInfo())
	source.EXPECT().FrontPage(gomock.Any()).Return(nil)

	data, err := svc.Home(context.Background())
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(data.Title).To(gomega.Equal("Forside"))
	g.Expect(data.SiteName).To(gomega.Equal(wpapi.FallbackSiteName))
	g.Expect(data.PageTitle).To(gomega.Equal("Forside - SYNCRONET ApS"))
	g.Expect(data.ContentHTML).To(gomega.BeEmpty())
	g.Expect(data.Meta.Description).To(gomega.HavePrefix("Hurtig og præcis synkronisering"))
}

func TestRenderHomeProducesMinifiedDocument(t *testing.T) {
	g := gomega.NewWithT(t)
	svc, source := newTestService(t, nil)

	source.EXPECT().SiteInfo(gomock.Any()).Return(wpapi.SiteInfo{Name: "<b>Athletos</b>"})
	source.EXPECT().FrontPage(gomock.Any()).Return(nil)

	out, err := svc.RenderHome(context.Background())
	g.Expect(err).NotTo(gomega.HaveOccurred())
	html := string(out)
	g.Expect(html).To(gomega.ContainSubstring("<title>Forside - Athletos</title>"))
	g.Expect(html).To(gomega.ContainSubstring("Servicevej 6, 4220 Korsør"))
	g.Expect(html).NotTo(gomega.ContainSubstring("<b>Athletos</b>"))
}

func TestPageFromCMS(t *testing.T) {
	g := gomega.NewWithT(t)
	svc, source := newTestService(t, &config.Config{BaseURL: "https://athletos.dk"})

	published := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	source.EXPECT().SiteInfo(gomock.Any()).Return(wpapi.SiteInfo{Name: "Athletos", GMTOffset: 1})
	source.EXPECT().PageBySlug(gomock.Any(), "priser").Return(&wpapi.Page{
		ID:        7,
		Slug:      "priser",
		Title:     "Priser &amp; pakker",
		Content:   "<p>Fra 499 kr.</p>",
		Published: published,
		FeaturedMedia: &wpapi.Media{
			SourceURL: "https://cms.example/priser.jpg",
			AltText:   "Prisoversigt",
		},
	})

	data, err := svc.Page(context.Background(), " priser ")
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(data.ContentTemplate).To(gomega.Equal(templatex.DefaultContentTemplate))
	g.Expect(data.Title).To(gomega.Equal("Priser & pakker"))
	g.Expect(data.ActivePath).To(gomega.Equal("/priser"))
	g.Expect(data.Canonical).To(gomega.Equal("https://athletos.dk/priser"))
	g.Expect(data.Published).To(gomega.Equal("1. marts 2026"))
	g.Expect(data.PublishedISO).To(gomega.Equal("2026-03-01T11:00:00+01:00"))
	g.Expect(data.Image).To(gomega.Equal(&templatex.Image{URL: "https://cms.example/priser.jpg", Alt: "Prisoversigt"}))
	g.Expect(data.Meta.Image).To(gomega.Equal("https://cms.example/priser.jpg"))
	g.Expect(data.Meta.Description).To(gomega.Equal("Fra 499 kr."))
	g.Expect(data.Breadcrumbs).To(gomega.Equal([]templatex.Breadcrumb{
		{Title: "Forside", Path: "/"},
		{Title: "Priser & pakker", Current: true},
	}))
}

func TestPageMissingFromCMSIsNotFound(t *testing.T) {
	for _, slug := range []string{"om-os", "kontakt", "ydelser", "forside"} {
		t.Run(slug, func(t *testing.T) {
			g := gomega.NewWithT(t)
			svc, source := newTestService(t, nil)

			source.EXPECT().SiteInfo(gomock.Any()).Return(wpapi.FallbackSiteInfo())
			source.EXPECT().PageBySlug(gomock.Any(), slug).Return(nil)

			_, err := svc.Page(context.Background(), slug)
			g.Expect(err).To(gomega.MatchError(ErrNotFound))
		})
	}
}

func TestPageFrontPageSlugHasNoSecondURL(t *testing.T) {
	g := gomega.NewWithT(t)
	svc, source := newTestService(t, nil)

	source.EXPECT().SiteInfo(gomock.Any()).Return(wpapi.FallbackSiteInfo())
	source.EXPECT().PageBySlug(gomock.Any(), "forside").Return(&wpapi.Page{ID: 1, Slug: "forside", Title: "Forside"})

	_, err := svc.Page(context.Background(), "forside")
	g.Expect(err).To(gomega.MatchError(ErrNotFound))
}

func TestPageNotFound(t *testing.T) {
	g := gomega.NewWithT(t)
	svc, source := newTestService(t, nil)

	source.EXPECT().SiteInfo(gomock.Any()).Return(wpapi.FallbackSiteInfo())
	source.EXPECT().PageBySlug(gomock.Any(), "findes-ikke").Return(nil)

	_, err := svc.Page(context.Background(), "findes-ikke")
	g.Expect(errors.Is(err, ErrNotFound)).To(gomega.BeTrue())
}

func TestPageRejectsInvalidSlugWithoutCallingCMS(t *testing.T) {
	g := gomega.NewWithT(t)
	svc, _ := newTestService(t, nil)

	for _, slug := range []string{"", "../etc", "a/b", ".env", "-x", strings.Repeat("a", maxSlugLength+1)} {
		_, err := svc.Page(context.Background(), slug)
		g.Expect(err).To(gomega.MatchError(ErrInvalidSlug), "slug %q", slug)
	}
}

func TestPageHonoursCancelledContext(t *testing.T) {
	g := gomega.NewWithT(t)
	svc, source := newTestService(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	source.EXPECT().SiteInfo(gomock.Any()).Return(wpapi.FallbackSiteInfo())
	source.EXPECT().PageBySlug(gomock.Any(), "om-os").Return(nil)

	_, err := svc.Page(ctx, "om-os")
	g.Expect(err).To(gomega.MatchError(context.Canceled))
}

func TestServices(t *testing.T) {
	g := gomega.NewWithT(t)
	svc, source := newTestService(t, nil)

	source.EXPECT().SiteInfo(gomock.Any()).Return(wpapi.FallbackSiteInfo())

	data, err := svc.Services(context.Background())
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(data.ContentTemplate).To(gomega.Equal(templatex.ServicesContentTemplate))
	g.Expect(data.ActivePath).To(gomega.Equal("/tjenester"))
	g.Expect(data.Services).To(gomega.HaveLen(4))
	g.Expect(data.Services[0].ID).To(gomega.Equal("ai-analyse"))
	g.Expect(data.Support).To(gomega.HaveLen(4))
}

func TestPosts(t *testing.T) {
	g := gomega.NewWithT(t)
	svc, source := newTestService(t, &config.Config{WordPress: config.WordPressConfig{Embed: true}})

	source.EXPECT().SiteInfo(gomock.Any()).Return(wpapi.FallbackSiteInfo())
	source.EXPECT().Posts(gomock.Any(), wpapi.ListQuery{Embed: true}).Return([]wpapi.Post{
		{
			Slug:      "lancering",
			Title:     "Lancering",
			Excerpt:   "<p>Athletos er live.</p>",
			Link:      "https://cms.example/lancering/",
			Published: time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC),
		},
		{Slug: "opdatering", Title: "Opdatering"},
	})

	data, err := svc.Posts(context.Background())
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(data.ContentTemplate).To(gomega.Equal(templatex.PostsContentTemplate))
	g.Expect(data.ContentHTML).To(gomega.BeEmpty())
	g.Expect(data.Posts).To(gomega.HaveLen(2))
	g.Expect(data.Posts[0].URL).To(gomega.Equal("https://cms.example/lancering/"))
	g.Expect(data.Posts[0].Excerpt).To(gomega.Equal("Athletos er live."))
	g.Expect(data.Posts[0].Published).To(gomega.Equal("5. januar 2026"))
	g.Expect(data.Posts[1].URL).To(gomega.Equal("/blog#opdatering"))
	g.Expect(data.Posts[1].Published).To(gomega.BeEmpty())
}

func TestPostsEmpty(t *testing.T) {
	g := gomega.NewWithT(t)
	svc, source := newTestService(t, nil)

	source.EXPECT().SiteInfo(gomock.Any()).Return(wpapi.FallbackSiteInfo())
	source.EXPECT().Posts(gomock.Any(), gomock.Any()).Return(nil)

	data, err := svc.Posts(context.Background())
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(data.Posts).To(gomega.BeEmpty())
	g.Expect(string(data.ContentHTML)).To(gomega.Equal(postsEmpty))
}

func TestNotFound(t *testing.T) {
	g := gomega.NewWithT(t)
	svc, source := newTestService(t, &config.Config{BaseURL: "https://athletos.dk"})

	source.EXPECT().SiteInfo(gomock.Any()).Return(wpapi.FallbackSiteInfo())

	data, err := svc.NotFound(context.Background(), "gammel/../side")
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(data.ContentTemplate).To(gomega.Equal(templatex.NotFoundContentTemplate))
	g.Expect(data.RequestedPath).To(gomega.Equal("/side"))
	g.Expect(data.Meta.NoIndex).To(gomega.BeTrue())
	g.Expect(data.Meta.Description).To(gomega.Equal("Siden /side kunne ikke findes."))
	g.Expect(data.Canonical).To(gomega.BeEmpty())
	g.Expect(data.ActivePath).To(gomega.BeEmpty())
}

func TestSitemap(t *testing.T) {
	g := gomega.NewWithT(t)
	svc, source := newTestService(t, &config.Config{BaseURL: "https://athletos.dk"})

	source.EXPECT().Pages(gomock.Any(), gomock.Any()).Return([]wpapi.Page{
		{Slug: "priser", Modified: time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)},
		{Slug: "om-os"},
		{Slug: "../etc"},
	})

	out, err := svc.Sitemap(context.Background())
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(string(out)).To(gomega.HavePrefix(xml.Header))

	var set sitemapURLSet
	g.Expect(xml.Unmarshal(out, &set)).To(gomega.Succeed())
	locs := make([]string, 0, len(set.URLs))
	for _, u := range set.URLs {
		locs = append(locs, u.Loc)
	}
	g.Expect(locs).To(gomega.Equal([]string{
		"https://athletos.dk/",
		"https://athletos.dk/blog",
		"https://athletos.dk/om-os",
		"https://athletos.dk/priser",
		"https://athletos.dk/tjenester",
	}))
	g.Expect(set.URLs[2].LastMod).To(gomega.BeEmpty())
	g.Expect(set.URLs[3].LastMod).To(gomega.Equal("2026-03-01"))
}

func TestSitemapListsPagesWithoutModifiedTime(t *testing.T) {
	g := gomega.NewWithT(t)
	svc, _ := newTestService(t, &config.Config{BaseURL: "https://athletos.dk"})

	out, err := svc.sitemap([]wpapi.Page{{ID: 9, Slug: "priser"}})
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(string(out)).To(gomega.ContainSubstring("<loc>https://athletos.dk/priser</loc>"))
	g.Expect(string(out)).NotTo(gomega.ContainSubstring("<lastmod>"))
}

func TestBuildStatic(t *testing.T) {
	g := gomega.NewWithT(t)
	outputDir := filepath.Join(t.TempDir(), "public")
	svc, source := newTestService(t, &config.Config{OutputDir: outputDir})

	g.Expect(os.MkdirAll(outputDir, 0o755)).To(gomega.Succeed())
	g.Expect(os.WriteFile(filepath.Join(outputDir, "stale.html"), []byte("old"), 0o644)).To(gomega.Succeed())

	modified := time.Date(2026, time.February, 2, 12, 0, 0, 0, time.UTC)
	source.EXPECT().SiteInfo(gomock.Any()).Return(wpapi.FallbackSiteInfo())
	source.EXPECT().FrontPage(gomock.Any()).Return(nil)
	source.EXPECT().Pages(gomock.Any(), gomock.Any()).Return([]wpapi.Page{
		{ID: 1, Slug: "priser", Title: "Priser", Content: "<p>Fra 499 kr.</p>", Modified: modified},
		{ID: 2, Slug: "om-os", Title: "Om SYNCRONET", Content: "<p>Fra CMS</p>"},
		{ID: 3, Slug: "../etc", Title: "Ugyldig"},
	})
	source.EXPECT().Posts(gomock.Any(), gomock.Any()).Return(nil)

	g.Expect(svc.BuildStatic(context.Background())).To(gomega.Succeed())

	for _, name := range []string{
		"index.html",
		"tjenester/index.html",
		"blog/index.html",
		"priser/index.html",
		"om-os/index.html",
		"404.html",
		"sitemap.xml",
		"theme/site.css",
		"theme/highlight.css",
	} {
		g.Expect(filepath.Join(outputDir, filepath.FromSlash(name))).To(gomega.BeAnExistingFile(), name)
	}
	g.Expect(filepath.Join(outputDir, "stale.html")).NotTo(gomega.BeAnExistingFile())
	g.Expect(filepath.Join(outputDir, "kontakt", "index.html")).NotTo(gomega.BeAnExistingFile())
	g.Expect(outputDir + ".old").NotTo(gomega.BeADirectory())

	omOs, err := os.ReadFile(filepath.Join(outputDir, "om-os", "index.html"))
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(string(omOs)).To(gomega.ContainSubstring("Fra CMS"))

	stat, err := os.Stat(filepath.Join(outputDir, "priser", "index.html"))
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(stat.ModTime()).To(gomega.BeTemporally("==", modified))

	entries, err := os.ReadDir(filepath.Dir(outputDir))
	g.Expect(err).NotTo(gomega.HaveOccurred())
	for _, entry := range entries {
		g.Expect(entry.Name()).NotTo(gomega.HavePrefix(".__build-"))
	}
}

func TestStaticDocumentPath(t *testing.T) {
	svc, _ := newTestService(t, &config.Config{OutputDir: "/srv/public"})

	cases := []struct {
		in   string
		want string
		err  error
	}{
		{in: "", want: "/srv/public/index.html"},
		{in: "/", want: "/srv/public/index.html"},
		{in: "/forside", err: ErrNotFound},
		{in: "/om-os", want: "/srv/public/om-os/index.html"},
		{in: "/om-os/", want: "/srv/public/om-os/index.html"},
		{in: "/om-os.html", want: "/srv/public/om-os/index.html"},
		{in: "/a/b", err: ErrNotFound},
		{in: "/.env", err: ErrInvalidSlug},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			g := gomega.NewWithT(t)
			got, err := svc.StaticDocumentPath(tc.in)
			if tc.err != nil {
				g.Expect(err).To(gomega.MatchError(tc.err))
				return
			}
			g.Expect(err).NotTo(gomega.HaveOccurred())
			g.Expect(got).To(gomega.Equal(filepath.FromSlash(tc.want)))
		})
	}
	g := gomega.NewWithT(t)
	g.Expect(svc.NotFoundDocumentPath()).To(gomega.Equal(filepath.Join("/srv/public", "404.html")))
	g.Expect(svc.SitemapPath()).To(gomega.Equal(filepath.Join("/srv/public", "sitemap.xml")))
}

func TestNormalizeSlug(t *testing.T) {
	g := gomega.NewWithT(t)

	slug, err := normalizeSlug("träning")
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(slug).To(gomega.Equal("träning"))

	slug, err = normalizeSlug("  om_os-2 ")
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(slug).To(gomega.Equal("om_os-2"))

	_, err = normalizeSlug("hej verden")
	g.Expect(err).To(gomega.MatchError(ErrInvalidSlug))
}

func TestFormatDate(t *testing.T) {
	g := gomega.NewWithT(t)

	human, iso := formatDate(time.Time{}, wpapi.SiteInfo{})
	g.Expect(human).To(gomega.BeEmpty())
	g.Expect(iso).To(gomega.BeEmpty())

	ts := time.Date(2025, time.December, 31, 23, 30, 0, 0, time.UTC)
	human, iso = formatDate(ts, wpapi.SiteInfo{})
	g.Expect(human).To(gomega.Equal("31. december 2025"))
	g.Expect(iso).To(gomega.Equal("2025-12-31T23:30:00Z"))

	human, _ = formatDate(ts, wpapi.SiteInfo{GMTOffset: 1, TimezoneString: "Europe/Copenhagen"})
	g.Expect(human).To(gomega.Equal("1. januar 2026"))
}

func TestPageTitleAndSummaries(t *testing.T) {
	g := gomega.NewWithT(t)

	g.Expect(pageTitle("Om os", "Athletos")).To(gomega.Equal("Om os - Athletos"))
	g.Expect(pageTitle("  ", "Athletos")).To(gomega.Equal("Athletos"))
	g.Expect(pageTitle("Athletos", "Athletos")).To(gomega.Equal("Athletos"))

	long := strings.Repeat("a", 300)
	g.Expect([]rune(summarize(long))).To(gomega.HaveLen(203))
	g.Expect(summarize(" kort\n tekst ")).To(gomega.Equal("kort tekst"))
	g.Expect([]rune(metaDescription(long, ""))).To(gomega.HaveLen(162))
	g.Expect(metaDescription("", "reserve")).To(gomega.Equal("reserve"))
}
