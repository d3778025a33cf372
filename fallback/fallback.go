// Package fallback holds the built-in Danish copy used by the home page when
// the CMS has no front page.
package fallback

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/syncronet/athletos-web/renderer"
)

// FrontPageSlug is the slug of the home page copy.
const FrontPageSlug = "forside"

//go:embed content/*.md
var content embed.FS

// Page is a pre-rendered piece of static copy.
type Page struct {
	Slug      string
	Title     string
	Excerpt   string
	HTML      template.HTML
	PlainText string
	Order     int
}

// Library indexes fallback pages by slug.
type Library struct {
	pages map[string]Page
	order []string
}

// Load renders the embedded copy.
func Load(r *renderer.Renderer) (*Library, error) {
	return LoadFS(r, content, "content")
}

// LoadFS renders every *.md file directly under dir in fsys. The file name
// without extension becomes the slug.
func LoadFS(r *renderer.Renderer, fsys fs.FS, dir string) (*Library, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("glob fallback copy: %w", err)
	}

	lib := &Library{pages: make(map[string]Page, len(files))}
	for _, file := range files {
		src, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		res, err := r.Render(src)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", file, err)
		}
		slug := strings.TrimSuffix(path.Base(file), path.Ext(file))
		p := Page{
			Slug:      slug,
			Title:     metaString(res.Meta, "title"),
			Excerpt:   metaString(res.Meta, "excerpt"),
			HTML:      template.HTML(res.HTML),
			PlainText: res.PlainText,
			Order:     metaInt(res.Meta, "order", len(files)),
		}
		if p.Title == "" {
			p.Title = renderer.TitleFromSlug(slug)
		}
		lib.pages[slug] = p
		lib.order = append(lib.order, slug)
	}

	sort.SliceStable(lib.order, func(i, j int) bool {
		a, b := lib.pages[lib.order[i]], lib.pages[lib.order[j]]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.Slug < b.Slug
	})
	return lib, nil
}

// Get returns the page for slug.
func (l *Library) Get(slug string) (Page, bool) {
	p, ok := l.pages[slug]
	return p, ok
}

// All returns every page ordered for navigation.
func (l *Library) All() []Page {
	out := make([]Page, 0, len(l.order))
	for _, slug := range l.order {
		out = append(out, l.pages[slug])
	}
	return out
}

func metaString(m map[string]any, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
		if v != nil {
			return strings.TrimSpace(fmt.Sprint(v))
		}
	}
	return ""
}

func metaInt(m map[string]any, key string, def int) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}
