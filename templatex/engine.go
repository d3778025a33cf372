package templatex

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"
)

const (
	DefaultContentTemplate  = "content-page"
	HomeContentTemplate     = "content-home"
	ServicesContentTemplate = "content-services"
	PostsContentTemplate    = "content-posts"
	NotFoundContentTemplate = "content-404"
	LayoutTemplate          = "layout"
)

//go:embed theme
var builtinTheme embed.FS

// Engine is a thin wrapper around Go templates. Without a template
// directory it serves the built-in theme.
type Engine struct {
	mu        sync.RWMutex
	templates *template.Template
	dir       string
	assets    fs.FS
}

// Load instantiates an engine using files from templateDir, or the built-in
// theme when templateDir is empty.
func Load(templateDir string) (*Engine, error) {
	e := &Engine{dir: strings.TrimSpace(templateDir)}
	if err := e.Reload(); err != nil {
		return nil, err
	}
	return e, nil
}

// Dir returns the on-disk template directory, or "" for the built-in theme.
func (e *Engine) Dir() string {
	return e.dir
}

// Assets exposes the theme's static files (site.css and friends).
func (e *Engine) Assets() fs.FS {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.assets
}

// Reload re-parses every template. On failure the previous set stays active.
func (e *Engine) Reload() error {
	root, err := e.themeFS()
	if err != nil {
		return err
	}

	files := make([]string, 0, 16)
	for _, pattern := range []string{"*.html", "partials/*.html"} {
		matches, err := fs.Glob(root, pattern)
		if err != nil {
			return fmt.Errorf("glob templates %s: %w", pattern, err)
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return fmt.Errorf("no templates found in %s", e.describe())
	}
	sort.Strings(files)

	tpl, err := template.New("root").Funcs(funcs).ParseFS(root, files...)
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	if tpl.Lookup(LayoutTemplate) == nil {
		return fmt.Errorf("template %q is not defined", LayoutTemplate)
	}

	var assets fs.FS
	if info, err := fs.Stat(root, "assets"); err == nil && info.IsDir() {
		if assets, err = fs.Sub(root, "assets"); err != nil {
			return fmt.Errorf("open theme assets: %w", err)
		}
	}

	e.mu.Lock()
	e.templates = tpl
	e.assets = assets
	e.mu.Unlock()
	return nil
}

func (e *Engine) themeFS() (fs.FS, error) {
	if e.dir == "" {
		return fs.Sub(builtinTheme, "theme")
	}
	info, err := os.Stat(e.dir)
	if err != nil {
		return nil, fmt.Errorf("open template directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template path %s is not a directory", e.dir)
	}
	return os.DirFS(e.dir), nil
}

func (e *Engine) describe() string {
	if e.dir == "" {
		return "built-in theme"
	}
	return e.dir
}

// Render writes the rendered layout into the provided writer.
func (e *Engine) Render(w io.Writer, data *PageData) error {
	e.mu.RLock()
	tpl := e.templates
	e.mu.RUnlock()
	if tpl == nil {
		return fmt.Errorf("template engine not initialized")
	}
	if data != nil {
		if strings.TrimSpace(data.ContentTemplate) == "" {
			data.ContentTemplate = DefaultContentTemplate
		}
		if strings.TrimSpace(data.RequestedPath) == "" {
			data.RequestedPath = data.ActivePath
		}
	}
	return tpl.ExecuteTemplate(w, LayoutTemplate, data)
}

var funcs = template.FuncMap{
	"odd": func(i int) bool {
		return i%2 == 1
	},
	"isActive": func(active, href string) bool {
		active = "/" + strings.Trim(active, "/")
		href = "/" + strings.Trim(href, "/")
		if href == "/" {
			return active == "/"
		}
		return active == href || strings.HasPrefix(active, href+"/")
	},
}
