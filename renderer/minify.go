package renderer

import (
	"fmt"
	"regexp"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/svg"
)

const (
	mediaHTML = "text/html"
	mediaCSS  = "text/css"
)

func newMinifier() *minify.M {
	m := minify.New()
	m.Add(mediaHTML, &html.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	m.AddFunc(mediaCSS, css.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)
	m.AddFuncRegexp(regexp.MustCompile(`^(application|text)/(x-)?(java|ecma)script$`), js.Minify)
	return m
}

// MinifyHTML compacts a complete HTML document including inline styles,
// scripts and SVG.
func (r *Renderer) MinifyHTML(raw []byte) ([]byte, error) {
	out, err := r.min.Bytes(mediaHTML, raw)
	if err != nil {
		return nil, fmt.Errorf("minify html: %w", err)
	}
	return out, nil
}

// MinifyCSS compacts a stylesheet.
func (r *Renderer) MinifyCSS(raw []byte) ([]byte, error) {
	out, err := r.min.Bytes(mediaCSS, raw)
	if err != nil {
		return nil, fmt.Errorf("minify css: %w", err)
	}
	return out, nil
}
