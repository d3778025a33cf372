package renderer

import (
	"bytes"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// ClassPrefix is prepended to every highlighting class so theme CSS cannot
// collide with it.
const ClassPrefix = "z-"

// DefaultHighlightStyle matches the dark theme.
const DefaultHighlightStyle = "monokai"

// HighlightCSS returns the stylesheet for code blocks rendered by Render.
// Unknown style names fall back to chroma's default style.
func HighlightCSS(style string) ([]byte, error) {
	if style == "" {
		style = DefaultHighlightStyle
	}
	formatter := chromahtml.New(chromahtml.WithClasses(true), chromahtml.ClassPrefix(ClassPrefix))
	var buf bytes.Buffer
	if err := formatter.WriteCSS(&buf, styles.Get(style)); err != nil {
		return nil, fmt.Errorf("write highlight css: %w", err)
	}
	return buf.Bytes(), nil
}
