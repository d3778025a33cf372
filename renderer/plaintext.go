package renderer

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PlainText strips markup from a CMS-rendered fragment, decoding entities
// and collapsing whitespace. Script and style bodies are dropped.
func PlainText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.Join(strings.Fields(fragment), " ")
	}

	z := html.NewTokenizer(strings.NewReader(fragment))
	var sb strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(sb.String()), " ")
		case html.TextToken:
			if skip == 0 {
				sb.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch a := atom.Lookup(name); a {
			case atom.Script, atom.Style:
				skip++
			default:
				if breaksText(a) {
					sb.WriteByte(' ')
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch a := atom.Lookup(name); a {
			case atom.Script, atom.Style:
				if skip > 0 {
					skip--
				}
			default:
				if breaksText(a) {
					sb.WriteByte(' ')
				}
			}
		}
	}
}

func breaksText(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Br, atom.Div, atom.Li, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Td, atom.Th, atom.Tr, atom.Blockquote, atom.Section, atom.Article, atom.Figcaption, atom.Hr:
		return true
	}
	return false
}

// Markdown converts a CMS-rendered HTML fragment into Markdown.
func Markdown(fragment string) (string, error) {
	out, err := md.NewConverter("", true, nil).ConvertString(fragment)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
