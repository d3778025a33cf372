package renderer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleFromSlug turns a URL slug such as "om-os" into a display title
// ("Om os"). Only the first word is capitalised, as Danish titles are.
func TitleFromSlug(slug string) string {
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(slug))
	if len(words) == 0 {
		return ""
	}
	words[0] = cases.Title(language.Danish).String(words[0])
	for i := 1; i < len(words); i++ {
		words[i] = cases.Lower(language.Danish).String(words[i])
	}
	return strings.Join(words, " ")
}
