package site

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/syncronet/athletos-web/wpapi"
)

const maxSlugLength = 200

// normalizeSlug validates a route slug and returns its NFC form.
func normalizeSlug(raw string) (string, error) {
	slug := norm.NFC.String(strings.TrimSpace(raw))
	if slug == "" || len(slug) > maxSlugLength || !utf8.ValidString(slug) {
		return "", ErrInvalidSlug
	}
	if strings.HasPrefix(slug, "-") || strings.HasPrefix(slug, ".") {
		return "", ErrInvalidSlug
	}
	for _, r := range slug {
		if r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		return "", ErrInvalidSlug
	}
	return slug, nil
}

func summarize(plain string) string {
	plain = strings.Join(strings.Fields(plain), " ")
	if plain == "" {
		return ""
	}
	runes := []rune(plain)
	if len(runes) <= 200 {
		return plain
	}
	return strings.TrimSpace(string(runes[:200])) + "..."
}

func metaDescription(summary, fallback string) string {
	const limit = 160
	text := strings.TrimSpace(summary)
	if text == "" {
		text = strings.TrimSpace(fallback)
	}
	if text == "" {
		return ""
	}
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "..."
}

var danishMonths = [...]string{
	"januar", "februar", "marts", "april", "maj", "juni",
	"juli", "august", "september", "oktober", "november", "december",
}

// siteTime shifts a UTC timestamp into the CMS's configured offset.
func siteTime(t time.Time, info wpapi.SiteInfo) time.Time {
	if info.GMTOffset == 0 {
		return t.UTC()
	}
	seconds := int(info.GMTOffset * 3600)
	name := info.TimezoneString
	if name == "" {
		name = fmt.Sprintf("UTC%+g", info.GMTOffset)
	}
	return t.In(time.FixedZone(name, seconds))
}

// formatDate renders a date the Danish way, e.g. "1. marts 2026".
func formatDate(t time.Time, info wpapi.SiteInfo) (human, iso string) {
	if t.IsZero() {
		return "", ""
	}
	local := siteTime(t, info)
	return fmt.Sprintf("%d. %s %d", local.Day(), danishMonths[local.Month()-1], local.Year()),
		local.Format(time.RFC3339)
}
