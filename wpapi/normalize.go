package wpapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// rendered accepts both the CMS-native {"rendered": "..."} object and a bare
// string. set stays false when the field is absent or null.
type rendered struct {
	value string
	set   bool
}

func (r *rendered) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		r.value, r.set = s, true
		return nil
	}
	var obj struct {
		Rendered *string `json:"rendered"`
	}
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return err
	}
	if obj.Rendered != nil {
		r.value, r.set = *obj.Rendered, true
	}
	return nil
}

func (r rendered) or(fallback string) string {
	if !r.set {
		return fallback
	}
	return r.value
}

// offset accepts gmt_offset as a number or a numeric string. Unparseable
// values are ignored rather than failing the whole document.
type offset struct {
	value float64
	set   bool
}

func (o *offset) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	raw := string(trimmed)
	if trimmed[0] == '"' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil
		}
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		o.value, o.set = f, true
	}
	return nil
}

// wpTime parses the zone-less *_gmt timestamps WordPress emits.
type wpTime struct {
	value time.Time
}

func (t *wpTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{"2006-01-02T15:04:05", time.RFC3339} {
		if parsed, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			t.value = parsed.UTC()
			return nil
		}
	}
	return nil
}

type rawMedia struct {
	ID        int    `json:"id"`
	SourceURL string `json:"source_url"`
	AltText   string `json:"alt_text"`
}

type rawEmbedded struct {
	FeaturedMedia []rawMedia `json:"wp:featuredmedia"`
}

type rawPost struct {
	ID       int          `json:"id"`
	Slug     string       `json:"slug"`
	Link     string       `json:"link"`
	DateGMT  wpTime       `json:"date_gmt"`
	Modified wpTime       `json:"modified_gmt"`
	Title    rendered     `json:"title"`
	Content  rendered     `json:"content"`
	Excerpt  rendered     `json:"excerpt"`
	Embedded *rawEmbedded `json:"_embedded"`
}

func (r rawPost) valid() bool {
	return r.ID > 0 || strings.TrimSpace(r.Slug) != ""
}

type rawRoot struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	URL            string `json:"url"`
	Home           string `json:"home"`
	GMTOffset      offset `json:"gmt_offset"`
	TimezoneString string `json:"timezone_string"`
}

type rawSettings struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Timezone    string `json:"timezone"`
	GMTOffset   offset `json:"gmt_offset"`
}

// normalizePage shapes a raw document into a Page. slugFallback fills a
// missing slug, titleFallback a missing title.
func normalizePage(raw rawPost, slugFallback, titleFallback string) Page {
	slug := strings.TrimSpace(raw.Slug)
	if slug == "" {
		slug = slugFallback
	}
	p := Page{
		ID:        raw.ID,
		Slug:      slug,
		Title:     raw.Title.or(titleFallback),
		Content:   raw.Content.or(""),
		Excerpt:   raw.Excerpt.or(""),
		Link:      strings.TrimSpace(raw.Link),
		Published: raw.DateGMT.value,
		Modified:  raw.Modified.value,
	}
	if raw.Embedded != nil {
		for _, m := range raw.Embedded.FeaturedMedia {
			if strings.TrimSpace(m.SourceURL) == "" {
				continue
			}
			p.FeaturedMedia = &Media{ID: m.ID, SourceURL: m.SourceURL, AltText: m.AltText}
			break
		}
	}
	return p
}

func (r rawRoot) siteInfo() SiteInfo {
	return SiteInfo{
		Name:           strings.TrimSpace(r.Name),
		Description:    r.Description,
		URL:            r.URL,
		Home:           r.Home,
		GMTOffset:      r.GMTOffset.value,
		TimezoneString: r.TimezoneString,
	}
}

func (r rawSettings) siteInfo() SiteInfo {
	return SiteInfo{
		Name:           strings.TrimSpace(r.Title),
		Description:    r.Description,
		URL:            r.URL,
		GMTOffset:      r.GMTOffset.value,
		TimezoneString: r.Timezone,
	}
}
