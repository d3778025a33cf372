package wpapi

import "time"

const (
	// FallbackSiteName is reported when no remote tier yields a site name.
	FallbackSiteName = "SYNCRONET ApS"
	// FallbackSiteDescription accompanies FallbackSiteName.
	FallbackSiteDescription = "Athletos Starter — synkronisering af sportsdata."

	// DefaultPerPage is the page size used by list lookups when none is given.
	DefaultPerPage = 100
	// MaxPerPage is the largest page size the WordPress REST API accepts.
	MaxPerPage = 100
)

// SiteInfo describes CMS-level configuration. Name is always populated.
type SiteInfo struct {
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	URL            string  `json:"url,omitempty"`
	Home           string  `json:"home,omitempty"`
	GMTOffset      float64 `json:"gmtOffset,omitempty"`
	TimezoneString string  `json:"timezoneString,omitempty"`
}

// FallbackSiteInfo returns the static record used when the CMS is unavailable.
func FallbackSiteInfo() SiteInfo {
	return SiteInfo{Name: FallbackSiteName, Description: FallbackSiteDescription}
}

// Media is an attachment embedded alongside a page or post.
type Media struct {
	ID        int    `json:"id"`
	SourceURL string `json:"sourceUrl"`
	AltText   string `json:"altText,omitempty"`
}

// Page is a CMS page. Title and Content carry CMS-rendered HTML and are not
// sanitized here.
type Page struct {
	ID            int       `json:"id"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Excerpt       string    `json:"excerpt,omitempty"`
	Link          string    `json:"link,omitempty"`
	Published     time.Time `json:"published,omitzero"`
	Modified      time.Time `json:"modified,omitzero"`
	FeaturedMedia *Media    `json:"featuredMedia,omitempty"`
}

// Post has the shape of a Page but comes from the posts collection.
type Post Page

// ListQuery controls collection lookups. The zero value requests DefaultPerPage
// published items without embedded resources.
type ListQuery struct {
	PerPage int
	Embed   bool
}

func (q ListQuery) perPage() int {
	switch {
	case q.PerPage <= 0:
		return DefaultPerPage
	case q.PerPage > MaxPerPage:
		return MaxPerPage
	default:
		return q.PerPage
	}
}
