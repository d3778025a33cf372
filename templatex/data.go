package templatex

import "html/template"

// PageData represents the data model expected by the default layout.
type PageData struct {
	SiteName        string
	SiteDescription string
	Title           string
	TitleHTML       template.HTML
	PageTitle       string
	ContentHTML     template.HTML
	ContentTemplate string
	ActivePath      string
	RequestedPath   string
	Canonical       string
	Live            bool
	Year            int
	Menu            []MenuItem
	Breadcrumbs     []Breadcrumb
	Hero            *Hero
	Features        []Card
	Services        []Service
	Support         []Card
	Posts           []PostSummary
	Image           *Image
	Published       string
	PublishedISO    string
	Contact         Contact
	Meta            Meta
}

// Meta holds SEO-oriented metadata for the rendered page.
type Meta struct {
	Description   string
	OpenGraphType string
	OpenGraphSite string
	Image         string
	NoIndex       bool
}

// MenuItem is a navigation link.
type MenuItem struct {
	Title string
	URL   string
}

// Breadcrumb models a single breadcrumb entry for navigation.
type Breadcrumb struct {
	Title   string
	Path    string
	Current bool
}

// Hero is the large banner on top of the home page.
type Hero struct {
	Title    string
	Subtitle string
	CTAHref  string
	Stats    []Stat
}

// Stat is a short figure shown in the hero.
type Stat struct {
	Value string
	Label string
}

// Card is a titled text block.
type Card struct {
	Icon  string
	Title string
	Text  string
}

// Service is one block on the services page.
type Service struct {
	ID      string
	Tag     string
	Title   string
	Text    string
	Bullets []string
	CTA     string
}

// PostSummary is a blog listing entry.
type PostSummary struct {
	Title        string
	URL          string
	Excerpt      string
	Published    string
	PublishedISO string
	Image        *Image
}

// Image is a featured image.
type Image struct {
	URL string
	Alt string
}

// Contact carries the details printed in the footer and contact blocks.
type Contact struct {
	Email   string
	Phone   string
	Address string
}
