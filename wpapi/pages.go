package wpapi

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	pagesPath = "wp/v2/pages"
	postsPath = "wp/v2/posts"

	frontPageTitle = "Forside"
)

// FrontPage returns the first page in the CMS default ordering, or nil when
// it cannot be retrieved.
func (c *Client) FrontPage(ctx context.Context) *Page {
	query := url.Values{"per_page": {"1"}}
	return c.firstPage(ctx, query, "", frontPageTitle)
}

// PageBySlug returns the page whose slug matches, or nil when there is no
// match or the lookup fails. Matching is left to the CMS.
func (c *Client) PageBySlug(ctx context.Context, slug string) *Page {
	slug = norm.NFC.String(strings.TrimSpace(slug))
	if slug == "" {
		return nil
	}
	query := url.Values{"slug": {slug}, "per_page": {"1"}}
	return c.firstPage(ctx, query, slug, slug)
}

// Pages lists published pages. It returns an empty slice on any failure.
func (c *Client) Pages(ctx context.Context, q ListQuery) []Page {
	raws := c.list(ctx, pagesPath, q)
	pages := make([]Page, 0, len(raws))
	for _, raw := range raws {
		pages = append(pages, normalizePage(raw, "", raw.Slug))
	}
	return pages
}

// Posts lists published posts. It returns an empty slice on any failure.
func (c *Client) Posts(ctx context.Context, q ListQuery) []Post {
	raws := c.list(ctx, postsPath, q)
	posts := make([]Post, 0, len(raws))
	for _, raw := range raws {
		posts = append(posts, Post(normalizePage(raw, "", raw.Slug)))
	}
	return posts
}

func (c *Client) firstPage(ctx context.Context, query url.Values, slugFallback, titleFallback string) *Page {
	var raws []rawPost
	if err := c.getJSON(ctx, pagesPath, query, &raws); err != nil {
		logFailure(ctx, pagesPath, err)
		return nil
	}
	if len(raws) == 0 || !raws[0].valid() {
		logFailure(ctx, pagesPath, errEmpty)
		return nil
	}
	page := normalizePage(raws[0], slugFallback, titleFallback)
	return &page
}

func (c *Client) list(ctx context.Context, path string, q ListQuery) []rawPost {
	query := url.Values{
		"per_page": {strconv.Itoa(q.perPage())},
		"status":   {"publish"},
	}
	if q.Embed {
		query.Set("_embed", "1")
	}

	var raws []rawPost
	if err := c.getJSON(ctx, path, query, &raws); err != nil {
		logFailure(ctx, path, err)
		return nil
	}
	valid := raws[:0]
	for _, raw := range raws {
		if raw.valid() {
			valid = append(valid, raw)
		}
	}
	if len(valid) == 0 {
		logFailure(ctx, path, errEmpty)
	}
	return valid
}
