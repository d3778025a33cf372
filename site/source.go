package site

import (
	"context"

	"github.com/syncronet/athletos-web/wpapi"
)

//go:generate mockgen -source=source.go -destination=mock_content_test.go -package=site

// ContentSource is the read side of the CMS. Implementations never fail:
// missing content is reported as nil or an empty slice and SiteInfo always
// carries a name. *wpapi.Client satisfies it.
type ContentSource interface {
	FrontPage(ctx context.Context) *wpapi.Page
	PageBySlug(ctx context.Context, slug string) *wpapi.Page
	SiteInfo(ctx context.Context) wpapi.SiteInfo
	Pages(ctx context.Context, q wpapi.ListQuery) []wpapi.Page
	Posts(ctx context.Context, q wpapi.ListQuery) []wpapi.Post
}

var _ ContentSource = (*wpapi.Client)(nil)
