package wpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/url"

	slogctx "github.com/veqryn/slog-context"
)

const (
	rootPath     = ""
	settingsPath = "wp/v2/settings"

	// rootFields trims the REST index to the site fields. Without it the
	// response lists every registered route.
	rootFields = "name,description,url,home,gmt_offset,timezone_string"
)

var errNoName = errors.New("site name missing")

// SiteInfoProvider is one tier of the site info degradation chain.
type SiteInfoProvider struct {
	Name  string
	Fetch func(ctx context.Context) (SiteInfo, error)
}

// SiteInfo resolves site metadata from the REST root, then the settings
// endpoint, then the static fallback. The first tier yielding a name wins
// outright; tiers are never merged.
func (c *Client) SiteInfo(ctx context.Context) SiteInfo {
	return ResolveSiteInfo(ctx, c.SiteInfoProviders()...)
}

// SiteInfoProviders lists the remote tiers in the order they are tried.
func (c *Client) SiteInfoProviders() []SiteInfoProvider {
	return []SiteInfoProvider{
		{Name: "root", Fetch: c.rootSiteInfo},
		{Name: "settings", Fetch: c.settingsSiteInfo},
	}
}

// ResolveSiteInfo tries providers in order and returns the first result with
// a non-empty name, or FallbackSiteInfo when none succeeds.
func ResolveSiteInfo(ctx context.Context, providers ...SiteInfoProvider) SiteInfo {
	logger := slogctx.FromCtx(ctx)
	for _, p := range providers {
		if p.Fetch == nil {
			continue
		}
		info, err := p.Fetch(ctx)
		if err == nil && info.Name == "" {
			err = errNoName
		}
		if errors.Is(err, errNoName) {
			logger.DebugContext(ctx, "site info tier without name", slog.String("tier", p.Name))
			continue
		}
		if err != nil {
			logger.WarnContext(ctx, "site info tier failed", slog.String("tier", p.Name), slog.Any("error", err))
			continue
		}
		return info
	}
	logger.WarnContext(ctx, "site info unavailable, using static fallback")
	return FallbackSiteInfo()
}

func (c *Client) rootSiteInfo(ctx context.Context) (SiteInfo, error) {
	var raw rawRoot
	if err := c.getJSON(ctx, rootPath, url.Values{"_fields": {rootFields}}, &raw); err != nil {
		return SiteInfo{}, err
	}
	return raw.siteInfo(), nil
}

func (c *Client) settingsSiteInfo(ctx context.Context) (SiteInfo, error) {
	var raw rawSettings
	if err := c.getJSON(ctx, settingsPath, nil, &raw); err != nil {
		return SiteInfo{}, err
	}
	return raw.siteInfo(), nil
}
