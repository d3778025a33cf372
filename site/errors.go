package site

import "errors"

var (
	// ErrNotFound signals that neither the CMS nor the built-in copy has the route.
	ErrNotFound = errors.New("page not found")
	// ErrInvalidSlug rejects slugs that cannot name a page.
	ErrInvalidSlug = errors.New("invalid page slug")
)
