package site

import (
	"github.com/syncronet/athletos-web/templatex"
)

const homeCrumbTitle = "Forside"

func buildBreadcrumbs(route, title string) []templatex.Breadcrumb {
	if route == "" || route == "/" {
		return nil
	}
	return []templatex.Breadcrumb{
		{Title: homeCrumbTitle, Path: "/"},
		{Title: title, Current: true},
	}
}
