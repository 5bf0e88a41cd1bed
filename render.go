package sitepanel

import (
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/sitepanel/applier"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// pageMeta builds the <head> data for a page from the applied snapshot.
// title "" means the site name alone.
func (a *App) pageMeta(snap applier.Snapshot, path, title string) PageMeta {
	name := snap.Config.SiteName
	full := name
	if title != "" {
		full = title + " | " + name
	}
	return PageMeta{
		Title:        full,
		SiteName:     name,
		URL:          BuildURL(a.Config.URL, path),
		LogoPath:     snap.Config.Logo.Path,
		ThemeHref:    "/theme.css?v=" + strconv.FormatUint(snap.Revision, 10),
		ManifestHref: "/site.webmanifest",
	}
}
