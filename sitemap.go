package sitepanel

import (
	"encoding/xml"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/eringen/sitepanel/siteconfig"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

// handleSitemap lists the landing page and every module that resolves to a
// page on this site. External modules are left out.
func (a *App) handleSitemap(c echo.Context) error {
	snap := a.Applier.Snapshot()
	base := a.Config.URL
	home := BuildURL(base, "/")
	seen := map[string]bool{home: true}
	urls := []sitemapURL{{Loc: home}}
	for _, key := range siteconfig.LinkKeys() {
		r := snap.Link(key)
		if r.External() || !IsLocalPath(r.Href) {
			continue
		}
		loc, ok := localURL(base, r.Href)
		if !ok || seen[loc] {
			continue
		}
		seen[loc] = true
		urls = append(urls, sitemapURL{Loc: loc})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}

// localURL joins the path of a same-origin href onto base, keeping its query.
func localURL(base, href string) (string, bool) {
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	loc := BuildURL(base, u.Path)
	if u.RawQuery != "" {
		loc += "?" + u.RawQuery
	}
	return loc, true
}
