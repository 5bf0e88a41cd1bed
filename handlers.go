package sitepanel

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/sitepanel/siteconfig"
)

func (a *App) handleLanding(c echo.Context) error {
	snap := a.Applier.Snapshot()
	return Render(c, a.Views.Landing(LandingPage{
		Meta:     a.pageMeta(snap, "/", ""),
		Config:   snap.Config,
		Hero:     snap.Link(siteconfig.LinkFileUpload),
		Features: featureCards(snap),
		IsAdmin:  IsAdmin(c),
		Year:     time.Now().Year(),
	}))
}

// handleThemeCSS serves the palette as custom properties on :root.
func (a *App) handleThemeCSS(c echo.Context) error {
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", []byte(a.Applier.CSS()))
}

type webManifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	StartURL        string         `json:"start_url"`
	Icons           []manifestIcon `json:"icons"`
	ThemeColor      string         `json:"theme_color"`
	BackgroundColor string         `json:"background_color"`
	Display         string         `json:"display"`
}

type manifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type,omitempty"`
}

func (a *App) handleManifest(c echo.Context) error {
	cfg := a.Applier.Snapshot().Config
	m := webManifest{
		Name:            cfg.SiteName,
		ShortName:       cfg.SiteName,
		StartURL:        "/",
		ThemeColor:      cfg.Colors.Primary,
		BackgroundColor: cfg.Colors.Background,
		Display:         "standalone",
	}
	if cfg.Logo.Path != "" {
		m.Icons = append(m.Icons, iconFor(cfg.Logo.Path))
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/manifest+json; charset=utf-8", b)
}

func iconFor(src string) manifestIcon {
	switch strings.ToLower(filepath.Ext(src)) {
	case ".svg":
		return manifestIcon{Src: src, Sizes: "any", Type: "image/svg+xml"}
	case ".png":
		return manifestIcon{Src: src, Sizes: "32x32", Type: "image/png"}
	case ".jpg", ".jpeg":
		return manifestIcon{Src: src, Sizes: "32x32", Type: "image/jpeg"}
	}
	return manifestIcon{Src: src, Sizes: "32x32"}
}

// handleRobots generates robots.txt from the canonical URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

// handleLogo serves logo.svg from the static dir, or the bundled default.
func (a *App) handleLogo(c echo.Context) error {
	own := filepath.Join(a.staticDir, "logo.svg")
	if _, err := os.Stat(own); err == nil {
		return c.File(own)
	}
	return echo.StaticFileHandler("embedded/logo.svg", EmbeddedAssets)(c)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	meta := a.pageMeta(a.Applier.Snapshot(), c.Request().URL.Path, "")
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		meta.Title = "Nie znaleziono | " + meta.SiteName
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(meta))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		meta.Title = "Błąd serwera | " + meta.SiteName
		_ = RenderStatus(c, code, a.Views.ServerError(meta))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
