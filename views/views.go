// Package views provides the default templ components for sitepanel.
//
// Pages are html/template documents embedded from templates/ and exposed as
// templ.Component values, so a site can replace any of them with its own
// templ code through sitepanel.ViewFuncs.
package views

import (
	"context"
	"embed"
	"html/template"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/sitepanel"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"seconds": func(d time.Duration) int {
		return int(math.Ceil(d.Seconds()))
	},
	"ratio": formatRatio,
}).ParseFS(templateFS, "templates/*.html"))

// page renders the named template as a templ component.
func page(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return pages.ExecuteTemplate(w, name, data)
	})
}

// Defaults returns the built-in view set.
func Defaults() sitepanel.ViewFuncs {
	return sitepanel.ViewFuncs{
		Landing:        Landing,
		AdminLogin:     AdminLogin,
		AdminDashboard: AdminDashboard,
		Installer:      Installer,
		InstallerSaved: InstallerSaved,
		NotFound:       NotFound,
		ServerError:    ServerError,
	}
}

func Landing(p sitepanel.LandingPage) templ.Component { return page("landing", p) }

func AdminLogin(p sitepanel.LoginPage) templ.Component { return page("login", p) }

func AdminDashboard(p sitepanel.DashboardPage) templ.Component { return page("dashboard", p) }

func Installer(p sitepanel.InstallerPage) templ.Component { return page("installer", p) }

func InstallerSaved(p sitepanel.SavedPage) templ.Component { return page("saved", p) }

func NotFound(m sitepanel.PageMeta) templ.Component { return page("notfound", m) }

func ServerError(m sitepanel.PageMeta) templ.Component { return page("servererror", m) }

// formatRatio prints a contrast ratio as "4.5:1".
func formatRatio(f float64) string {
	return strconv.FormatFloat(math.Round(f*10)/10, 'f', -1, 64) + ":1"
}
