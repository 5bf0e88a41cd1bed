package sitepanel

import (
	"time"

	"github.com/eringen/sitepanel/applier"
	"github.com/eringen/sitepanel/siteconfig"
)

// PageMeta carries the per-page <head> data shared by every view.
type PageMeta struct {
	Title        string
	SiteName     string
	URL          string // canonical URL
	LogoPath     string
	ThemeHref    string // stylesheet holding the palette variables
	ManifestHref string
}

// FeatureCard is one module entry on the landing page.
type FeatureCard struct {
	Key         siteconfig.LinkKey
	Title       string
	Description string
	Link        applier.Resolution
}

// LandingPage is the public home page.
type LandingPage struct {
	Meta     PageMeta
	Config   siteconfig.SiteConfig
	Hero     applier.Resolution // call to action, follows the file upload module
	Features []FeatureCard
	IsAdmin  bool
	Year     int
}

// LoginPage is the gate entry form.
type LoginPage struct {
	Meta      PageMeta
	ShowError bool
	Next      string
	CSRFToken string
}

// DashboardPage is the admin landing view.
type DashboardPage struct {
	Meta        PageMeta
	Config      siteconfig.SiteConfig
	Links       []FeatureCard
	Contrast    float64
	LowContrast bool
	Message     string
	CSRFToken   string
}

// ModuleField is the editor input group for one module link.
type ModuleField struct {
	Key   siteconfig.LinkKey
	Label string
	Link  siteconfig.ModuleLink
}

// Name returns the form field name for a link attribute, e.g.
// "links.aiSystem.internal".
func (f ModuleField) Name(attr string) string {
	return "links." + string(f.Key) + "." + attr
}

// ColorField is the editor input for one palette role.
type ColorField struct {
	Role  siteconfig.Role
	Label string
	Value string
}

// Name returns the form field name, e.g. "colors.primary".
func (f ColorField) Name() string {
	return "colors." + string(f.Role)
}

// InstallerPage is the configuration editor.
type InstallerPage struct {
	Meta      PageMeta
	Draft     siteconfig.SiteConfig
	Modules   []ModuleField
	Colors    []ColorField
	Errors    map[string]string // inline messages keyed by field path
	CSRFToken string
}

// Error returns the inline message for a field path.
func (p InstallerPage) Error(path string) string {
	return p.Errors[path]
}

// SavedPage confirms a saved configuration and returns to RedirectTo
// after Delay.
type SavedPage struct {
	Meta       PageMeta
	RedirectTo string
	Delay      time.Duration
}
