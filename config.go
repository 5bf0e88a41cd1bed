package sitepanel

import (
	"strings"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/eringen/sitepanel/siteconfig"
)

// Config holds the server settings of a sitepanel instance. The site's
// presentation settings live in the siteconfig store, not here.
type Config struct {
	URL  string // Canonical URL (default "http://localhost:3000")
	Addr string // Listen address (default ":3000")

	DatabasePath string // SQLite path (default "data/site.db")
	ConfigKey    string // Slot key of the site record (default siteconfig.DefaultKey)

	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	RedirectDelay time.Duration // Pause on the "saved" page before returning to /admin/ (default 2s)
	LogLevel      string        // debug, info, warn or error (default "info")
}

func (c *Config) setDefaults() {
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimRight(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/site.db"
	}
	if c.ConfigKey == "" {
		c.ConfigKey = siteconfig.DefaultKey
	}
	if c.RedirectDelay == 0 {
		c.RedirectDelay = 2 * time.Second
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c Config) logLevel() log.Lvl {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are set up.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets and
// uploads (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithSlot persists the site record in slot instead of the SQLite database
// at Config.DatabasePath. The caller keeps ownership of slot.
func WithSlot(slot siteconfig.Slot) Option {
	return func(a *App) {
		a.slot = slot
	}
}
