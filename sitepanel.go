// Package sitepanel serves a configurable landing page and the admin editor
// that configures it, built with Go, Echo, and templ.
//
// The site name, logo, banner, module links and color palette live in a
// siteconfig.Store. Every confirmed edit is applied immediately to the
// landing page, the theme stylesheet and the web manifest.
//
// Users can supply their own templ templates via the ViewFuncs struct; the
// views package provides a default set.
package sitepanel

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/sitepanel/applier"
	"github.com/eringen/sitepanel/siteconfig"
)

// ViewFuncs holds the templ components the App renders.
type ViewFuncs struct {
	Landing        func(page LandingPage) templ.Component
	AdminLogin     func(page LoginPage) templ.Component
	AdminDashboard func(page DashboardPage) templ.Component
	Installer      func(page InstallerPage) templ.Component
	InstallerSaved func(page SavedPage) templ.Component
	NotFound       func(meta PageMeta) templ.Component
	ServerError    func(meta PageMeta) templ.Component
}

// App wires together the config store, the applier, handlers, middleware,
// and the views.
type App struct {
	Config  Config
	Echo    *echo.Echo
	Store   *siteconfig.Store
	Applier *applier.Applier
	Views   ViewFuncs

	slot         siteconfig.Slot
	sqlite       *siteconfig.SQLiteSlot
	detach       func()
	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
	ready        bool
}

// New creates a new App with the given configuration and view functions.
func New(cfg Config, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}
	a.Echo.HideBanner = true
	a.Echo.Logger.SetLevel(cfg.logLevel())

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup opens the store, applies the current configuration, and registers
// middleware and routes. Start calls it; tests call it directly and drive
// a.Echo as an http.Handler.
func (a *App) Setup(ctx context.Context) error {
	if a.ready {
		return nil
	}
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("sitepanel: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("sitepanel: SessionSecret is required")
	}

	if a.slot == nil {
		slot, err := siteconfig.OpenSQLite(a.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("sitepanel: open store: %w", err)
		}
		a.sqlite = slot
		a.slot = slot
	}
	a.Store = siteconfig.NewStore(a.slot,
		siteconfig.WithKey(a.Config.ConfigKey),
		siteconfig.WithLogger(a.Echo.Logger),
	)

	a.Applier = applier.New(siteconfig.Default())
	a.detach = a.Applier.Attach(ctx, a.Store)
	a.Store.Subscribe(func(cfg siteconfig.SiteConfig) {
		a.Echo.Logger.Infof("site config applied: %q", cfg.SiteName)
	})

	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// Start sets the App up and serves HTTP until the server is shut down.
func (a *App) Start() error {
	if err := a.Setup(context.Background()); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework stylesheet, served under /public/ ahead of the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/site.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/logo.svg", a.handleLogo)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/site.webmanifest", a.handleManifest)
	e.GET("/theme.css", a.handleThemeCSS)
	e.GET("/", a.handleLanding)

	// Gate entry.
	e.GET(loginPath, a.handleLoginPage)
	e.POST(loginPath, a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)

	admin := e.Group("/admin", requireAdmin)
	admin.GET("/", a.handleDashboard)
	admin.GET("/installer/", a.handleInstaller)
	admin.POST("/installer/", a.handleInstallerConfirm)
	admin.POST("/reset/", a.handleReset)
}

// Close detaches the applier and releases the store. Call this when the app
// is shutting down.
func (a *App) Close() error {
	if a.detach != nil {
		a.detach()
	}
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.sqlite != nil {
		return a.sqlite.Close()
	}
	return nil
}
