// Package applier projects a site configuration onto what pages consume:
// resolved module links and the palette's CSS custom properties.
//
// An Applier attached to a siteconfig.Store re-applies on every store
// notification, so readers never re-read storage on their own.
package applier

import (
	"context"
	"sync"

	"github.com/eringen/sitepanel/siteconfig"
)

// Snapshot is an immutable view of the applied configuration.
type Snapshot struct {
	Config siteconfig.SiteConfig
	// Links holds the resolution of every module key. Read only.
	Links map[siteconfig.LinkKey]Resolution
	// Revision increases on every Apply; pages use it to bust caches.
	Revision uint64
}

// Link returns the resolution for key.
func (s Snapshot) Link(key siteconfig.LinkKey) Resolution {
	return s.Links[key]
}

// Applier holds the most recently applied configuration.
type Applier struct {
	mu   sync.RWMutex
	snap Snapshot
	vars *CSSVariables
	css  string
}

// New returns an Applier with initial already applied.
func New(initial siteconfig.SiteConfig) *Applier {
	a := &Applier{vars: NewCSSVariables()}
	a.applyLocked(initial)
	return a
}

// Apply resolves links and projects the palette of cfg.
func (a *Applier) Apply(cfg siteconfig.SiteConfig) {
	a.mu.Lock()
	a.applyLocked(cfg)
	a.mu.Unlock()
}

func (a *Applier) applyLocked(cfg siteconfig.SiteConfig) {
	Project(a.vars, cfg.Colors)
	a.snap = Snapshot{
		Config:   cfg,
		Links:    ResolveAll(cfg.Links),
		Revision: a.snap.Revision + 1,
	}
	a.css = a.vars.CSS()
}

// Attach loads the current configuration from store, applies it, and keeps
// applying every later save. The returned function detaches.
func (a *Applier) Attach(ctx context.Context, store *siteconfig.Store) (detach func()) {
	// Holding mu across Subscribe and Load keeps a concurrent save's
	// notification from being overwritten by the older loaded value.
	a.mu.Lock()
	defer a.mu.Unlock()
	detach = store.Subscribe(a.Apply)
	a.applyLocked(store.Load(ctx))
	return detach
}

// Snapshot returns the applied configuration.
func (a *Applier) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snap
}

// CSS returns the :root rule for the applied palette.
func (a *Applier) CSS() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.css
}

// Variables exposes the style surface the palette is projected onto.
func (a *Applier) Variables() *CSSVariables {
	return a.vars
}
