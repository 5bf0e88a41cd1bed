package applier

import "github.com/eringen/sitepanel/siteconfig"

// NavKind says how a resolved link is navigated.
type NavKind int

const (
	// NavSameOrigin is a route transition inside the site.
	NavSameOrigin NavKind = iota
	// NavNewContext opens a new browsing context with no reference back
	// to the opener.
	NavNewContext
)

func (k NavKind) String() string {
	switch k {
	case NavSameOrigin:
		return "same-origin"
	case NavNewContext:
		return "new-context"
	default:
		return "unknown"
	}
}

// Resolution is the effective target of a module link.
type Resolution struct {
	Href string
	Kind NavKind
}

// External reports whether the link leaves the site.
func (r Resolution) External() bool {
	return r.Kind == NavNewContext
}

// TargetAttr is the anchor target attribute for r ("" for same-origin).
func (r Resolution) TargetAttr() string {
	if r.External() {
		return "_blank"
	}
	return ""
}

// RelAttr is the anchor rel attribute for r ("" for same-origin).
func (r Resolution) RelAttr() string {
	if r.External() {
		return "noopener noreferrer"
	}
	return ""
}

// Resolve computes the navigable target of link. An external selection with
// an empty or malformed URL falls back to the internal path.
func Resolve(link siteconfig.ModuleLink) Resolution {
	switch t := link.Target().(type) {
	case siteconfig.ExternalTarget:
		return Resolution{Href: t.URL, Kind: NavNewContext}
	case siteconfig.InternalTarget:
		return Resolution{Href: t.Path, Kind: NavSameOrigin}
	}
	return Resolution{Href: link.Internal, Kind: NavSameOrigin}
}

// ResolveAll resolves every module link of cfg, keyed by module.
func ResolveAll(links siteconfig.Links) map[siteconfig.LinkKey]Resolution {
	out := make(map[siteconfig.LinkKey]Resolution, 3)
	for _, key := range siteconfig.LinkKeys() {
		link, _ := links.Get(key)
		out[key] = Resolve(link)
	}
	return out
}
