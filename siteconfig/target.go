package siteconfig

import (
	"net/url"
	"strings"
)

// Target is the effective destination of a module link: either an
// InternalTarget or an ExternalTarget.
type Target interface {
	isTarget()
}

// InternalTarget is a path in the site's own route space.
type InternalTarget struct {
	Path string
}

// ExternalTarget is an absolute http(s) URL opened in a new browsing context.
type ExternalTarget struct {
	URL string
}

func (InternalTarget) isTarget() {}
func (ExternalTarget) isTarget() {}

// Target converts the persisted flag shape into a tagged target. An external
// selection without a usable URL falls back to the internal path.
func (l ModuleLink) Target() Target {
	if l.UseExternal && IsAbsoluteURL(l.External) {
		return ExternalTarget{URL: strings.TrimSpace(l.External)}
	}
	return InternalTarget{Path: l.Internal}
}

// LinkFromTarget returns base with t selected. The unselected side of base
// is kept, so switching modes never loses a typed path or URL.
func LinkFromTarget(base ModuleLink, t Target) ModuleLink {
	switch t := t.(type) {
	case ExternalTarget:
		base.External = t.URL
		base.UseExternal = true
	case InternalTarget:
		if t.Path != "" {
			base.Internal = t.Path
		}
		base.UseExternal = false
	}
	return base
}

// IsAbsoluteURL reports whether raw is an absolute http or https URL with a
// host. Other schemes are rejected so a link can never run script.
func IsAbsoluteURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return true
	}
	return false
}
