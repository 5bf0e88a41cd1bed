package sitepanel

import (
	"net/url"
	"strings"

	"github.com/eringen/sitepanel/siteconfig"
)

// draftFromForm overlays the submitted editor fields onto base. Fields the
// form does not carry keep their base value. Field names are the JSON paths
// of the record; link mode comes from the "links.<key>.mode" radio.
func draftFromForm(form url.Values, base siteconfig.SiteConfig) siteconfig.SiteConfig {
	draft := base
	text := func(name string, dst *string) {
		if vals, ok := form[name]; ok && len(vals) > 0 {
			*dst = strings.TrimSpace(vals[0])
		}
	}

	text("siteName", &draft.SiteName)
	text("logo.path", &draft.Logo.Path)
	text("logo.alt", &draft.Logo.Alt)
	text("banner.url", &draft.Banner.URL)
	text("banner.alt", &draft.Banner.Alt)

	for _, key := range siteconfig.LinkKeys() {
		link, _ := draft.Links.Get(key)
		prefix := "links." + string(key) + "."
		text(prefix+"internal", &link.Internal)
		text(prefix+"external", &link.External)
		if mode, ok := form[prefix+"mode"]; ok && len(mode) > 0 {
			var target siteconfig.Target = siteconfig.InternalTarget{Path: link.Internal}
			if mode[0] == "external" {
				target = siteconfig.ExternalTarget{URL: link.External}
			}
			link = siteconfig.LinkFromTarget(link, target)
		}
		draft.Links.Set(key, link)
	}

	colors := map[siteconfig.Role]*string{
		siteconfig.RolePrimary:    &draft.Colors.Primary,
		siteconfig.RoleSecondary:  &draft.Colors.Secondary,
		siteconfig.RoleAccent:     &draft.Colors.Accent,
		siteconfig.RoleBackground: &draft.Colors.Background,
		siteconfig.RoleText:       &draft.Colors.Text,
	}
	for _, role := range siteconfig.Roles() {
		text("colors."+string(role), colors[role])
	}
	return draft
}
