package siteconfig

import (
	"regexp"
	"strings"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// IsHexColor reports whether s is a #RRGGBB color.
func IsHexColor(s string) bool {
	return hexColor.MatchString(s)
}

// Validate applies the save-time rules: a non-blank site name, a non-blank
// internal path for every module, and #RRGGBB values for every palette role.
// External URLs are not checked here; resolution falls back for bad ones.
func Validate(cfg SiteConfig) error {
	verr := &ValidationError{}
	if strings.TrimSpace(cfg.SiteName) == "" {
		verr.add("siteName", "site name is required")
	}
	for _, key := range LinkKeys() {
		link, _ := cfg.Links.Get(key)
		if strings.TrimSpace(link.Internal) == "" {
			verr.add("links."+string(key)+".internal", "internal path is required")
		}
	}
	for _, role := range Roles() {
		if v := cfg.Colors.Get(role); !IsHexColor(v) {
			verr.add("colors."+string(role), "color must be in #RRGGBB format")
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}
