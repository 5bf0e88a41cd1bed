// Package siteconfig owns the site presentation configuration: its schema,
// the built-in defaults, validation, and the persisted record.
//
// A Store loads the record merged over the defaults, validates and writes
// whole configurations, and notifies subscribers after every successful write.
package siteconfig

// ColorPalette holds the five fixed color roles of the site theme.
type ColorPalette struct {
	Primary    string `json:"primary" yaml:"primary"`
	Secondary  string `json:"secondary" yaml:"secondary"`
	Accent     string `json:"accent" yaml:"accent"`
	Background string `json:"background" yaml:"background"`
	Text       string `json:"text" yaml:"text"`
}

// Role is the name of a palette slot.
type Role string

const (
	RolePrimary    Role = "primary"
	RoleSecondary  Role = "secondary"
	RoleAccent     Role = "accent"
	RoleBackground Role = "background"
	RoleText       Role = "text"
)

// Roles returns the palette roles in their canonical order.
func Roles() []Role {
	return []Role{RolePrimary, RoleSecondary, RoleAccent, RoleBackground, RoleText}
}

// Get returns the color assigned to role, or "" for an unknown role.
func (p ColorPalette) Get(role Role) string {
	switch role {
	case RolePrimary:
		return p.Primary
	case RoleSecondary:
		return p.Secondary
	case RoleAccent:
		return p.Accent
	case RoleBackground:
		return p.Background
	case RoleText:
		return p.Text
	}
	return ""
}

// ModuleLink points a feature entry at either an internal route or an
// external URL. Internal is always populated and is the fallback target.
type ModuleLink struct {
	Internal    string `json:"internal" yaml:"internal"`
	External    string `json:"external,omitempty" yaml:"external,omitempty"`
	UseExternal bool   `json:"useExternal" yaml:"useExternal"`
}

// Logo describes the header logo image.
type Logo struct {
	Path string `json:"path" yaml:"path"`
	Alt  string `json:"alt" yaml:"alt"`
}

// Banner describes the landing page hero image.
type Banner struct {
	URL string `json:"url" yaml:"url"`
	Alt string `json:"alt" yaml:"alt"`
}

// LinkKey names one of the three fixed feature modules.
type LinkKey string

const (
	LinkFileUpload    LinkKey = "fileUpload"
	LinkAISystem      LinkKey = "aiSystem"
	LinkImageAnalyzer LinkKey = "imageAnalyzer"
)

// LinkKeys returns the closed set of module keys in display order.
func LinkKeys() []LinkKey {
	return []LinkKey{LinkFileUpload, LinkAISystem, LinkImageAnalyzer}
}

// Links maps the fixed module keys to their links.
type Links struct {
	FileUpload    ModuleLink `json:"fileUpload" yaml:"fileUpload"`
	AISystem      ModuleLink `json:"aiSystem" yaml:"aiSystem"`
	ImageAnalyzer ModuleLink `json:"imageAnalyzer" yaml:"imageAnalyzer"`
}

// Get returns the link stored under key.
func (l Links) Get(key LinkKey) (ModuleLink, bool) {
	switch key {
	case LinkFileUpload:
		return l.FileUpload, true
	case LinkAISystem:
		return l.AISystem, true
	case LinkImageAnalyzer:
		return l.ImageAnalyzer, true
	}
	return ModuleLink{}, false
}

// Set replaces the link stored under key. Unknown keys are ignored and
// reported with false.
func (l *Links) Set(key LinkKey, link ModuleLink) bool {
	switch key {
	case LinkFileUpload:
		l.FileUpload = link
	case LinkAISystem:
		l.AISystem = link
	case LinkImageAnalyzer:
		l.ImageAnalyzer = link
	default:
		return false
	}
	return true
}

// SiteConfig is the whole presentation configuration of a site.
type SiteConfig struct {
	SiteName string       `json:"siteName" yaml:"siteName"`
	Logo     Logo         `json:"logo" yaml:"logo"`
	Banner   Banner       `json:"banner" yaml:"banner"`
	Links    Links        `json:"links" yaml:"links"`
	Colors   ColorPalette `json:"colors" yaml:"colors"`
}

// DefaultKey is the name of the slot holding the persisted record.
const DefaultKey = "aiAnalyticsConfig"

// Default returns the built-in configuration used before anything is saved.
func Default() SiteConfig {
	return SiteConfig{
		SiteName: "AI Analytics",
		Logo: Logo{
			Path: "/logo.svg",
			Alt:  "AI Analytics Logo",
		},
		Banner: Banner{
			URL: "https://images.unsplash.com/photo-1451187580459-43490279c0fa?auto=format&fit=crop&q=80",
			Alt: "Banner",
		},
		Links: Links{
			FileUpload:    ModuleLink{Internal: "/wgrywanie-plikow"},
			AISystem:      ModuleLink{Internal: "/system-ai"},
			ImageAnalyzer: ModuleLink{Internal: "/analizator-zdjec"},
		},
		Colors: ColorPalette{
			Primary:    "#2563eb",
			Secondary:  "#1e40af",
			Accent:     "#3b82f6",
			Background: "#f3f4f6",
			Text:       "#111827",
		},
	}
}
