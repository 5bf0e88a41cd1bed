package sitepanel

import (
	"github.com/eringen/sitepanel/applier"
	"github.com/eringen/sitepanel/siteconfig"
)

type moduleInfo struct {
	title       string
	description string
}

var modules = map[siteconfig.LinkKey]moduleInfo{
	siteconfig.LinkFileUpload: {
		title:       "Wgrywanie plików",
		description: "Łatwe i bezpieczne przesyłanie plików z zaawansowanym systemem zarządzania danymi.",
	},
	siteconfig.LinkAISystem: {
		title:       "System AI",
		description: "Zaawansowane algorytmy AI do analizy i przetwarzania danych w czasie rzeczywistym.",
	},
	siteconfig.LinkImageAnalyzer: {
		title:       "Analizator zdjęć",
		description: "Profesjonalna analiza obrazów z wykorzystaniem najnowszych technologii computer vision.",
	},
}

var colorLabels = map[siteconfig.Role]string{
	siteconfig.RolePrimary:    "Kolor podstawowy",
	siteconfig.RoleSecondary:  "Kolor drugorzędny",
	siteconfig.RoleAccent:     "Kolor akcentujący",
	siteconfig.RoleBackground: "Kolor tła",
	siteconfig.RoleText:       "Kolor tekstu",
}

// featureCards lists the modules of snap in display order.
func featureCards(snap applier.Snapshot) []FeatureCard {
	cards := make([]FeatureCard, 0, len(modules))
	for _, key := range siteconfig.LinkKeys() {
		info := modules[key]
		cards = append(cards, FeatureCard{
			Key:         key,
			Title:       info.title,
			Description: info.description,
			Link:        snap.Link(key),
		})
	}
	return cards
}

// moduleFields lists the editor inputs for the module links of cfg.
func moduleFields(cfg siteconfig.SiteConfig) []ModuleField {
	fields := make([]ModuleField, 0, len(modules))
	for _, key := range siteconfig.LinkKeys() {
		link, _ := cfg.Links.Get(key)
		fields = append(fields, ModuleField{Key: key, Label: modules[key].title, Link: link})
	}
	return fields
}

// colorFields lists the editor inputs for the palette of cfg.
func colorFields(cfg siteconfig.SiteConfig) []ColorField {
	fields := make([]ColorField, 0, len(colorLabels))
	for _, role := range siteconfig.Roles() {
		fields = append(fields, ColorField{Role: role, Label: colorLabels[role], Value: cfg.Colors.Get(role)})
	}
	return fields
}
