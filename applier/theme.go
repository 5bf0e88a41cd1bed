package applier

import (
	"fmt"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/eringen/sitepanel/siteconfig"
)

// StyleSurface receives named style variables, e.g. a document root.
type StyleSurface interface {
	SetProperty(name, value string)
}

// VarName returns the custom property name for a palette role.
func VarName(role siteconfig.Role) string {
	return "--color-" + string(role)
}

// Project sets all five palette variables on surface.
func Project(surface StyleSurface, palette siteconfig.ColorPalette) {
	for _, role := range siteconfig.Roles() {
		surface.SetProperty(VarName(role), palette.Get(role))
	}
}

// CSSVariables is a document-level StyleSurface rendered as a :root rule.
type CSSVariables struct {
	mu    sync.RWMutex
	props map[string]string
}

// NewCSSVariables returns an empty surface.
func NewCSSVariables() *CSSVariables {
	return &CSSVariables{props: make(map[string]string)}
}

// SetProperty implements StyleSurface.
func (v *CSSVariables) SetProperty(name, value string) {
	v.mu.Lock()
	v.props[name] = value
	v.mu.Unlock()
}

// Property returns the current value of name.
func (v *CSSVariables) Property(name string) (string, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	val, ok := v.props[name]
	return val, ok
}

// CSS renders the palette variables in role order.
func (v *CSSVariables) CSS() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, role := range siteconfig.Roles() {
		name := VarName(role)
		if val, ok := v.props[name]; ok {
			fmt.Fprintf(&b, "  %s: %s;\n", name, val)
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// MinTextContrast is the WCAG AA ratio for body text.
const MinTextContrast = 4.5

// ContrastRatio returns the WCAG contrast ratio between two hex colors.
func ContrastRatio(fg, bg string) (float64, error) {
	a, err := colorful.Hex(fg)
	if err != nil {
		return 0, fmt.Errorf("foreground: %w", err)
	}
	b, err := colorful.Hex(bg)
	if err != nil {
		return 0, fmt.Errorf("background: %w", err)
	}
	la, lb := luminance(a), luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05), nil
}

func luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
