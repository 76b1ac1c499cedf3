// Package cssvars projects themes into CSS custom properties, both onto a live
// root scope and as static style sheet text.
package cssvars

import (
	"sort"
	"strings"

	"github.com/alexisbeaulieu97/sablier/internal/theme"
)

// ThemeAttribute is the root attribute that carries the resolved scheme.
const ThemeAttribute = "data-theme"

// TransitionGuardClass suppresses CSS transitions while a theme is swapped.
const TransitionGuardClass = "disable-transitions"

// Property is a single CSS custom property. Name includes the leading "--".
type Property struct {
	Name  string
	Value string
}

// ColorProperties maps flat tokens to "--<key>" and group members to
// "--<group>-<key>", sorted by name.
func ColorProperties(colors theme.Colors) []Property {
	props := make([]Property, 0, len(colors.TokenKeys()))
	colors.Each(func(name, value string) {
		props = append(props, Property{Name: "--" + name, Value: value})
	})
	sortProperties(props)
	return props
}

// ThemeProperties returns the color properties followed by the font, spacing,
// breakpoint and animation properties of t. Each section is sorted.
func ThemeProperties(t theme.Theme) []Property {
	props := ColorProperties(t.Colors)
	props = append(props, categoryProperties("font", t.Fonts.Categories())...)
	props = append(props, scaleProperties("spacing", t.Spacing)...)
	props = append(props, scaleProperties("breakpoint", t.Breakpoints)...)
	props = append(props, categoryProperties("animation", t.Animation.Categories())...)
	return props
}

// SpacingName returns the property suffix for a spacing key; "0.5" becomes
// "0_5" since dots are not valid in custom property names.
func SpacingName(key string) string {
	return strings.ReplaceAll(key, ".", "_")
}

func scaleProperties(prefix string, scale theme.Scale) []Property {
	props := make([]Property, 0, len(scale))
	for _, key := range scale.Keys() {
		name := key
		if prefix == "spacing" {
			name = SpacingName(key)
		}
		props = append(props, Property{Name: "--" + prefix + "-" + name, Value: scale[key]})
	}
	sortProperties(props)
	return props
}

func categoryProperties(prefix string, categories map[string]theme.Scale) []Property {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	var props []Property
	for _, category := range names {
		scale := categories[category]
		for _, key := range scale.Keys() {
			props = append(props, Property{Name: "--" + prefix + "-" + category + "-" + key, Value: scale[key]})
		}
	}
	sortProperties(props)
	return props
}

func sortProperties(props []Property) {
	sort.SliceStable(props, func(i, j int) bool { return props[i].Name < props[j].Name })
}
