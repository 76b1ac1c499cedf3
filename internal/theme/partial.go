package theme

import (
	"encoding/json"

	sablierrors "github.com/alexisbeaulieu97/sablier/pkg/errors"
)

// Partial carries the fields of a theme customization. Nil fields are left
// untouched by Merge.
type Partial struct {
	ColorScheme *ColorScheme `json:"colorScheme,omitempty"`
	Colors      *Colors      `json:"colors,omitempty"`
	Fonts       *Fonts       `json:"fonts,omitempty"`
	Spacing     Scale        `json:"spacing,omitempty"`
	Breakpoints Scale        `json:"breakpoints,omitempty"`
	Animation   *Animation   `json:"animation,omitempty"`
}

// IsEmpty reports whether p changes nothing.
func (p Partial) IsEmpty() bool {
	return p.ColorScheme == nil && p.Colors == nil && p.Fonts == nil &&
		p.Spacing == nil && p.Breakpoints == nil && p.Animation == nil
}

// Merge returns a new theme with p applied. Colors merge token by token (a
// group in p replaces the group of the same name); every other family in p
// replaces the one in t.
func (t Theme) Merge(p Partial) Theme {
	out := t.Clone()
	if p.ColorScheme != nil {
		out.ColorScheme = *p.ColorScheme
	}
	if p.Colors != nil {
		out.Colors = out.Colors.Merge(*p.Colors)
	}
	if p.Fonts != nil {
		out.Fonts = p.Fonts.Clone()
	}
	if p.Spacing != nil {
		out.Spacing = p.Spacing.Clone()
	}
	if p.Breakpoints != nil {
		out.Breakpoints = p.Breakpoints.Clone()
	}
	if p.Animation != nil {
		out.Animation = p.Animation.Clone()
	}
	return out
}

// ColorOverride builds a partial that sets a single flat color token.
func ColorOverride(key, value string) Partial {
	colors := NewColors(map[string]string{key: value}, nil)
	return Partial{Colors: &colors}
}

// SchemeOverride builds a partial that changes only the color scheme.
func SchemeOverride(scheme ColorScheme) Partial {
	return Partial{ColorScheme: &scheme}
}

// DecodePartial parses a JSON customization document.
func DecodePartial(data []byte) (Partial, error) {
	var p Partial
	if err := json.Unmarshal(data, &p); err != nil {
		return Partial{}, sablierrors.NewParseError("", 0, err)
	}
	if p.ColorScheme != nil && !p.ColorScheme.Valid() {
		return Partial{}, sablierrors.NewValidationError("colorScheme", "unknown color scheme "+string(*p.ColorScheme), nil)
	}
	return p, nil
}
