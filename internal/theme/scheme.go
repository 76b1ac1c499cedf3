package theme

import (
	"fmt"
	"strings"
)

// ColorScheme is the caller's intent. SchemeSystem is an instruction to follow
// the host preference and is never rendered directly.
type ColorScheme string

const (
	SchemeLight  ColorScheme = "light"
	SchemeDark   ColorScheme = "dark"
	SchemeSystem ColorScheme = "system"
)

// ResolvedScheme is the scheme actually rendered.
type ResolvedScheme string

const (
	ResolvedLight ResolvedScheme = "light"
	ResolvedDark  ResolvedScheme = "dark"
)

// Schemes lists every selectable color scheme in display order.
func Schemes() []string {
	return []string{string(SchemeLight), string(SchemeDark), string(SchemeSystem)}
}

// ParseColorScheme accepts light, dark or system in any case.
func ParseColorScheme(value string) (ColorScheme, error) {
	switch ColorScheme(strings.ToLower(strings.TrimSpace(value))) {
	case SchemeLight:
		return SchemeLight, nil
	case SchemeDark:
		return SchemeDark, nil
	case SchemeSystem:
		return SchemeSystem, nil
	default:
		return "", fmt.Errorf("unknown color scheme %q (want light, dark or system)", value)
	}
}

// ParseResolvedScheme accepts light or dark in any case.
func ParseResolvedScheme(value string) (ResolvedScheme, error) {
	switch ResolvedScheme(strings.ToLower(strings.TrimSpace(value))) {
	case ResolvedLight:
		return ResolvedLight, nil
	case ResolvedDark:
		return ResolvedDark, nil
	default:
		return "", fmt.Errorf("unknown resolved scheme %q (want light or dark)", value)
	}
}

// Valid reports whether s is one of the three known schemes.
func (s ColorScheme) Valid() bool {
	return s == SchemeLight || s == SchemeDark || s == SchemeSystem
}

// Valid reports whether r is light or dark.
func (r ResolvedScheme) Valid() bool {
	return r == ResolvedLight || r == ResolvedDark
}

// Opposite returns the other rendered scheme.
func (r ResolvedScheme) Opposite() ResolvedScheme {
	if r == ResolvedDark {
		return ResolvedLight
	}
	return ResolvedDark
}

// Resolve turns a color scheme into a rendered one. system is the observed
// host preference and may be empty when nothing has been reported yet; the
// result is light in that case and for any unknown scheme.
func Resolve(scheme ColorScheme, system ResolvedScheme) ResolvedScheme {
	switch scheme {
	case SchemeDark:
		return ResolvedDark
	case SchemeSystem:
		if system == ResolvedDark {
			return ResolvedDark
		}
		return ResolvedLight
	default:
		return ResolvedLight
	}
}
