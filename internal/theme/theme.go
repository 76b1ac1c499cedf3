// Package theme defines the theme data model: color schemes, color tokens,
// the font, spacing, breakpoint and animation scales, and the canonical light,
// dark and system themes. Values in this package never change once built;
// modifiers return new values.
package theme

// Fonts groups the typography scales.
type Fonts struct {
	Family     Scale `json:"family" validate:"required,min=1,dive,keys,token_key,endkeys,token_value"`
	Size       Scale `json:"size" validate:"required,min=1,dive,keys,token_key,endkeys,token_value"`
	Weight     Scale `json:"weight" validate:"required,min=1,dive,keys,token_key,endkeys,token_value"`
	LineHeight Scale `json:"lineHeight" validate:"required,min=1,dive,keys,token_key,endkeys,token_value"`
}

// Clone returns an independent copy of f.
func (f Fonts) Clone() Fonts {
	return Fonts{
		Family:     f.Family.Clone(),
		Size:       f.Size.Clone(),
		Weight:     f.Weight.Clone(),
		LineHeight: f.LineHeight.Clone(),
	}
}

// Categories returns the scales keyed by their projected category name.
func (f Fonts) Categories() map[string]Scale {
	return map[string]Scale{
		"family":     f.Family,
		"size":       f.Size,
		"weight":     f.Weight,
		"lineHeight": f.LineHeight,
	}
}

// Animation groups motion durations and easing curves.
type Animation struct {
	Duration Scale `json:"duration" validate:"required,min=1,dive,keys,token_key,endkeys,token_value"`
	Easing   Scale `json:"easing" validate:"required,min=1,dive,keys,token_key,endkeys,token_value"`
}

// Clone returns an independent copy of a.
func (a Animation) Clone() Animation {
	return Animation{Duration: a.Duration.Clone(), Easing: a.Easing.Clone()}
}

// Categories returns the scales keyed by their projected category name.
func (a Animation) Categories() map[string]Scale {
	return map[string]Scale{
		"duration": a.Duration,
		"easing":   a.Easing,
	}
}

// Theme is a complete set of presentation values plus the color scheme the
// caller asked for.
type Theme struct {
	ColorScheme ColorScheme `json:"colorScheme" validate:"required,color_scheme"`
	Colors      Colors      `json:"colors"`
	Fonts       Fonts       `json:"fonts"`
	Spacing     Scale       `json:"spacing" validate:"required,min=1,dive,keys,spacing_key,endkeys,token_value"`
	Breakpoints Scale       `json:"breakpoints" validate:"required,min=1,dive,keys,token_key,endkeys,token_value"`
	Animation   Animation   `json:"animation"`
}

// Clone returns a deep copy of t so the caller may hand it out without
// sharing any map with the original.
func (t Theme) Clone() Theme {
	return Theme{
		ColorScheme: t.ColorScheme,
		Colors:      t.Colors.Clone(),
		Fonts:       t.Fonts.Clone(),
		Spacing:     t.Spacing.Clone(),
		Breakpoints: t.Breakpoints.Clone(),
		Animation:   t.Animation.Clone(),
	}
}

// WithColorScheme returns a copy of t with a different color scheme.
func (t Theme) WithColorScheme(scheme ColorScheme) Theme {
	out := t.Clone()
	out.ColorScheme = scheme
	return out
}

// Light returns the default theme.
func Light() Theme {
	return Theme{
		ColorScheme: SchemeLight,
		Colors:      LightColors(),
		Fonts:       defaultFonts(),
		Spacing:     defaultSpacing(),
		Breakpoints: defaultBreakpoints(),
		Animation:   defaultAnimation(),
	}
}

// Dark returns the dark theme. It shares every non-color value with Light.
func Dark() Theme {
	t := Light()
	t.ColorScheme = SchemeDark
	t.Colors = DarkColors()
	return t
}

// System returns a theme that follows the host preference. Its colors are the
// light set; renderers pick the dark set through the scheme marker.
func System() Theme {
	return Light().WithColorScheme(SchemeSystem)
}

// ForScheme returns the canonical theme for scheme, or Light for unknown values.
func ForScheme(scheme ColorScheme) Theme {
	switch scheme {
	case SchemeDark:
		return Dark()
	case SchemeSystem:
		return System()
	default:
		return Light()
	}
}

// ColorsFor returns the canonical color set for a rendered scheme.
func ColorsFor(scheme ResolvedScheme) Colors {
	if scheme == ResolvedDark {
		return DarkColors()
	}
	return LightColors()
}

func radiusScale() Scale {
	return Scale{
		"sm":   "0.125rem",
		"md":   "0.25rem",
		"lg":   "0.5rem",
		"xl":   "0.75rem",
		"2xl":  "1rem",
		"full": "9999px",
	}
}

// LightColors returns the canonical light color set.
func LightColors() Colors {
	return NewColors(map[string]string{
		"primary":               "#3b82f6",
		"primaryHover":          "#2563eb",
		"primaryActive":         "#1d4ed8",
		"primaryForeground":     "#ffffff",
		"secondary":             "#6b7280",
		"secondaryHover":        "#4b5563",
		"secondaryActive":       "#374151",
		"secondaryForeground":   "#ffffff",
		"accent":                "#8b5cf6",
		"accentHover":           "#7c3aed",
		"accentActive":          "#6d28d9",
		"accentForeground":      "#ffffff",
		"destructive":           "#ef4444",
		"destructiveHover":      "#dc2626",
		"destructiveActive":     "#b91c1c",
		"destructiveForeground": "#ffffff",
		"foreground":            "#0f172a",
		"background":            "#ffffff",
		"card":                  "#ffffff",
		"cardForeground":        "#0f172a",
		"popover":               "#ffffff",
		"popoverForeground":     "#0f172a",
		"muted":                 "#f1f5f9",
		"mutedForeground":       "#64748b",
		"border":                "#e2e8f0",
		"input":                 "#e2e8f0",
		"ring":                  "#94a3b8",
	}, map[string]Scale{
		GroupSidebar: {
			"background":        "#f8fafc",
			"foreground":        "#0f172a",
			"primary":           "#3b82f6",
			"primaryForeground": "#ffffff",
			"accent":            "#f1f5f9",
			"accentForeground":  "#0f172a",
			"border":            "#e2e8f0",
			"ring":              "#94a3b8",
		},
		GroupChart: {
			"1": "#3b82f6",
			"2": "#10b981",
			"3": "#f59e0b",
			"4": "#8b5cf6",
			"5": "#ef4444",
		},
		GroupRadius: radiusScale(),
	})
}

// DarkColors returns the canonical dark color set.
func DarkColors() Colors {
	return NewColors(map[string]string{
		"primary":               "#3b82f6",
		"primaryHover":          "#60a5fa",
		"primaryActive":         "#93c5fd",
		"primaryForeground":     "#ffffff",
		"secondary":             "#6b7280",
		"secondaryHover":        "#9ca3af",
		"secondaryActive":       "#d1d5db",
		"secondaryForeground":   "#ffffff",
		"accent":                "#8b5cf6",
		"accentHover":           "#a78bfa",
		"accentActive":          "#c4b5fd",
		"accentForeground":      "#ffffff",
		"destructive":           "#ef4444",
		"destructiveHover":      "#f87171",
		"destructiveActive":     "#fca5a5",
		"destructiveForeground": "#ffffff",
		"foreground":            "#f1f5f9",
		"background":            "#0f172a",
		"card":                  "#1e293b",
		"cardForeground":        "#f1f5f9",
		"popover":               "#1e293b",
		"popoverForeground":     "#f1f5f9",
		"muted":                 "#1e293b",
		"mutedForeground":       "#94a3b8",
		"border":                "#334155",
		"input":                 "#334155",
		"ring":                  "#1e293b",
	}, map[string]Scale{
		GroupSidebar: {
			"background":        "#0b1120",
			"foreground":        "#f1f5f9",
			"primary":           "#60a5fa",
			"primaryForeground": "#0f172a",
			"accent":            "#1e293b",
			"accentForeground":  "#f1f5f9",
			"border":            "#334155",
			"ring":              "#1e293b",
		},
		GroupChart: {
			"1": "#60a5fa",
			"2": "#34d399",
			"3": "#fbbf24",
			"4": "#a78bfa",
			"5": "#f87171",
		},
		GroupRadius: radiusScale(),
	})
}

func defaultFonts() Fonts {
	return Fonts{
		Family: Scale{
			"sans": `ui-sans-serif, system-ui, -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, "Noto Sans", sans-serif, "Apple Color Emoji", "Segoe UI Emoji", "Segoe UI Symbol", "Noto Color Emoji"`,
			"mono": `ui-monospace, SFMono-Regular, Menlo, Monaco, Consolas, "Liberation Mono", "Courier New", monospace`,
		},
		Size: Scale{
			"xs":   "0.75rem",
			"sm":   "0.875rem",
			"base": "1rem",
			"lg":   "1.125rem",
			"xl":   "1.25rem",
			"2xl":  "1.5rem",
			"3xl":  "1.875rem",
			"4xl":  "2.25rem",
			"5xl":  "3rem",
		},
		Weight: Scale{
			"light":    "300",
			"normal":   "400",
			"medium":   "500",
			"semibold": "600",
			"bold":     "700",
		},
		LineHeight: Scale{
			"none":    "1",
			"tight":   "1.25",
			"normal":  "1.5",
			"relaxed": "1.75",
			"loose":   "2",
		},
	}
}

func defaultSpacing() Scale {
	return Scale{
		"px":  "1px",
		"0":   "0",
		"0.5": "0.125rem",
		"1":   "0.25rem",
		"1.5": "0.375rem",
		"2":   "0.5rem",
		"2.5": "0.625rem",
		"3":   "0.75rem",
		"3.5": "0.875rem",
		"4":   "1rem",
		"5":   "1.25rem",
		"6":   "1.5rem",
		"7":   "1.75rem",
		"8":   "2rem",
		"9":   "2.25rem",
		"10":  "2.5rem",
		"11":  "2.75rem",
		"12":  "3rem",
		"14":  "3.5rem",
		"16":  "4rem",
		"20":  "5rem",
		"24":  "6rem",
		"28":  "7rem",
		"32":  "8rem",
		"36":  "9rem",
		"40":  "10rem",
		"44":  "11rem",
		"48":  "12rem",
		"52":  "13rem",
		"56":  "14rem",
		"60":  "15rem",
		"64":  "16rem",
		"72":  "18rem",
		"80":  "20rem",
		"96":  "24rem",
	}
}

func defaultBreakpoints() Scale {
	return Scale{
		"sm":  "640px",
		"md":  "768px",
		"lg":  "1024px",
		"xl":  "1280px",
		"2xl": "1536px",
	}
}

func defaultAnimation() Animation {
	return Animation{
		Duration: Scale{
			"fastest": "50ms",
			"fast":    "100ms",
			"normal":  "200ms",
			"slow":    "300ms",
			"slowest": "500ms",
		},
		Easing: Scale{
			"default": "cubic-bezier(0.4, 0, 0.2, 1)",
			"linear":  "linear",
			"in":      "cubic-bezier(0.4, 0, 1, 1)",
			"out":     "cubic-bezier(0, 0, 0.2, 1)",
			"inOut":   "cubic-bezier(0.4, 0, 0.2, 1)",
		},
	}
}
