package theme

import "strconv"

// Tokens is the compact design-token view of a theme used by renderers that
// only need a handful of sizes rather than the full scales.
type Tokens struct {
	Colors     Colors
	Radius     TokenRadius
	Spacing    TokenSpacing
	Typography TokenTypography
	Animation  TokenAnimation
	Shadow     TokenShadow
}

// TokenRadius holds the small, medium and large corner radii.
type TokenRadius struct {
	Small, Medium, Large string
}

// TokenSpacing picks five steps of the spacing scale, extra small to extra large.
type TokenSpacing struct {
	XS, SM, MD, LG, XL string
}

// TokenTypography holds font sizes by name and numeric font weights.
type TokenTypography struct {
	FontSizes   map[string]string
	FontWeights map[string]int
}

// TokenAnimation holds the fast, normal and slow durations.
type TokenAnimation struct {
	Fast, Normal, Slow string
}

// TokenShadow holds box-shadow values for small, medium and large elevation.
type TokenShadow struct {
	SM, MD, LG string
}

// Tokens derives the token view of t.
func (t Theme) Tokens() Tokens {
	radius, _ := t.Colors.Group(GroupRadius)
	return Tokens{
		Colors: t.Colors.Clone(),
		Radius: TokenRadius{
			Small:  radius["sm"],
			Medium: radius["md"],
			Large:  radius["lg"],
		},
		Spacing: TokenSpacing{
			XS: t.Spacing["1"],
			SM: t.Spacing["2"],
			MD: t.Spacing["4"],
			LG: t.Spacing["6"],
			XL: t.Spacing["8"],
		},
		Typography: TokenTypography{
			FontSizes: map[string]string{
				"xs":  t.Fonts.Size["xs"],
				"sm":  t.Fonts.Size["sm"],
				"md":  t.Fonts.Size["base"],
				"lg":  t.Fonts.Size["lg"],
				"xl":  t.Fonts.Size["xl"],
				"2xl": t.Fonts.Size["2xl"],
			},
			FontWeights: map[string]int{
				"normal": atoiOr(t.Fonts.Weight["normal"], 400),
				"medium": atoiOr(t.Fonts.Weight["medium"], 500),
				"bold":   atoiOr(t.Fonts.Weight["bold"], 700),
			},
		},
		Animation: TokenAnimation{
			Fast:   t.Animation.Duration["fast"],
			Normal: t.Animation.Duration["normal"],
			Slow:   t.Animation.Duration["slow"],
		},
		Shadow: defaultShadow(),
	}
}

// LightTokens returns the token view of the light theme.
func LightTokens() Tokens {
	return Light().Tokens()
}

// DarkTokens returns the token view of the dark theme.
func DarkTokens() Tokens {
	return Dark().Tokens()
}

func defaultShadow() TokenShadow {
	return TokenShadow{
		SM: "0 1px 2px 0 rgba(0, 0, 0, 0.05)",
		MD: "0 4px 6px -1px rgba(0, 0, 0, 0.1), 0 2px 4px -1px rgba(0, 0, 0, 0.06)",
		LG: "0 10px 15px -3px rgba(0, 0, 0, 0.1), 0 4px 6px -2px rgba(0, 0, 0, 0.05)",
	}
}

func atoiOr(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
