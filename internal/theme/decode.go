package theme

import (
	"bytes"
	"encoding/json"
	"fmt"

	sablierrors "github.com/alexisbeaulieu97/sablier/pkg/errors"
)

// wireTheme keeps every family raw so each one can fall back independently.
type wireTheme struct {
	ColorScheme json.RawMessage `json:"colorScheme"`
	Colors      json.RawMessage `json:"colors"`
	Fonts       json.RawMessage `json:"fonts"`
	Spacing     json.RawMessage `json:"spacing"`
	Breakpoints json.RawMessage `json:"breakpoints"`
	Animation   json.RawMessage `json:"animation"`
}

func absent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Encode serializes t in the persisted layout.
func Encode(t Theme) ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encode theme: %w", err)
	}
	return data, nil
}

// Decode parses a persisted theme. Families missing from data, null or empty
// are taken whole from fallback; a family that is present is kept exactly as
// stored, so any theme that passes Validate decodes back to itself. Unknown
// keys are ignored. A document that is not JSON, or a family that is present
// but malformed, yields a ParseError; a result that fails Validate yields a
// ValidationError. fallback itself is never modified.
func Decode(data []byte, fallback Theme) (Theme, error) {
	var wire wireTheme
	if err := json.Unmarshal(data, &wire); err != nil {
		return Theme{}, sablierrors.NewParseError("", 0, err)
	}

	out := fallback.Clone()

	if !absent(wire.ColorScheme) {
		var scheme string
		if err := json.Unmarshal(wire.ColorScheme, &scheme); err != nil {
			return Theme{}, familyError("colorScheme", err)
		}
		out.ColorScheme = ColorScheme(scheme)
	}

	if !absent(wire.Colors) {
		var colors Colors
		if err := json.Unmarshal(wire.Colors, &colors); err != nil {
			return Theme{}, familyError("colors", err)
		}
		out.Colors = colors.orElse(fallback.Colors)
	}

	if !absent(wire.Fonts) {
		var fonts Fonts
		if err := json.Unmarshal(wire.Fonts, &fonts); err != nil {
			return Theme{}, familyError("fonts", err)
		}
		out.Fonts = Fonts{
			Family:     fonts.Family.orElse(fallback.Fonts.Family),
			Size:       fonts.Size.orElse(fallback.Fonts.Size),
			Weight:     fonts.Weight.orElse(fallback.Fonts.Weight),
			LineHeight: fonts.LineHeight.orElse(fallback.Fonts.LineHeight),
		}
	}

	if !absent(wire.Spacing) {
		var spacing Scale
		if err := json.Unmarshal(wire.Spacing, &spacing); err != nil {
			return Theme{}, familyError("spacing", err)
		}
		out.Spacing = spacing.orElse(fallback.Spacing)
	}

	if !absent(wire.Breakpoints) {
		var breakpoints Scale
		if err := json.Unmarshal(wire.Breakpoints, &breakpoints); err != nil {
			return Theme{}, familyError("breakpoints", err)
		}
		out.Breakpoints = breakpoints.orElse(fallback.Breakpoints)
	}

	if !absent(wire.Animation) {
		var animation Animation
		if err := json.Unmarshal(wire.Animation, &animation); err != nil {
			return Theme{}, familyError("animation", err)
		}
		out.Animation = Animation{
			Duration: animation.Duration.orElse(fallback.Animation.Duration),
			Easing:   animation.Easing.orElse(fallback.Animation.Easing),
		}
	}

	if err := Validate(out); err != nil {
		return Theme{}, err
	}
	return out, nil
}

func familyError(family string, err error) error {
	return sablierrors.NewParseError(family, 0, err)
}
