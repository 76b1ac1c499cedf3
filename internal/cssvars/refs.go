package cssvars

import "github.com/alexisbeaulieu97/sablier/internal/theme"

// Refs mirrors a theme as var(--…) references, the shape utility-class
// frameworks expect in their configuration.
type Refs struct {
	Colors       map[string]any    `json:"colors"`
	FontFamily   map[string]string `json:"fontFamily"`
	FontSize     map[string]string `json:"fontSize"`
	FontWeight   map[string]string `json:"fontWeight"`
	LineHeight   map[string]string `json:"lineHeight"`
	Spacing      map[string]string `json:"spacing"`
	BorderRadius map[string]string `json:"borderRadius"`
	Animation    AnimationRefs     `json:"animation"`
	Screens      map[string]string `json:"screens"`
}

// AnimationRefs holds the motion references.
type AnimationRefs struct {
	Durations       map[string]string `json:"durations"`
	TimingFunctions map[string]string `json:"timingFunctions"`
}

// VarRefs builds the reference map for t.
func VarRefs(t theme.Theme) Refs {
	refs := Refs{
		Colors:       make(map[string]any),
		FontFamily:   refScale("font-family", t.Fonts.Family),
		FontSize:     refScale("font-size", t.Fonts.Size),
		FontWeight:   refScale("font-weight", t.Fonts.Weight),
		LineHeight:   refScale("font-lineHeight", t.Fonts.LineHeight),
		Spacing:      make(map[string]string, len(t.Spacing)),
		BorderRadius: map[string]string{},
		Animation: AnimationRefs{
			Durations:       refScale("animation-duration", t.Animation.Duration),
			TimingFunctions: refScale("animation-easing", t.Animation.Easing),
		},
		Screens: refScale("breakpoint", t.Breakpoints),
	}

	for _, key := range t.Colors.TokenKeys() {
		refs.Colors[key] = ref(key)
	}
	for _, group := range t.Colors.GroupNames() {
		members, _ := t.Colors.Group(group)
		refs.Colors[group] = refScale(group, members)
	}
	if radius, ok := t.Colors.Group(theme.GroupRadius); ok {
		refs.BorderRadius = refScale(theme.GroupRadius, radius)
	}
	for key := range t.Spacing {
		refs.Spacing[key] = ref("spacing-" + SpacingName(key))
	}
	return refs
}

func ref(name string) string {
	return "var(--" + name + ")"
}

func refScale(prefix string, scale theme.Scale) map[string]string {
	out := make(map[string]string, len(scale))
	for key := range scale {
		out[key] = ref(prefix + "-" + key)
	}
	return out
}
