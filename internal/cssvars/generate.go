package cssvars

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/alexisbeaulieu97/sablier/internal/theme"
)

// breakpointOrder is the container breakpoint cascade, narrowest first.
var breakpointOrder = []string{"sm", "md", "lg", "xl", "2xl"}

const baseStylesTemplate = `
@layer base {
  :root {
    --radius: {{ .Radius }};
  }

  html {
    font-family: var(--font-family-sans);
    color: var(--foreground);
    background-color: var(--background);
  }

  body {
    font-size: var(--font-size-base);
    line-height: var(--font-lineHeight-normal);
  }

  .{{ .GuardClass }} * {
    transition: none !important;
  }
}
`

const utilityClassesTemplate = `
@layer utilities {
  .container {
    max-width: 100%;
    margin-left: auto;
    margin-right: auto;
    padding-left: var(--spacing-4);
    padding-right: var(--spacing-4);
  }
{{ range .Breakpoints }}
  @media (min-width: {{ . }}) {
    .container {
      max-width: {{ . }};
    }
  }
{{ end }}}
`

var (
	baseStyles     = template.Must(template.New("base").Parse(baseStylesTemplate))
	utilityClasses = template.Must(template.New("utilities").Parse(utilityClassesTemplate))
)

// GenerateVars renders the ":root" block with every property of base,
// followed by a dark block that overrides the color properties with dark.
func GenerateVars(base theme.Theme, dark theme.Colors) string {
	var b strings.Builder
	b.WriteString(":root {\n")
	writeProperties(&b, ThemeProperties(base))
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "[%s=%q] {\n", ThemeAttribute, theme.ResolvedDark)
	writeProperties(&b, ColorProperties(dark))
	b.WriteString("}\n")
	return b.String()
}

func writeProperties(b *strings.Builder, props []Property) {
	for _, p := range props {
		fmt.Fprintf(b, "  %s: %s;\n", p.Name, p.Value)
	}
}

// GenerateBaseStyles renders the base layer: root radius, document colors and
// typography, and the transition guard rule.
func GenerateBaseStyles(t theme.Theme) string {
	radius, ok := t.Colors.Lookup(theme.GroupRadius + "-md")
	if !ok {
		radius = "0.5rem"
	}
	return render(baseStyles, struct {
		Radius     string
		GuardClass string
	}{radius, TransitionGuardClass})
}

// GenerateUtilityClasses renders the container utility with one media query
// per known breakpoint.
func GenerateUtilityClasses(t theme.Theme) string {
	widths := make([]string, 0, len(breakpointOrder))
	for _, key := range breakpointOrder {
		if v, ok := t.Breakpoints[key]; ok {
			widths = append(widths, v)
		}
	}
	return render(utilityClasses, struct{ Breakpoints []string }{widths})
}

// Generate returns the complete style sheet: variables, base layer and
// utilities.
func Generate(base theme.Theme, dark theme.Colors) string {
	return strings.Join([]string{
		GenerateVars(base, dark),
		GenerateBaseStyles(base),
		GenerateUtilityClasses(base),
	}, "\n")
}

// Stylesheet picks the root and dark color sets for t and generates the full
// sheet. A dark theme keeps its own colors for the dark block and uses the
// canonical light colors at the root; any other theme keeps its colors at the
// root and uses the canonical dark colors for the dark block.
func Stylesheet(t theme.Theme) string {
	if t.ColorScheme == theme.SchemeDark {
		base := t.Clone()
		base.Colors = theme.LightColors()
		return Generate(base, t.Colors)
	}
	return Generate(t, theme.DarkColors())
}

func render(tmpl *template.Template, data any) string {
	var buf bytes.Buffer
	// The templates are fixed and the data is plain strings.
	if err := tmpl.Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("cssvars: render %s: %v", tmpl.Name(), err))
	}
	return buf.String()
}
