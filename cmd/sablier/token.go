package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/sablier/internal/cssvars"
)

const maxSuggestions = 3

func newTokenCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token <name>",
		Short: "Print the value of a custom property as currently rendered",
		Example: `  sablier token primary
  sablier token --spacing-4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, rootFlags)
			if err != nil {
				return err
			}
			defer app.Close()

			properties := renderedProperties(app)
			name := "--" + strings.TrimPrefix(strings.TrimSpace(args[0]), "--")
			value, ok := properties[name]
			if !ok {
				return unknownTokenError(name, properties)
			}

			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	return cmd
}

// renderedProperties merges the projected color properties, which follow the
// resolved scheme, with the remaining theme properties.
func renderedProperties(app *AppContext) map[string]string {
	properties := app.Document.Properties()
	for _, prop := range cssvars.ThemeProperties(app.Resolver.Theme()) {
		if _, ok := properties[prop.Name]; !ok {
			properties[prop.Name] = prop.Value
		}
	}
	return properties
}

func unknownTokenError(name string, properties map[string]string) error {
	names := make([]string, 0, len(properties))
	for key := range properties {
		names = append(names, key)
	}
	sort.Strings(names)

	matches := fuzzy.Find(name, names)
	suggestions := make([]string, 0, maxSuggestions)
	for i := 0; i < len(matches) && i < maxSuggestions; i++ {
		suggestions = append(suggestions, matches[i].Str)
	}

	hint := "Run 'sablier css' to list every property."
	if len(suggestions) > 0 {
		hint = "Did you mean " + strings.Join(suggestions, ", ") + "?"
	}
	return newCommandError("token", "looking up "+name, fmt.Errorf("unknown token %q", name), hint)
}
