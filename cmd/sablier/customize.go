package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/sablier/internal/config"
	"github.com/alexisbeaulieu97/sablier/internal/theme"
)

type customizeOptions struct {
	colors []string
	file   string
}

func newCustomizeCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &customizeOptions{}

	cmd := &cobra.Command{
		Use:   "customize",
		Short: "Override parts of the stored theme",
		Example: `  sablier customize --color primary=#ff0000
  sablier customize --color sidebar-border=#334155
  sablier customize --file overrides.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCustomize(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.colors, "color", nil, "Set a color token as key=value (repeatable)")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Apply a YAML or JSON override document")

	return cmd
}

func runCustomize(cmd *cobra.Command, rootFlags *rootFlags, opts *customizeOptions) error {
	if len(opts.colors) == 0 && opts.file == "" {
		return newCommandError("customize", "validating flags", errors.New("nothing to change"), "Pass --color key=value or --file.")
	}

	app, err := newAppContext(cmd, rootFlags)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := checkNotForced(app, "customize"); err != nil {
		return err
	}

	var partial theme.Partial
	if opts.file != "" {
		partial, err = config.ParseOverrides(app.Fs, opts.file)
		if err != nil {
			return newCommandError("customize", fmt.Sprintf("reading %s", opts.file), err, "The document takes the theme's shape with every family optional.")
		}
	}

	current := app.Resolver.Theme()
	if len(opts.colors) > 0 {
		colors, err := colorFlags(current.Colors, opts.colors)
		if err != nil {
			return newCommandError("customize", "parsing --color", err, "Use --color key=value, e.g. --color primary=#ff0000.")
		}
		if partial.Colors != nil {
			colors = partial.Colors.Merge(colors)
		}
		partial.Colors = &colors
	}

	if err := theme.Validate(current.Merge(partial)); err != nil {
		return newCommandError("customize", "validating the customized theme", err, "Values may not contain ';', '{', '}', '<', '>' or newlines.")
	}

	app.Resolver.CustomizeTheme(partial)
	fmt.Fprintf(cmd.OutOrStdout(), "Theme updated (resolved: %s)\n", app.Resolver.ResolvedTheme())
	return nil
}

// colorFlags turns key=value pairs into a color set. A key naming a member of
// an existing group ("sidebar-border") updates that member and keeps the rest
// of the group.
func colorFlags(current theme.Colors, pairs []string) (theme.Colors, error) {
	out := theme.NewColors(nil, nil)
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return theme.Colors{}, fmt.Errorf("expected key=value, got %q", pair)
		}

		group, member := splitGroupKey(current, key)
		if group == "" {
			out = out.WithToken(key, value)
			continue
		}
		members, ok := out.Group(group)
		if !ok {
			members, _ = current.Group(group)
		}
		members[member] = value
		out = out.WithGroup(group, members)
	}
	return out, nil
}

func splitGroupKey(colors theme.Colors, key string) (group, member string) {
	if _, ok := colors.Token(key); ok {
		return "", ""
	}
	for _, name := range colors.GroupNames() {
		if rest, ok := strings.CutPrefix(key, name+"-"); ok && rest != "" {
			return name, rest
		}
	}
	return "", ""
}
