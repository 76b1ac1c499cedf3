package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/sablier/internal/theme"
)

func newSetCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "set <light|dark|system>",
		Short:     "Store a color scheme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: theme.Schemes(),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheme, err := theme.ParseColorScheme(args[0])
			if err != nil {
				return newCommandError("set", "parsing color scheme", err, "Use light, dark or system.")
			}

			app, err := newAppContext(cmd, rootFlags)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := checkNotForced(app, "set"); err != nil {
				return err
			}

			app.Resolver.SetColorScheme(scheme)
			fmt.Fprintf(cmd.OutOrStdout(), "Color scheme set to %s (resolved: %s)\n", scheme, app.Resolver.ResolvedTheme())
			return nil
		},
	}

	return cmd
}

func newToggleCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, rootFlags)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := checkNotForced(app, "toggle"); err != nil {
				return err
			}

			app.Resolver.Toggle()
			fmt.Fprintf(cmd.OutOrStdout(), "Switched to %s\n", app.Resolver.ResolvedTheme())
			return nil
		},
	}

	return cmd
}

// checkNotForced turns the resolver's silent no-op into a user-facing error.
func checkNotForced(app *AppContext, operation string) error {
	forced := app.Resolver.Forced()
	if forced == "" {
		return nil
	}
	return newCommandError(operation, "changing the theme", fmt.Errorf("theme is forced to %s", forced), "Unset theme.forced in sablier.yaml or SABLIER_THEME_FORCED.")
}
