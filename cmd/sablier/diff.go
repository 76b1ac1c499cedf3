package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/sablier/internal/cssvars"
	"github.com/alexisbeaulieu97/sablier/internal/theme"
	"github.com/alexisbeaulieu97/sablier/pkg/diff"
)

type diffOptions struct {
	context int
}

func newDiffCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &diffOptions{}

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Show how the stored theme's stylesheet differs from the default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, rootFlags)
			if err != nil {
				return err
			}
			defer app.Close()

			defaults := theme.ForScheme(theme.ColorScheme(app.Config.Theme.Default))
			out := diff.Unified(
				cssvars.Stylesheet(defaults),
				cssvars.Stylesheet(app.Resolver.Theme()),
				"default",
				app.Resolver.StorageKey(),
				opts.context,
			)
			if out == "" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "no differences")
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().IntVarP(&opts.context, "context", "U", 3, "Unchanged lines to show around each change")

	return cmd
}
