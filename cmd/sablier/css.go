package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/sablier/internal/cssvars"
)

type cssOptions struct {
	refs      bool
	bootstrap bool
}

func newCSSCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &cssOptions{}

	cmd := &cobra.Command{
		Use:   "css",
		Short: "Print the stylesheet for the stored theme",
		Long: `Print the stylesheet for the stored theme: custom properties for both
schemes, the base layer and responsive utilities. --refs prints the
var(--...) reference map instead, for wiring into a CSS framework config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.refs && opts.bootstrap {
				return newCommandError("css", "validating flags", fmt.Errorf("--refs and --bootstrap are exclusive"), "Pick one output.")
			}

			app, err := newAppContext(cmd, rootFlags)
			if err != nil {
				return err
			}
			defer app.Close()

			out := cmd.OutOrStdout()
			switch {
			case opts.refs:
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(cssvars.VarRefs(app.Resolver.Theme()))
			case opts.bootstrap:
				_, err := fmt.Fprintln(out, cssvars.BootstrapScript(app.Resolver.StorageKey()))
				return err
			default:
				_, err := fmt.Fprint(out, cssvars.Stylesheet(app.Resolver.Theme()))
				return err
			}
		},
	}

	cmd.Flags().BoolVar(&opts.refs, "refs", false, "Print the var() reference map as JSON")
	cmd.Flags().BoolVar(&opts.bootstrap, "bootstrap", false, "Print the pre-paint bootstrap script")

	return cmd
}
