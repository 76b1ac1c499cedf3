package main

import (
	"os"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "sablier",
		Short:         "Sablier resolves, persists and renders light and dark UI themes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to sablier.yaml (default: ./sablier.yaml or the user config directory)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newShowCmd(flags))
	cmd.AddCommand(newCSSCmd(flags))
	cmd.AddCommand(newSetCmd(flags))
	cmd.AddCommand(newToggleCmd(flags))
	cmd.AddCommand(newCustomizeCmd(flags))
	cmd.AddCommand(newTokenCmd(flags))
	cmd.AddCommand(newCheckCmd(flags))
	cmd.AddCommand(newDiffCmd(flags))
	cmd.AddCommand(newSchemaCmd())
	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newPreviewCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// initHelpColors colors help output when it goes to a terminal.
func initHelpColors(root *cobra.Command) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return
	}
	cc.Init(&cc.Config{
		RootCmd:       root,
		Headings:      cc.HiCyan + cc.Bold + cc.Underline,
		Commands:      cc.HiYellow + cc.Bold,
		Example:       cc.Italic,
		ExecName:      cc.Bold,
		Flags:         cc.Bold,
		FlagsDataType: cc.Italic + cc.HiBlue,
	})
}
