package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/sablier/internal/tui"
)

func newPreviewCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Browse the rendered color tokens in an interactive terminal view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			styles := tui.NewStyleManager()
			app, err := newAppContext(cmd, rootFlags, withProjector(styles))
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			app.Watch(ctx)

			program := tea.NewProgram(tui.NewModel(app.Resolver, styles),
				tea.WithAltScreen(),
				tea.WithContext(ctx),
			)
			unsubscribe := tui.Bridge(app.Resolver, program.Send)
			defer unsubscribe()

			if _, err := program.Run(); err != nil {
				return newCommandError("preview", "running the terminal view", err, "Run preview from an interactive terminal.")
			}
			return nil
		},
	}

	return cmd
}
