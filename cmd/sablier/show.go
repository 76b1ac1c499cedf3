package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/sablier/internal/resolver"
	"github.com/alexisbeaulieu97/sablier/internal/theme"
)

type showOptions struct {
	format string
}

func newShowCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored theme and how it resolves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "o", "text", "Output format: text, json or yaml")

	return cmd
}

func runShow(cmd *cobra.Command, rootFlags *rootFlags, opts *showOptions) error {
	switch opts.format {
	case "text", "json", "yaml":
	default:
		return newCommandError("show", "validating flags", fmt.Errorf("unknown format %q", opts.format), "Use --format text, json or yaml.")
	}

	app, err := newAppContext(cmd, rootFlags)
	if err != nil {
		return err
	}
	defer app.Close()

	state := app.Resolver.Snapshot()
	switch opts.format {
	case "json":
		return renderShowJSON(cmd, state)
	case "yaml":
		return renderShowYAML(cmd, state)
	default:
		return renderShowText(cmd, app.Resolver.StorageKey(), state)
	}
}

type showPayload struct {
	Theme         theme.Theme `json:"theme"`
	ResolvedTheme string      `json:"resolvedTheme"`
	SystemTheme   string      `json:"systemTheme,omitempty"`
	ColorScheme   string      `json:"colorScheme"`
	Themes        []string    `json:"themes"`
	Forced        string      `json:"forced,omitempty"`
}

func newShowPayload(state resolver.State) showPayload {
	payload := showPayload{
		Theme:         state.Theme,
		ResolvedTheme: string(state.Resolved),
		ColorScheme:   string(state.ColorScheme),
		Themes:        state.Themes,
		Forced:        string(state.Forced),
	}
	if state.SystemKnown {
		payload.SystemTheme = string(state.System)
	}
	return payload
}

func renderShowJSON(cmd *cobra.Command, state resolver.State) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(newShowPayload(state))
}

// renderShowYAML goes through JSON so colors keep their flat-or-grouped shape.
func renderShowYAML(cmd *cobra.Command, state resolver.State) error {
	data, err := json.Marshal(newShowPayload(state))
	if err != nil {
		return err
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	encoder := yaml.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(doc)
}

func renderShowText(cmd *cobra.Command, storageKey string, state resolver.State) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scheme:      %s\n", state.Theme.ColorScheme)
	fmt.Fprintf(out, "Resolved:    %s\n", state.Resolved)
	fmt.Fprintf(out, "System:      %s\n", valueOrFallback(string(state.System), state.SystemKnown, "unknown"))
	fmt.Fprintf(out, "Forced:      %s\n", valueOrFallback(string(state.Forced), state.Forced != "", "no"))
	fmt.Fprintf(out, "Storage key: %s\n", storageKey)
	fmt.Fprintf(out, "Colors:      %d tokens\n", len(state.Theme.Colors.Keys()))
	return nil
}

func valueOrFallback(value string, ok bool, fallback string) string {
	if !ok || value == "" {
		return fallback
	}
	return value
}
