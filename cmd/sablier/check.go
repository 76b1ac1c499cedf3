package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/sablier/internal/storage"
	"github.com/alexisbeaulieu97/sablier/internal/theme"
)

type checkResult struct {
	name   string
	ok     bool
	detail string
}

func newCheckCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check color set parity and the stored theme",
		Long: `Check that the light and dark color sets project the same property
names, that the stored theme lines up with the set it is swapped against,
and that the stored theme decodes and validates.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, rootFlags)
			if err != nil {
				return err
			}
			defer app.Close()

			results := runChecks(app)
			failed := renderChecks(cmd.OutOrStdout(), results, isTerminal(cmd.OutOrStdout()))
			if failed > 0 {
				return newCommandError("check", "verifying themes", fmt.Errorf("%d of %d checks failed", failed, len(results)), "Align the color keys or run 'sablier set' to store a fresh theme.")
			}
			return nil
		},
	}

	return cmd
}

func runChecks(app *AppContext) []checkResult {
	var results []checkResult

	canonical := theme.CheckParity(theme.LightColors(), theme.DarkColors())
	results = append(results, checkResult{name: "light and dark color sets", ok: canonical.OK(), detail: canonical.String()})

	stored, err := app.Store.Read(app.Resolver.StorageKey())
	switch {
	case err == nil:
		results = append(results, checkResult{name: "stored theme", ok: true, detail: "decodes and validates"})

		native := theme.ResolvedLight
		if stored.ColorScheme == theme.SchemeDark {
			native = theme.ResolvedDark
		}
		counterpart := native.Opposite()
		report := theme.CheckParity(stored.Colors, theme.ColorsFor(counterpart))
		results = append(results, checkResult{
			name:   fmt.Sprintf("stored colors against the %s set", counterpart),
			ok:     report.OK(),
			detail: report.String(),
		})
	case storage.IsNotFound(err):
		results = append(results, checkResult{name: "stored theme", ok: true, detail: "nothing stored, defaults in use"})
	default:
		results = append(results, checkResult{name: "stored theme", ok: false, detail: err.Error()})
	}

	return results
}

func renderChecks(out io.Writer, results []checkResult, useUnicode bool) int {
	pass, fail := "ok  ", "FAIL"
	if useUnicode {
		pass, fail = "✓", "✗"
	}

	failed := 0
	for _, result := range results {
		mark := pass
		if !result.ok {
			mark = fail
			failed++
		}
		fmt.Fprintf(out, "%s %s: %s\n", mark, result.name, result.detail)
	}
	return failed
}
