package main

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type buildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
	API     string `json:"api"`
}

func currentBuildInfo() buildInfo {
	return buildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
		Go:      runtime.Version(),
		API:     "v1",
	}
}

type versionOptions struct {
	short  bool
	format string
}

func newVersionCmd() *cobra.Command {
	opts := &versionOptions{}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			info := currentBuildInfo()

			if opts.short {
				_, err := fmt.Fprintln(out, info.Version)
				return err
			}

			switch opts.format {
			case "text":
				_, err := fmt.Fprintf(out, "Sablier %s\ncommit: %s\nbuilt: %s\ngo: %s\ntheme API: %s\n",
					info.Version, info.Commit, info.Date, info.Go, info.API)
				return err
			case "json":
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(info)
			default:
				return newCommandError("version", "rendering build information", fmt.Errorf("unknown format %q", opts.format), "Use --format text or --format json.")
			}
		},
	}

	cmd.Flags().BoolVar(&opts.short, "short", false, "Print only the version number")
	cmd.Flags().StringVarP(&opts.format, "format", "o", "text", "Output format: text or json")

	return cmd
}
