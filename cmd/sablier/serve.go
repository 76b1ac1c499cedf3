package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/sablier/internal/server"
)

type serveOptions struct {
	addr string
}

func newServeCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the stylesheet, bootstrap script and theme API over HTTP",
		Long: `Serve the stylesheet, bootstrap script and theme API over HTTP.

A browser's Sec-CH-Prefers-Color-Scheme client hint resolves a stored
system scheme for that request only; it never changes the shared state.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := newAppContext(cmd, rootFlags)
			if err != nil {
				return err
			}
			defer app.Close()
			app.Watch(ctx)

			serverCfg := server.Config{
				Addr:            app.Config.Server.Addr,
				ShutdownTimeout: app.Config.Server.ShutdownTimeout,
				Version:         version,
			}
			if opts.addr != "" {
				serverCfg.Addr = opts.addr
			}

			srv := server.New(serverCfg, app.Resolver, server.WithLogger(app.Log))
			if err := srv.ListenAndServe(ctx); err != nil {
				return newCommandError("serve", "running the HTTP server", err, "Check that server.addr is free.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address, overriding server.addr")

	return cmd
}
