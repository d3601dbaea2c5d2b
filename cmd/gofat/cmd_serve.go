package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/desertwitch/gofat/internal/fusefs"
	"github.com/spf13/cobra"
)

// newServeCmd creates the "gofat serve <mountpoint>" command.
func newServeCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "serve <mountpoint>",
		Short: "Serve the volume to the host over FUSE",
		Long: `Mounts the volume as a FUSE filesystem on the given host directory and
serves requests until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmdServe(cmd.Context(), args, stdout, stderr) != 0 {
				return errExit
			}

			return nil
		},
	}
}

// cmdServe is the CLI entry point for the FUSE bridge.
func cmdServe(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app, code := openApp(stderr, "serve")
	if app == nil {
		return code
	}
	defer app.Close()

	return doServe(ctx, app, args[0], stdout, stderr)
}

// doServe runs the FUSE bridge until the context is canceled or serving
// fails. Cancellation is the regular way to stop serving, not a failure.
func doServe(ctx context.Context, app *App, mountpoint string, _, stderr io.Writer) int {
	bridge := fusefs.NewHandler(app.sess)

	if err := bridge.Serve(ctx, mountpoint); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(stderr, "gofat serve: %v\n", err) //nolint:errcheck // best-effort stderr

		return 1
	}

	return 0
}
