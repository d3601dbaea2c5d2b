package main

import (
	"context"
	"fmt"
	"io"

	"github.com/desertwitch/gofat/tree"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// newCpCmd creates the "gofat cp <src> <dst>" command.
func newCpCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		recursiveFlag bool
		cleanupFlag   bool
	)

	cmd := &cobra.Command{
		Use:   "cp <src> <dst>",
		Short: "Copy a file or a subtree on the volume",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmdCp(cmd.Context(), args, recursiveFlag, cleanupFlag, stdout, stderr) != 0 {
				return errExit
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursiveFlag, "recursive", "r", false, "copy a whole subtree")
	cmd.Flags().BoolVar(&cleanupFlag, "cleanup", false, "remove partial destination files on failure")

	return cmd
}

// cmdCp is the CLI entry point for volume-internal copies.
func cmdCp(ctx context.Context, args []string, recursive, cleanup bool, stdout, stderr io.Writer) int {
	app, code := openApp(stderr, "cp")
	if app == nil {
		return code
	}
	defer app.Close()

	if recursive {
		return runTransfer(ctx, app, "cp", cleanup, stdout, stderr,
			func(ctx context.Context, h *tree.Handler) (*tree.TransferReport, error) {
				return h.CopyTree(ctx, args[0], args[1])
			})
	}

	return doCpFile(ctx, app, args[0], args[1], cleanup, stdout, stderr)
}

// doCpFile copies one file and reports the byte count.
func doCpFile(ctx context.Context, app *App, src, dst string, cleanup bool, stdout, stderr io.Writer) int {
	var opts []tree.Option
	if cleanup {
		opts = append(opts, tree.WithCleanup())
	}

	n, err := app.treeHandler(opts...).CopyFile(ctx, src, dst)
	if err != nil {
		fmt.Fprintf(stderr, "gofat cp: %v\n", err) //nolint:errcheck // best-effort stderr

		return 1
	}

	fmt.Fprintf(stdout, "%s copied to %s (%s)\n", src, dst, humanize.Bytes(uint64(n))) //nolint:errcheck // best-effort stdout

	return 0
}
