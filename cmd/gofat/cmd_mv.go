package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// newMvCmd creates the "gofat mv <old> <new>" command.
func newMvCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <old> <new>",
		Short: "Rename or move an entry on the volume",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if cmdMv(args, stdout, stderr) != 0 {
				return errExit
			}

			return nil
		},
	}
}

// cmdMv is the CLI entry point for renames.
func cmdMv(args []string, stdout, stderr io.Writer) int {
	app, code := openApp(stderr, "mv")
	if app == nil {
		return code
	}
	defer app.Close()

	return doMv(app, args[0], args[1], stdout, stderr)
}

// doMv renames one entry, moving it between directories when the paths
// differ in more than the final element.
func doMv(app *App, oldPath, newPath string, _, stderr io.Writer) int {
	if err := app.sess.Rename(oldPath, newPath); err != nil {
		fmt.Fprintf(stderr, "gofat mv: %v\n", err) //nolint:errcheck // best-effort stderr

		return 1
	}

	return 0
}
