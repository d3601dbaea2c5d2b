package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// newRmCmd creates the "gofat rm <path>" command.
func newRmCmd(stdout, stderr io.Writer) *cobra.Command {
	var recursiveFlag bool

	cmd := &cobra.Command{
		Use:   "rm <path>",
		Short: "Remove a file or directory from the volume",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if cmdRm(args, recursiveFlag, stdout, stderr) != 0 {
				return errExit
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursiveFlag, "recursive", "r", false, "remove a directory and its whole subtree")

	return cmd
}

// cmdRm is the CLI entry point for entry removal.
func cmdRm(args []string, recursive bool, stdout, stderr io.Writer) int {
	app, code := openApp(stderr, "rm")
	if app == nil {
		return code
	}
	defer app.Close()

	return doRm(app, args[0], recursive, stdout, stderr)
}

// doRm removes one entry, with -r a whole subtree.
func doRm(app *App, path string, recursive bool, _, stderr io.Writer) int {
	var err error
	if recursive {
		err = app.sess.RemoveAll(path)
	} else {
		err = app.sess.Remove(path)
	}

	if err != nil {
		fmt.Fprintf(stderr, "gofat rm: %v\n", err) //nolint:errcheck // best-effort stderr

		return 1
	}

	return 0
}
