package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// newMkdirCmd creates the "gofat mkdir <path>" command.
func newMkdirCmd(stdout, stderr io.Writer) *cobra.Command {
	var parentsFlag bool

	cmd := &cobra.Command{
		Use:   "mkdir <path>",
		Short: "Create a directory on the volume",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if cmdMkdir(args, parentsFlag, stdout, stderr) != 0 {
				return errExit
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&parentsFlag, "parents", "p", false, "create missing parents, tolerate an existing directory")

	return cmd
}

// cmdMkdir is the CLI entry point for directory creation.
func cmdMkdir(args []string, parents bool, stdout, stderr io.Writer) int {
	app, code := openApp(stderr, "mkdir")
	if app == nil {
		return code
	}
	defer app.Close()

	return doMkdir(app, args[0], parents, stdout, stderr)
}

// doMkdir creates one directory, with -p the whole chain above it.
func doMkdir(app *App, path string, parents bool, _, stderr io.Writer) int {
	var err error
	if parents {
		err = app.sess.MkdirAll(path)
	} else {
		err = app.sess.Mkdir(path)
	}

	if err != nil {
		fmt.Fprintf(stderr, "gofat mkdir: %v\n", err) //nolint:errcheck // best-effort stderr

		return 1
	}

	return 0
}
