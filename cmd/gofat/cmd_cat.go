package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// newCatCmd creates the "gofat cat <path>" command.
func newCatCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "cat <path>",
		Short: "Dump the content of a file to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if cmdCat(args, stdout, stderr) != 0 {
				return errExit
			}

			return nil
		},
	}
}

// cmdCat is the CLI entry point for file dumps.
func cmdCat(args []string, stdout, stderr io.Writer) int {
	app, code := openApp(stderr, "cat")
	if app == nil {
		return code
	}
	defer app.Close()

	return doCat(app, args[0], stdout, stderr)
}

// doCat writes the whole content of one file to stdout.
func doCat(app *App, path string, stdout, stderr io.Writer) int {
	data, err := app.sess.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "gofat cat: %v\n", err) //nolint:errcheck // best-effort stderr

		return 1
	}

	if _, err := stdout.Write(data); err != nil {
		fmt.Fprintf(stderr, "gofat cat: %v\n", err) //nolint:errcheck // best-effort stderr

		return 1
	}

	return 0
}
