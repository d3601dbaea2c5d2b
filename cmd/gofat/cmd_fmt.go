package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// newFmtCmd creates the "gofat fmt" command.
func newFmtCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "fmt",
		Short: "Format the volume, discarding its whole content",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if cmdFmt(stdout, stderr) != 0 {
				return errExit
			}

			return nil
		},
	}
}

// cmdFmt is the CLI entry point for formatting.
func cmdFmt(stdout, stderr io.Writer) int {
	app, code := openApp(stderr, "fmt")
	if app == nil {
		return code
	}
	defer app.Close()

	return doFmt(app, stdout, stderr)
}

// doFmt recreates an empty filesystem on the volume.
func doFmt(app *App, stdout, stderr io.Writer) int {
	if err := app.sess.Format(); err != nil {
		fmt.Fprintf(stderr, "gofat fmt: %v\n", err) //nolint:errcheck // best-effort stderr

		return 1
	}

	fmt.Fprintf(stdout, "formatted %s\n", app.sess.Image()) //nolint:errcheck // best-effort stdout

	return 0
}
