package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// newLabelCmd creates the "gofat label" command with its get and set
// subcommands. A bare "gofat label" behaves like "label get".
func newLabelCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Get or set the volume label",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if cmdLabelGet(stdout, stderr) != 0 {
				return errExit
			}

			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the volume label and serial",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				if cmdLabelGet(stdout, stderr) != 0 {
					return errExit
				}

				return nil
			},
		},
		&cobra.Command{
			Use:   "set <label>",
			Short: "Set the volume label",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				if cmdLabelSet(args, stdout, stderr) != 0 {
					return errExit
				}

				return nil
			},
		},
	)

	return cmd
}

// cmdLabelGet is the CLI entry point for reading the label.
func cmdLabelGet(stdout, stderr io.Writer) int {
	app, code := openApp(stderr, "label")
	if app == nil {
		return code
	}
	defer app.Close()

	return doLabelGet(app, stdout, stderr)
}

// cmdLabelSet is the CLI entry point for changing the label.
func cmdLabelSet(args []string, stdout, stderr io.Writer) int {
	app, code := openApp(stderr, "label")
	if app == nil {
		return code
	}
	defer app.Close()

	return doLabelSet(app, args[0], stdout, stderr)
}

// doLabelGet prints the volume label and serial number.
func doLabelGet(app *App, stdout, stderr io.Writer) int {
	label, err := app.sess.Label()
	if err != nil {
		fmt.Fprintf(stderr, "gofat label: %v\n", err) //nolint:errcheck // best-effort stderr

		return 1
	}

	name := label.Label
	if name == "" {
		name = "NO NAME"
	}

	fmt.Fprintf(stdout, "%s (serial %s)\n", name, serialString(label.Serial)) //nolint:errcheck // best-effort stdout

	return 0
}

// doLabelSet stores a new volume label.
func doLabelSet(app *App, name string, stdout, stderr io.Writer) int {
	if err := app.sess.SetLabel(name); err != nil {
		fmt.Fprintf(stderr, "gofat label: %v\n", err) //nolint:errcheck // best-effort stderr

		return 1
	}

	fmt.Fprintf(stdout, "label set to %s\n", name) //nolint:errcheck // best-effort stdout

	return 0
}
