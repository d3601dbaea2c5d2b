package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// newStatCmd creates the "gofat stat <path>" command.
func newStatCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "stat <path>",
		Short: "Print the directory record of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if cmdStat(args, stdout, stderr) != 0 {
				return errExit
			}

			return nil
		},
	}
}

// cmdStat is the CLI entry point for single-entry stat output.
func cmdStat(args []string, stdout, stderr io.Writer) int {
	app, code := openApp(stderr, "stat")
	if app == nil {
		return code
	}
	defer app.Close()

	return doStat(app, args[0], stdout, stderr)
}

// doStat prints the stat record of one entry.
func doStat(app *App, path string, stdout, stderr io.Writer) int {
	info, err := app.sess.Stat(path)
	if err != nil {
		fmt.Fprintf(stderr, "gofat stat: %v\n", err) //nolint:errcheck // best-effort stderr

		return 1
	}

	//nolint:errcheck // best-effort stdout
	fmt.Fprintf(stdout, "Name:       %s\nAttributes: %s\nSize:       %s (%d bytes)\nModified:   %s\n",
		info.Name, info.Attr, humanize.Bytes(uint64(info.Size)), info.Size,
		info.Modified().Format(time.DateTime))

	return 0
}
