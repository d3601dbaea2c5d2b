package main

import (
	"fmt"
	"io"

	"github.com/desertwitch/gofat/driver"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// timeColumnFormat renders directory-entry timestamps in listings.
const timeColumnFormat = "2006-01-02 15:04"

// newLsCmd creates the "gofat ls [path]" command.
func newLsCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [path]",
		Short: "List a directory of the volume",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if cmdLs(args, stdout, stderr) != 0 {
				return errExit
			}

			return nil
		},
	}
}

// cmdLs is the CLI entry point for directory listings.
func cmdLs(args []string, stdout, stderr io.Writer) int {
	app, code := openApp(stderr, "ls")
	if app == nil {
		return code
	}
	defer app.Close()

	path := "/"
	if len(args) > 0 {
		path = args[0]
	}

	return doLs(app, path, stdout, stderr)
}

// doLs prints the long-form listing of one directory: attribute bits,
// size, modification time and name per entry.
func doLs(app *App, path string, stdout, stderr io.Writer) int {
	entries, err := app.sess.ListDir(path)
	if err != nil {
		fmt.Fprintf(stderr, "gofat ls: %v\n", err) //nolint:errcheck // best-effort stderr

		return 1
	}

	for i := range entries {
		entry := &entries[i]

		fmt.Fprintf(stdout, "%s %9s  %s  %s\n", //nolint:errcheck // best-effort stdout
			entry.Attr, sizeColumn(entry), entry.Modified().Format(timeColumnFormat), entry.Name)
	}

	return 0
}

// sizeColumn renders an entry's size cell, directories have none.
func sizeColumn(info *driver.FileInfo) string {
	if info.IsDir() {
		return "<dir>"
	}

	return humanize.Bytes(uint64(info.Size))
}
