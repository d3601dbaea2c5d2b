package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// newStatsCmd creates the "gofat stats [path]" command.
func newStatsCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [path]",
		Short: "Aggregate entry counts and sizes below a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if cmdStats(args, stdout, stderr) != 0 {
				return errExit
			}

			return nil
		},
	}
}

// cmdStats is the CLI entry point for subtree statistics.
func cmdStats(args []string, stdout, stderr io.Writer) int {
	app, code := openApp(stderr, "stats")
	if app == nil {
		return code
	}
	defer app.Close()

	root := "/"
	if len(args) > 0 {
		root = args[0]
	}

	return doStats(app, root, stdout, stderr)
}

// doStats prints the aggregated statistics of one subtree.
func doStats(app *App, root string, stdout, stderr io.Writer) int {
	stats, err := app.treeHandler().Stats(root)
	if err != nil {
		fmt.Fprintf(stderr, "gofat stats: %v\n", err) //nolint:errcheck // best-effort stderr

		return 1
	}

	//nolint:errcheck // best-effort stdout
	fmt.Fprintf(stdout, "Directories: %d\nFiles:       %d\nBytes:       %s (%d)\nMax depth:   %d\n",
		stats.Dirs, stats.Files, humanize.Bytes(uint64(stats.TotalBytes)), stats.TotalBytes,
		stats.MaxDepth)

	return 0
}
