package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/desertwitch/gofat/driver"
	"github.com/desertwitch/gofat/fatpath"
	"github.com/spf13/cobra"
)

// newTreeCmd creates the "gofat tree [path]" command.
func newTreeCmd(stdout, stderr io.Writer) *cobra.Command {
	var depthFlag int

	cmd := &cobra.Command{
		Use:   "tree [path]",
		Short: "Print the volume tree below a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if cmdTree(args, depthFlag, stdout, stderr) != 0 {
				return errExit
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&depthFlag, "depth", 0, "recursion cap (default $GOFAT_DEPTH or 16)")

	return cmd
}

// cmdTree is the CLI entry point for the tree view.
func cmdTree(args []string, depth int, stdout, stderr io.Writer) int {
	app, code := openApp(stderr, "tree")
	if app == nil {
		return code
	}
	defer app.Close()

	root := "/"
	if len(args) > 0 {
		root = args[0]
	}

	if depth <= 0 {
		depth = app.settings.Depth
	}

	return doTree(app, root, depth, stdout, stderr)
}

// doTree prints an indented tree of the subtree below root, capped at
// maxDepth levels, with a closing entry tally.
func doTree(app *App, root string, maxDepth int, stdout, stderr io.Writer) int {
	fmt.Fprintln(stdout, fatpath.Normalize(root)) //nolint:errcheck // best-effort stdout

	dirs, files := 0, 0

	err := app.treeHandler().Walk(root, maxDepth, func(_ string, info *driver.FileInfo, depth int) error {
		name := info.Name
		if info.IsDir() {
			dirs++
			name += "/"
		} else {
			files++
		}

		fmt.Fprintf(stdout, "%s%s\n", strings.Repeat("  ", depth), name) //nolint:errcheck // best-effort stdout

		return nil
	})
	if err != nil {
		fmt.Fprintf(stderr, "gofat tree: %v\n", err) //nolint:errcheck // best-effort stderr

		return 1
	}

	fmt.Fprintf(stdout, "\n%d directories, %d files\n", dirs, files) //nolint:errcheck // best-effort stdout

	return 0
}
