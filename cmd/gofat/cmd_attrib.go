package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/desertwitch/gofat/driver"
	"github.com/spf13/cobra"
)

// attrLetters maps the letters of the +x/-x attribute arguments to their
// directory-record bits.
//
//nolint:gochecknoglobals
var attrLetters = map[byte]driver.Attr{
	'r': driver.AttrReadOnly,
	'h': driver.AttrHidden,
	's': driver.AttrSystem,
	'a': driver.AttrArchive,
}

// newAttribCmd creates the "gofat attrib <path>" command.
func newAttribCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attrib <path> [+r|-r|+h|-h|+s|-s|+a|-a]...",
		Short: "Show or change the attribute bits of an entry",
		Long: `Shows the attribute bits of a volume entry. Attribute arguments after
the path change bits first: a leading + sets the bit, a leading -
clears it. The directory and volume-id bits cannot be changed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if cmdAttrib(args, stdout, stderr) != 0 {
				return errExit
			}

			return nil
		},
	}

	// Attribute arguments follow the path, so "-r" stays an argument.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

// cmdAttrib is the CLI entry point for attribute handling.
func cmdAttrib(args []string, stdout, stderr io.Writer) int {
	app, code := openApp(stderr, "attrib")
	if app == nil {
		return code
	}
	defer app.Close()

	return doAttrib(app, args[0], args[1:], stdout, stderr)
}

// doAttrib applies the requested attribute changes, then prints the
// resulting bits of the entry.
func doAttrib(app *App, path string, ops []string, stdout, stderr io.Writer) int {
	if len(ops) > 0 {
		attr, mask, err := parseAttrOps(ops)
		if err != nil {
			fmt.Fprintf(stderr, "gofat attrib: %v\n", err) //nolint:errcheck // best-effort stderr

			return 1
		}

		if err := app.sess.Chmod(path, attr, mask); err != nil {
			fmt.Fprintf(stderr, "gofat attrib: %v\n", err) //nolint:errcheck // best-effort stderr

			return 1
		}
	}

	info, err := app.sess.Stat(path)
	if err != nil {
		fmt.Fprintf(stderr, "gofat attrib: %v\n", err) //nolint:errcheck // best-effort stderr

		return 1
	}

	fmt.Fprintf(stdout, "%s  %s\n", info.Attr, path) //nolint:errcheck // best-effort stdout

	return 0
}

// parseAttrOps folds +x/-x arguments into the set-bits value and the mask
// of touched bits.
func parseAttrOps(ops []string) (attr, mask driver.Attr, err error) {
	for _, op := range ops {
		op = strings.ToLower(op)

		if len(op) != 2 || (op[0] != '+' && op[0] != '-') {
			return 0, 0, fmt.Errorf("invalid attribute argument %q", op)
		}

		bit, ok := attrLetters[op[1]]
		if !ok {
			return 0, 0, fmt.Errorf("invalid attribute argument %q", op)
		}

		mask |= bit

		if op[0] == '+' {
			attr |= bit
		} else {
			attr &^= bit
		}
	}

	return attr, mask, nil
}
