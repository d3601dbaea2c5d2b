package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// newWriteCmd creates the "gofat write <path>" command.
func newWriteCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var (
		dataFlag   string
		appendFlag bool
	)

	cmd := &cobra.Command{
		Use:   "write <path>",
		Short: "Write stdin or a literal to a file",
		Long: `Writes the standard input to a file on the volume, truncating any
previous content. With -d the given literal is written instead of
stdin, with -a the data is appended to the file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmdWrite(args, stdin, dataFlag, cmd.Flags().Changed("data"), appendFlag, stdout, stderr) != 0 {
				return errExit
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&dataFlag, "data", "d", "", "write this literal instead of stdin")
	cmd.Flags().BoolVarP(&appendFlag, "append", "a", false, "append instead of truncating")

	return cmd
}

// cmdWrite is the CLI entry point for file writes.
func cmdWrite(args []string, stdin io.Reader, data string, haveData, appendMode bool, stdout, stderr io.Writer) int {
	app, code := openApp(stderr, "write")
	if app == nil {
		return code
	}
	defer app.Close()

	return doWrite(app, args[0], stdin, data, haveData, appendMode, stdout, stderr)
}

// doWrite stores the literal or the drained stdin into one file, either
// truncating or appending.
func doWrite(app *App, path string, stdin io.Reader, data string, haveData, appendMode bool, stdout, stderr io.Writer) int {
	payload := []byte(data)

	if !haveData {
		drained, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "gofat write: failed to read stdin: %v\n", err) //nolint:errcheck // best-effort stderr

			return 1
		}

		payload = drained
	}

	var err error
	if appendMode {
		err = app.sess.AppendFile(path, payload)
	} else {
		err = app.sess.WriteFile(path, payload)
	}

	if err != nil {
		fmt.Fprintf(stderr, "gofat write: %v\n", err) //nolint:errcheck // best-effort stderr

		return 1
	}

	fmt.Fprintf(stdout, "%d bytes written to %s\n", len(payload), path) //nolint:errcheck // best-effort stdout

	return 0
}
