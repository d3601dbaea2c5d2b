package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/desertwitch/gofat/internal/ui"
	"github.com/desertwitch/gofat/tree"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// transferFunc runs one tree transfer to completion.
type transferFunc func(ctx context.Context, h *tree.Handler) (*tree.TransferReport, error)

// newImportCmd creates the "gofat import <hostdir> <fatdir>" command.
func newImportCmd(stdout, stderr io.Writer) *cobra.Command {
	var cleanupFlag bool

	cmd := &cobra.Command{
		Use:   "import <hostdir> <fatdir>",
		Short: "Copy a host directory tree onto the volume",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmdImport(cmd.Context(), args, cleanupFlag, stdout, stderr) != 0 {
				return errExit
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&cleanupFlag, "cleanup", false, "remove partial destination files on failure")

	return cmd
}

// newExportCmd creates the "gofat export <fatdir> <hostdir>" command.
func newExportCmd(stdout, stderr io.Writer) *cobra.Command {
	var cleanupFlag bool

	cmd := &cobra.Command{
		Use:   "export <fatdir> <hostdir>",
		Short: "Copy a volume directory tree out to the host",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmdExport(cmd.Context(), args, cleanupFlag, stdout, stderr) != 0 {
				return errExit
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&cleanupFlag, "cleanup", false, "remove partial destination files on failure")

	return cmd
}

// cmdImport is the CLI entry point for host-to-volume transfers.
func cmdImport(ctx context.Context, args []string, cleanup bool, stdout, stderr io.Writer) int {
	app, code := openApp(stderr, "import")
	if app == nil {
		return code
	}
	defer app.Close()

	return runTransfer(ctx, app, "import", cleanup, stdout, stderr,
		func(ctx context.Context, h *tree.Handler) (*tree.TransferReport, error) {
			return h.Import(ctx, args[0], args[1])
		})
}

// cmdExport is the CLI entry point for volume-to-host transfers.
func cmdExport(ctx context.Context, args []string, cleanup bool, stdout, stderr io.Writer) int {
	app, code := openApp(stderr, "export")
	if app == nil {
		return code
	}
	defer app.Close()

	return runTransfer(ctx, app, "export", cleanup, stdout, stderr,
		func(ctx context.Context, h *tree.Handler) (*tree.TransferReport, error) {
			return h.Export(ctx, args[0], args[1])
		})
}

// runTransfer executes one tree transfer, with the progress UI unless it
// is disabled. The transfer only begins once the UI reports ready or
// failed; in the latter case logging stays on the terminal and the
// transfer proceeds without a UI.
func runTransfer(ctx context.Context, app *App, cmdName string, cleanup bool, stdout, stderr io.Writer, transfer transferFunc) int {
	state := &tree.TransferState{}

	opts := []tree.Option{tree.WithTransferState(state)}
	if cleanup {
		opts = append(opts, tree.WithCleanup())
	}

	treeHandler := app.treeHandler(opts...)

	if app.settings.NoUI {
		report, err := transfer(ctx, treeHandler)
		if err != nil {
			fmt.Fprintf(stderr, "gofat %s: %v\n", cmdName, err) //nolint:errcheck // best-effort stderr

			return 1
		}

		printReport(stdout, report)

		return 0
	}

	uiCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	uiHandler := ui.NewHandler(uiCtx, cancel, state)

	var (
		wg          sync.WaitGroup
		report      *tree.TransferReport
		transferErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()

		logManager.AddHandler(logUI, newTintHandler(uiHandler.LogWriter))
		logManager.RemoveHandler(logTerminal)

		err := uiHandler.Launch()

		// Back onto the terminal before reporting, the UI writer is gone.
		setupLogging(stderr)

		if err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("UI failure: falling back to terminal.", "err", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

		slog.Info("Waiting for UI...")
		for {
			select {
			case <-uiCtx.Done():
				transferErr = uiCtx.Err()

				return
			default:
			}
			if uiHandler.Ready.Load() || uiHandler.Failed.Load() {
				break
			}
		}

		report, transferErr = transfer(uiCtx, treeHandler)
		if transferErr != nil {
			cancel()
		}
	}()

	wg.Wait()

	if transferErr != nil {
		fmt.Fprintf(stderr, "gofat %s: %v\n", cmdName, transferErr) //nolint:errcheck // best-effort stderr

		return 1
	}

	printReport(stdout, report)

	return 0
}

// printReport prints the closing figures of a finished transfer.
func printReport(stdout io.Writer, report *tree.TransferReport) {
	fmt.Fprintf(stdout, "%d files, %d directories, %s in %s\n", //nolint:errcheck // best-effort stdout
		report.Files, report.Dirs, humanize.Bytes(uint64(report.Bytes)),
		report.Duration.Round(time.Millisecond))
}
