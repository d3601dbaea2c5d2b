// gofat is the command-line client for FAT volume images: it lists,
// reads and writes single entries, moves whole trees between volume and
// host, and serves a volume to the host over FUSE.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

const (
	stackTraceBufMax = 1 << 24
)

// errExit is a sentinel error returned by cobra RunE functions to signal
// a non-zero exit. The command has already written its own error to
// stderr.
var errExit = errors.New("exit")

//nolint:gochecknoglobals
var (
	logManager = NewSlogManager()

	cpuProf   *cpuProfiler
	allocProf *allocProfiler

	imageFlag      string
	mountFlag      string
	driveFlag      int
	envFileFlag    string
	quietFlag      bool
	noUIFlag       bool
	verboseFlag    bool
	cpuProfileFlag string
	memProfileFlag string
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupSignalHandlers(cancel)

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI with the given arguments and streams, returning
// the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd(stdin, stdout, stderr)

	if args == nil {
		args = []string{}
	}

	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	defer stopProfilers()

	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errExit) {
			fmt.Fprintf(stderr, "gofat: %v\n", err) //nolint:errcheck // best-effort stderr
		}

		return 1
	}

	return 0
}

// newRootCmd creates the root cobra command with all subcommands and the
// global flags.
func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "gofat",
		Short: "Client for FAT volume images",
		Long: `gofat operates on a FAT volume image: single entries, whole trees,
transfers from and to the host filesystem, and a FUSE bridge. The
volume is mounted fresh per invocation and released on exit.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(stderr)
			startProfilers(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&imageFlag, "image", "", "backing image directory (default $GOFAT_IMAGE or \"fatimg\")")
	root.PersistentFlags().StringVar(&mountFlag, "mount", "", "volume mount path (default $GOFAT_MOUNT or \"/\")")
	root.PersistentFlags().IntVar(&driveFlag, "drive", -1, "logical drive index (default $GOFAT_DRIVE or 0)")
	root.PersistentFlags().StringVar(&envFileFlag, "env-file", "", "env file consulted before the process environment")
	root.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "log errors only, disable the progress UI")
	root.PersistentFlags().BoolVar(&noUIFlag, "no-ui", false, "disable the transfer progress UI")
	root.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log debug details")
	root.PersistentFlags().StringVar(&cpuProfileFlag, "cpu-profile", "", "write a cpu profile to this file")
	root.PersistentFlags().StringVar(&memProfileFlag, "mem-profile", "", "write an allocation profile to this file")
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		newLsCmd(stdout, stderr),
		newTreeCmd(stdout, stderr),
		newStatCmd(stdout, stderr),
		newCatCmd(stdout, stderr),
		newWriteCmd(stdin, stdout, stderr),
		newMkdirCmd(stdout, stderr),
		newRmCmd(stdout, stderr),
		newMvCmd(stdout, stderr),
		newCpCmd(stdout, stderr),
		newDfCmd(stdout, stderr),
		newLabelCmd(stdout, stderr),
		newAttribCmd(stdout, stderr),
		newStatsCmd(stdout, stderr),
		newImportCmd(stdout, stderr),
		newExportCmd(stdout, stderr),
		newServeCmd(stdout, stderr),
		newFmtCmd(stdout, stderr),
	)

	return root
}

// setupLogging routes slog through the handler manager with a terminal
// destination attached, replacing whatever routing a UI run left behind.
func setupLogging(w io.Writer) {
	slog.SetDefault(slog.New(logManager))

	logManager.RemoveHandler(logUI)
	logManager.AddHandler(logTerminal, newTintHandler(w))
}

// newTintHandler builds the slog handler used for both the terminal and
// the UI log pane.
func newTintHandler(w io.Writer) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      logLevel(),
		TimeFormat: time.Kitchen,
	})
}

// logLevel derives the log level from the verbosity flags.
func logLevel() slog.Level {
	switch {
	case quietFlag:
		return slog.LevelError
	case verboseFlag:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func setupSignalHandlers(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-sigChan
		cancel()
	}()

	sigChan2 := make(chan os.Signal, 1)
	signal.Notify(sigChan2, syscall.SIGUSR1)
	go func() {
		for range sigChan2 {
			buf := make([]byte, stackTraceBufMax)
			stacklen := runtime.Stack(buf, true)
			os.Stderr.Write(buf[:stacklen])
		}
	}()

	sigChan3 := make(chan os.Signal, 1)
	signal.Notify(sigChan3, syscall.SIGUSR2)
	go func() {
		for range sigChan3 {
			runtime.GC()
		}
	}()
}
