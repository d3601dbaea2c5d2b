package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// newDfCmd creates the "gofat df" command.
func newDfCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "df",
		Short: "Print free space and medium geometry",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if cmdDf(stdout, stderr) != 0 {
				return errExit
			}

			return nil
		},
	}
}

// cmdDf is the CLI entry point for the space report.
func cmdDf(stdout, stderr io.Writer) int {
	app, code := openApp(stderr, "df")
	if app == nil {
		return code
	}
	defer app.Close()

	return doDf(app, stdout, stderr)
}

// doDf prints the volume label, the medium geometry and the cluster
// usage of the mounted volume.
func doDf(app *App, stdout, stderr io.Writer) int {
	label, err := app.sess.Label()
	if err != nil {
		fmt.Fprintf(stderr, "gofat df: %v\n", err) //nolint:errcheck // best-effort stderr

		return 1
	}

	disk, err := app.sess.DiskInfo()
	if err != nil {
		fmt.Fprintf(stderr, "gofat df: %v\n", err) //nolint:errcheck // best-effort stderr

		return 1
	}

	free, err := app.sess.Free()
	if err != nil {
		fmt.Fprintf(stderr, "gofat df: %v\n", err) //nolint:errcheck // best-effort stderr

		return 1
	}

	name := label.Label
	if name == "" {
		name = "NO NAME"
	}

	//nolint:errcheck // best-effort stdout
	fmt.Fprintf(stdout, "Volume:   %s (serial %s)\nMedium:   %s (%d sectors of %d bytes)\nCapacity: %s (%d clusters of %s)\nFree:     %s (%d clusters)\n",
		name, serialString(label.Serial),
		humanize.Bytes(disk.TotalBytes()), disk.TotalSectors, disk.SectorSize,
		humanize.Bytes(free.TotalBytes()), free.TotalClusters, humanize.Bytes(uint64(free.ClusterSize)),
		humanize.Bytes(free.FreeBytes()), free.FreeClusters)

	return 0
}

// serialString renders a volume serial the DOS way.
func serialString(serial uint32) string {
	return fmt.Sprintf("%04X-%04X", serial>>16, serial&0xFFFF) //nolint:mnd
}
