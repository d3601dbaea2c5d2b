package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/desertwitch/gofat"
	"github.com/desertwitch/gofat/driver/host"
	"github.com/desertwitch/gofat/internal/configuration"
	"github.com/desertwitch/gofat/tree"
)

// App bundles the resolved settings and the mounted session a command
// operates on.
type App struct {
	settings *configuration.Settings
	sess     *gofat.Session
}

// NewApp returns a pointer to a new [App] over the given settings and
// session.
func NewApp(settings *configuration.Settings, sess *gofat.Session) *App {
	return &App{
		settings: settings,
		sess:     sess,
	}
}

// openApp resolves the settings, mounts the volume image and returns the
// ready application. On failure it writes to stderr and returns nil plus
// an exit code.
func openApp(stderr io.Writer, cmdName string) (*App, int) {
	configHandler := configuration.NewHandler(&configuration.GodotenvProvider{})

	settings, err := configHandler.Load(envFileFlag)
	if err != nil {
		fmt.Fprintf(stderr, "gofat %s: %v\n", cmdName, err) //nolint:errcheck // best-effort stderr

		return nil, 1
	}

	if imageFlag != "" {
		settings.Image = imageFlag
	}

	if mountFlag != "" {
		settings.Mount = mountFlag
	}

	if driveFlag >= 0 {
		settings.Drive = driveFlag
	}

	if noUIFlag || quietFlag {
		settings.NoUI = true
	}

	sess := gofat.NewSession(host.New(settings.Image))

	if err := sess.Mount(settings.Mount, settings.Drive); err != nil {
		fmt.Fprintf(stderr, "gofat %s: %v\n", cmdName, err) //nolint:errcheck // best-effort stderr

		return nil, 1
	}

	return NewApp(settings, sess), 0
}

// Close releases the mounted volume.
func (app *App) Close() {
	if err := app.sess.Unmount(); err != nil {
		slog.Warn("Failed to unmount volume.", "err", err)
	}
}

// treeHandler builds the tree handler for multi-entry commands, honoring
// the verification setting.
func (app *App) treeHandler(opts ...tree.Option) *tree.Handler {
	if app.settings.Verify {
		opts = append(opts, tree.WithVerify())
	}

	return tree.NewHandler(app.sess, opts...)
}
