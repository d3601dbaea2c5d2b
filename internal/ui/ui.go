// Package ui implements a command-line user interface using [tea].
package ui

import (
	"context"
	"fmt"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertwitch/gofat/tree"
)

// Handler is the principal implementation of a user interface [Handler].
type Handler struct {
	state   *tree.TransferState
	program *tea.Program

	LogWriter *TeaLogWriter

	Ready  atomic.Bool
	Failed atomic.Bool
}

// NewHandler returns a pointer to a new user interface [Handler]. The given
// [tree.TransferState] is polled for progress while the interface is running.
func NewHandler(ctx context.Context, cancel context.CancelFunc, state *tree.TransferState) *Handler {
	handler := &Handler{
		state: state,
	}

	model := NewTeaModel(handler, state, cancel)
	handler.program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	handler.LogWriter = NewTeaLogWriter(handler.program)

	return handler
}

// Launch starts the command-line user interface (the [tea.Program]). It blocks
// until the interface has quit, either on transfer completion, a quit
// keypress or cancellation of the establishing [context.Context].
func (uiHandler *Handler) Launch() error {
	defer uiHandler.LogWriter.Stop()

	if _, err := uiHandler.program.Run(); err != nil {
		uiHandler.Failed.Store(true)

		return fmt.Errorf("(ui) %w", err)
	}

	return nil
}
