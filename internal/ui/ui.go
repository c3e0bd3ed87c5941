// Package ui implements a command-line user interface using [tea], showing
// the progress of a resolution run alongside its log output.
package ui

import (
	"context"
	"fmt"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertwitch/anchor/internal/queue"
)

// ProgressSource is the source of the progress shown by the user interface.
type ProgressSource interface {
	Progress() queue.Progress
}

// Handler is the principal implementation of a user interface [Handler].
type Handler struct {
	source  ProgressSource
	program *tea.Program

	LogWriter *TeaLogWriter

	Ready  atomic.Bool
	Failed atomic.Bool
}

// NewHandler returns a pointer to a new user interface [Handler]. The cancel
// function is called when the user requests the program to quit.
func NewHandler(ctx context.Context, cancel context.CancelFunc, source ProgressSource) *Handler {
	handler := &Handler{
		source: source,
	}

	model := NewTeaModel(handler, source, cancel)
	handler.program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	handler.LogWriter = NewTeaLogWriter(handler.program)

	return handler
}

// Launch starts the command-line user interface (the [tea.Program]) and
// blocks until it is quit.
func (uiHandler *Handler) Launch() error {
	defer uiHandler.LogWriter.Stop()

	if _, err := uiHandler.program.Run(); err != nil {
		uiHandler.Failed.Store(true)

		return fmt.Errorf("(ui) %w", err)
	}

	return nil
}
