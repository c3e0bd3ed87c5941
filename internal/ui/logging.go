package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type teaProgramProvider interface {
	Send(msg tea.Msg)
}

// LogMsg is a log message, typed for identification as [tea.Msg] within a
// [tea.Program].
type LogMsg string

// TeaLogWriter is an [io.Writer] for use inside a [slog.Handler], which
// forwards all written logs to a [tea.Program] as [LogMsg].
type TeaLogWriter struct {
	program  teaProgramProvider
	doneChan chan struct{}
	logChan  chan LogMsg
}

// NewTeaLogWriter returns a pointer to a new [TeaLogWriter] and starts its
// forwarding goroutine, which is ended with [TeaLogWriter.Stop].
func NewTeaLogWriter(program teaProgramProvider) *TeaLogWriter {
	wr := &TeaLogWriter{
		program:  program,
		doneChan: make(chan struct{}),
		logChan:  make(chan LogMsg, 1000), //nolint:mnd
	}

	go wr.processLogs()

	return wr
}

// Stop ends the forwarding of logs. Logs written afterwards are discarded.
func (wr *TeaLogWriter) Stop() {
	close(wr.doneChan)
}

func (wr *TeaLogWriter) processLogs() {
	for {
		select {
		case <-wr.doneChan:
			return
		case msg := <-wr.logChan:
			wr.program.Send(msg)
		}
	}
}

// Write queues a copy of p for forwarding. It never fails.
func (wr *TeaLogWriter) Write(p []byte) (int, error) {
	select {
	case <-wr.doneChan:
	case wr.logChan <- LogMsg(p):
	}

	return len(p), nil
}
