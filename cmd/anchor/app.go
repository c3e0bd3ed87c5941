package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/desertwitch/anchor/internal/filesystem"
	"github.com/desertwitch/anchor/internal/pathing"
	"github.com/desertwitch/anchor/internal/queue"
	"github.com/desertwitch/anchor/internal/root"
)

const (
	methodResolve = "Resolve"
)

type auditLogger interface {
	Log(method string, request, response []byte) (uint64, error)
}

// App resolves paths against a [root.Root] and records every resolution to
// an audit log.
type App struct {
	anchor  root.Root
	codec   root.Codec
	audit   auditLogger
	queue   *queue.Queue[int]
	workers int
}

// Resolution is the outcome of resolving one input against the root.
type Resolution struct {
	Input    string
	Path     filesystem.Path
	Relative pathing.Fragment
	Err      error
}

// NewApp returns a pointer to a new [App].
func NewApp(anchor root.Root, audit auditLogger, workers int) *App {
	if workers < 1 {
		workers = 1
	}

	return &App{
		anchor:  anchor,
		audit:   audit,
		queue:   queue.New[int](),
		workers: workers,
	}
}

// establishRoot returns the root anchored at dir, or the absolute root of fsys
// when dir is empty.
func establishRoot(fsys *filesystem.FileSystem, dir string) (root.Root, error) {
	if dir == "" {
		return root.AbsoluteRoot(fsys), nil
	}

	anchor, err := fsys.GetPathString(dir)
	if err != nil {
		return root.Root{}, fmt.Errorf("(app-root) %w", err)
	}

	return root.FromPath(anchor), nil
}

// Progress returns the progress of the current run.
func (a *App) Progress() queue.Progress {
	return a.queue.Progress()
}

// Run resolves all inputs concurrently and returns the number of failed
// resolutions. An error is only returned in case of a context cancellation,
// in which case not all inputs may have been resolved. An [App] is meant for
// a single run.
func (a *App) Run(ctx context.Context, inputs []string) (int, error) {
	q := a.queue
	for i := range inputs {
		q.Enqueue(i)
	}

	err := q.DequeueAndProcessConc(ctx, a.workers, func(i int) queue.Decision {
		res := a.Resolve(inputs[i])
		if res.Err != nil {
			slog.Warn("Failed to resolve:",
				"input", res.Input,
				"err", res.Err,
			)

			return queue.DecisionSkipped
		}

		slog.Info("Resolved:",
			"input", res.Input,
			"path", res.Path,
			"relative", res.Relative,
		)

		return queue.DecisionSuccess
	})

	progress := q.Progress()

	slog.Info("Resolution finished.",
		"resolved", progress.SuccessItems,
		"failed", progress.SkippedItems,
		"total", progress.TotalItems,
		"elapsed", progress.Elapsed.Round(time.Millisecond),
	)

	if err != nil {
		return progress.SkippedItems, fmt.Errorf("(app-run) %w", err)
	}

	return progress.SkippedItems, nil
}

// Resolve resolves input against the root, relativizes the result back and
// records the exchange to the audit log.
func (a *App) Resolve(input string) Resolution {
	res := Resolution{Input: input}

	res.Path, res.Err = a.anchor.GetRelative(pathing.Create(input))
	if res.Err == nil {
		res.Relative, res.Err = a.anchor.Relativize(res.Path)
	}

	a.record(res)

	return res
}

// record appends the resolution to the audit log. The request holds the
// encoded root followed by the input; the response holds the resolved path or
// the error text.
func (a *App) record(res Resolution) {
	request, err := a.codec.Append(nil, a.anchor)
	if err != nil {
		slog.Warn("Failed to encode root for audit log (not recorded)",
			"input", res.Input,
			"err", err,
		)

		return
	}
	request = append(request, res.Input...)

	response := res.Path.String()
	if res.Err != nil {
		response = "error: " + res.Err.Error()
	}

	if _, err := a.audit.Log(methodResolve, request, []byte(response)); err != nil {
		slog.Warn("Failed to record audit log entry (not recorded)",
			"input", res.Input,
			"err", err,
		)
	}
}
