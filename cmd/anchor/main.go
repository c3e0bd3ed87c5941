package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/desertwitch/anchor/internal/asynclog"
	"github.com/desertwitch/anchor/internal/auditlog"
	"github.com/desertwitch/anchor/internal/configuration"
	"github.com/desertwitch/anchor/internal/filesystem"
	"github.com/desertwitch/anchor/internal/schema"
	"github.com/desertwitch/anchor/internal/ui"
	"github.com/lmittmann/tint"
)

//nolint:gochecknoglobals
var (
	ExitCode = 0
	Version  string

	configFile = flag.String("config", "", "read configuration from this environment file")
	rootDir    = flag.String("root", "", "resolve relative paths against this absolute directory")
	logFile    = flag.String("log", "", "append audit records to this file")
	dumpFile   = flag.String("dump", "", "print the audit records of this file and exit")
	workers    = flag.Int("workers", 0, "number of concurrent resolution workers")
	uiEnabled  = flag.Bool("ui", false, "show the progress in a terminal UI")
)

func setupLogging(w io.Writer, level slog.Level) {
	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))
}

func setupSignalHandlers(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-sigChan
		cancel()
	}()
}

func loadConfiguration() (*configuration.Application, error) {
	configHandler := configuration.NewHandler(&configuration.GodotenvProvider{})

	var files []string
	if *configFile != "" {
		files = append(files, *configFile)
	}

	app, err := configHandler.ReadApplication(files...)
	if err != nil {
		return nil, err
	}

	if *rootDir != "" {
		app.Root = *rootDir
	}
	if *logFile != "" {
		app.LogFile = *logFile
	}
	if *workers > 0 {
		app.Workers = *workers
	}

	return app, nil
}

func startUI(wg *sync.WaitGroup, uiHandler *ui.Handler, level slog.Level) {
	defer wg.Done()

	if uiHandler == nil {
		return
	}
	defer setupLogging(os.Stdout, level)

	setupLogging(uiHandler.LogWriter, level)

	if err := uiHandler.Launch(); err != nil {
		setupLogging(os.Stdout, level)
		slog.Error("UI failure: falling back to terminal.",
			"err", err,
		)
	}
}

func startApp(ctx context.Context, app *App, uiHandler *ui.Handler, config *configuration.Application) (int, error) {
	if uiHandler != nil {
		for !uiHandler.Ready.Load() && !uiHandler.Failed.Load() {
			select {
			case <-ctx.Done():
				return 0, fmt.Errorf("(main-waitui) %w", ctx.Err())
			case <-time.After(10 * time.Millisecond): //nolint:mnd
			}
		}
	}

	slog.Info("Resolving paths...",
		"version", Version,
		"root", app.anchor,
		"count", flag.NArg(),
		"workers", config.Workers,
	)

	failures, err := app.Run(ctx, flag.Args())
	if err != nil {
		slog.Warn("Resolution was interrupted.",
			"err", err,
		)
	}

	return failures, err
}

func main() {
	defer func() {
		os.Exit(ExitCode)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flag.Parse()
	setupLogging(os.Stdout, slog.LevelInfo)
	setupSignalHandlers(cancel)

	config, err := loadConfiguration()
	if err != nil {
		slog.Error("Failed to load configuration.",
			"err", err,
		)
		ExitCode = 1

		return
	}
	setupLogging(os.Stdout, config.LogLevel)

	osHandler := &schema.OS{}
	fsys := filesystem.New("local")

	if *dumpFile != "" {
		if err := dumpRecords(osHandler, *dumpFile, fsys); err != nil {
			slog.Error("Failed to dump audit log.",
				"file", *dumpFile,
				"err", err,
			)
			ExitCode = 1
		}

		return
	}

	anchor, err := establishRoot(fsys, config.Root)
	if err != nil {
		slog.Error("Failed to establish the root.",
			"root", config.Root,
			"err", err,
		)
		ExitCode = 1

		return
	}

	writer := asynclog.Open(config.LogFile)
	app := NewApp(anchor, auditlog.NewLogger(writer), config.Workers)

	var uiHandler *ui.Handler
	if *uiEnabled {
		uiHandler = ui.NewHandler(ctx, cancel, app)
	}

	var wg sync.WaitGroup
	var failures int

	wg.Add(1)
	go startUI(&wg, uiHandler, config.LogLevel)

	wg.Add(1)
	go func() {
		defer wg.Done()
		failures, err = startApp(ctx, app, uiHandler, config)
	}()

	wg.Wait()

	if err := writer.Close(); err != nil {
		slog.Error("Failed to close audit log.",
			"file", config.LogFile,
			"err", err,
		)
		ExitCode = 1
	}

	if config.LogFile != "" {
		reportAuditLog(osHandler, config.LogFile, writer.Size())
	}

	if failures > 0 || err != nil {
		ExitCode = 1
	}
}
