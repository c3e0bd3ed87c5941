package configuration

import (
	"fmt"
	"log/slog"
	"strings"
)

// Application is the principal structure holding the application
// configuration.
type Application struct {
	LogFile  string
	Root     string
	LogLevel slog.Level
	Workers  int
}

// NewApplication returns a pointer to a new [Application] with defaults.
func NewApplication() *Application {
	return &Application{
		LogLevel: slog.LevelInfo,
		Workers:  1,
	}
}

// ReadApplication returns the [Application] read from the given files. With
// no files given, the defaults are returned.
func (c *Handler) ReadApplication(filenames ...string) (*Application, error) {
	app := NewApplication()

	if len(filenames) == 0 {
		return app, nil
	}

	envMap, err := c.ReadGeneric(filenames...)
	if err != nil {
		return nil, fmt.Errorf("(config-app) failed to read: %w", err)
	}

	app.LogFile = c.MapKeyToString(envMap, KeyLogFile)
	app.Root = c.MapKeyToString(envMap, KeyRoot)

	if level := c.MapKeyToString(envMap, KeyLogLevel); level != "" {
		if err := app.LogLevel.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
			return nil, fmt.Errorf("(config-app) %w: %s=%q", ErrInvalidValue, KeyLogLevel, level)
		}
	}

	if _, exists := envMap[KeyWorkers]; exists {
		workers := c.MapKeyToInt(envMap, KeyWorkers)
		if workers < 1 {
			return nil, fmt.Errorf("(config-app) %w: %s=%q", ErrInvalidValue, KeyWorkers, envMap[KeyWorkers])
		}
		app.Workers = workers
	}

	return app, nil
}
