// Package configuration reads the application configuration from Unix-type
// environment files.
package configuration

import (
	"strconv"
)

const (
	// KeyLogFile is the path of the audit log file. Empty disables logging.
	KeyLogFile = "ANCHOR_LOG_FILE"

	// KeyRoot is the absolute directory relative paths are resolved against.
	// Empty anchors at the entire filesystem.
	KeyRoot = "ANCHOR_ROOT"

	// KeyLogLevel is the minimum console log level (DEBUG, INFO, WARN, ERROR).
	KeyLogLevel = "ANCHOR_LOG_LEVEL"

	// KeyWorkers is the number of concurrent resolution workers.
	KeyWorkers = "ANCHOR_WORKERS"
)

type genericConfigProvider interface {
	Read(filenames ...string) (envMap map[string]string, err error)
}

// Handler is the principal implementation for the configuration services.
type Handler struct {
	GenericHandler genericConfigProvider
}

// NewHandler returns a pointer to a new configuration [Handler].
func NewHandler(genericHandler genericConfigProvider) *Handler {
	return &Handler{
		GenericHandler: genericHandler,
	}
}

// ReadGeneric reads the given files into a map (map[key]value).
func (c *Handler) ReadGeneric(filenames ...string) (map[string]string, error) {
	return c.GenericHandler.Read(filenames...)
}

// MapKeyToString returns the value of key, or an empty string if missing.
func (c *Handler) MapKeyToString(envMap map[string]string, key string) string {
	if value, exists := envMap[key]; exists {
		return value
	}

	return ""
}

// MapKeyToInt returns the value of key as int, or -1 if missing or invalid.
func (c *Handler) MapKeyToInt(envMap map[string]string, key string) int {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return -1
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return -1
	}

	return intValue
}
