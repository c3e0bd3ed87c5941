package configuration

import "errors"

// ErrInvalidValue occurs when a configuration key holds an unusable value.
var ErrInvalidValue = errors.New("invalid configuration value")
