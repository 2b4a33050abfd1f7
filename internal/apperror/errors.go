// Package apperror defines the error kinds shared across the CLI.
package apperror

import "fmt"

// ConfigError reports invalid or insufficient invocation configuration: a bad
// HTTP method, malformed parameters, or missing credentials. The CLI maps it
// to exit status 3.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return e.Message }

// ConfigErrorf builds a ConfigError from a format string.
func ConfigErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}
