// Package errors holds the CLI-boundary error helpers. Typed domain errors
// live next to the code that produces them.
package errors

import (
	"fmt"
	"os"

	"balanceday/internal/logger"
)

// Format renders an error for the terminal with the standard prefix.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return "Error: " + err.Error()
}

// Formatf is Format for ad-hoc messages.
func Formatf(format string, args ...interface{}) string {
	return "Error: " + fmt.Sprintf(format, args...)
}

// Fatal logs the error, prints it, and exits 1. A nil error is a no-op, so
// callers can pass a command's result straight through.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("command failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}
