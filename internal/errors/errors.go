// Package errors holds the CLI's terminal error helpers. Commands return
// plain errors; only main decides to exit.
package errors

import (
	"fmt"
	"os"

	"github.com/asytuyf/genesis-vault/internal/logger"
)

// Format renders an error with the standard "Error: " prefix.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs the error, prints it to stderr and exits with code 1. A nil
// error is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}
