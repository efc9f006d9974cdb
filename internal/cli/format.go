package cli

import "fmt"

// FormatError formats an error message for consistent CLI output.
func FormatError(err error) string {
	return fmt.Sprintf("Error: %v", err)
}

// FormatSuccess formats a success message with a checkmark prefix.
func FormatSuccess(msg string) string {
	return fmt.Sprintf("✓ %s", msg)
}

// FormatWarning formats a warning message with a warning prefix.
func FormatWarning(msg string) string {
	return fmt.Sprintf("⚠ %s", msg)
}
