// Package cli implements the define-validator command tree.
package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

// Exit codes for semantic error classification.
const (
	ExitSuccess          = 0 // Validation passed (PASS or WARNING)
	ExitValidationFailed = 1 // Validation produced FAIL or ERROR
	ExitUsageError       = 2 // CLI usage error (invalid arguments or flags)
	ExitInputError       = 3 // Input file unreadable, oversized, or unparseable
)

// errValidationFailed marks a completed run whose verdict blocks submission.
var errValidationFailed = errors.New("validation failed")

// inputError marks problems with the input file itself, as opposed to
// findings about its content.
type inputError struct {
	err error
}

func (e *inputError) Error() string { return e.err.Error() }
func (e *inputError) Unwrap() error { return e.err }

// ExitCodeForError maps an error from Execute to a process exit code.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, errValidationFailed) {
		return ExitValidationFailed
	}
	var in *inputError
	if errors.As(err, &in) {
		return ExitInputError
	}
	return ExitUsageError
}

var rootCmd = &cobra.Command{
	Use:   "define-validator",
	Short: "Multi-layer validator for CDISC define.xml files",
	Long: `define-validator checks a define.xml metadata file the way a regulatory
reviewer would: schema conformance first, then structural, business,
terminology, completeness, method-quality, and pattern rules, each rolled
into a per-layer status and an overall verdict.

Exit Codes:
  0 - Validation passed (PASS or WARNING)
  1 - Validation failed (FAIL or ERROR)
  2 - CLI usage error (invalid arguments or flags)
  3 - Input error (file unreadable, oversized, or not well-formed XML)`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
