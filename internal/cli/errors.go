package cli

import (
	"errors"
	"fmt"

	"github.com/roach88/qbool/internal/config"
	"github.com/roach88/qbool/internal/grammar"
	"github.com/roach88/qbool/internal/store"
	"github.com/roach88/qbool/internal/transform"
	"github.com/roach88/qbool/internal/translate"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeWriteFailed = "E007" // File write error

	// Translation errors
	ErrCodeSyntax   = "E201" // Query syntax error
	ErrCodeTooLong  = "E202" // Query exceeds max_query_length
	ErrCodeInternal = "E203" // Pipeline invariant violated
	ErrCodeEncoding = "E204" // Query is not valid UTF-8

	ErrCodeConfigInvalid = "E301" // Config file unreadable or invalid

	// History errors
	ErrCodeStore         = "E401" // History database failure
	ErrCodeEntryNotFound = "E402" // History entry not found
)

// SyntaxDetails is the JSON detail payload of an E201 error.
type SyntaxDetails struct {
	Offset   int    `json:"offset"`
	Expected string `json:"expected"`
	Found    string `json:"found"`
}

// classifyError maps an error to its CLI code, exit code and detail payload.
func classifyError(err error) (code string, exit int, details interface{}) {
	var (
		synErr      *grammar.SyntaxError
		internalErr *transform.InternalError
		cfgErr      *config.Error
	)
	switch {
	case errors.As(err, &synErr):
		return ErrCodeSyntax, ExitFailure, SyntaxDetails{
			Offset:   synErr.Offset,
			Expected: synErr.Expected.String(),
			Found:    synErr.Found(),
		}
	case errors.Is(err, translate.ErrQueryTooLong):
		return ErrCodeTooLong, ExitFailure, nil
	case errors.Is(err, translate.ErrInvalidUTF8):
		return ErrCodeEncoding, ExitFailure, nil
	case errors.As(err, &internalErr):
		return ErrCodeInternal, ExitFailure, nil
	case errors.As(err, &cfgErr):
		return ErrCodeConfigInvalid, ExitCommandError, nil
	case errors.Is(err, store.ErrNotFound):
		return ErrCodeEntryNotFound, ExitCommandError, nil
	default:
		return ErrCodeGeneric, ExitFailure, nil
	}
}

// reportError writes err through the formatter and returns the matching
// reported ExitError. Syntax errors in text mode also get a caret line.
func reportError(f *OutputFormatter, err error) error {
	code, exit, details := classifyError(err)
	_ = f.Error(code, err.Error(), details)

	var synErr *grammar.SyntaxError
	if f.Format != "json" && errors.As(err, &synErr) {
		fmt.Fprintln(f.Writer, synErr.Caret())
	}
	return reportedExitError(exit, fmt.Sprintf("%s: %v", code, err))
}

// reportCommandError writes a command-level failure (exit code 2).
func reportCommandError(f *OutputFormatter, code, message string) error {
	_ = f.Error(code, message, nil)
	return reportedExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}
