// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used by llrec to classify failures of
//              grammar construction, lexing, parsing, configuration and the
//              surrounding services.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-12
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-12 v0.1.0: Initial implementation with core error codes
// - 2026-10-16 v0.2.0: Recognizer codes replace the command language codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Resources
	CodeCapacityExceeded Code = "CAPACITY_EXCEEDED"
	CodeStorageError     Code = "STORAGE_ERROR"

	// Grammar construction
	CodeGrammarConflict Code = "GRAMMAR_CONFLICT"
	CodeGrammarSymbol   Code = "GRAMMAR_SYMBOL"

	// Recognition
	CodeSyntax            Code = "SYNTAX"
	CodeUnterminatedInput Code = "UNTERMINATED_INPUT"
	CodeStackUnderflow    Code = "STACK_UNDERFLOW"
	CodeTokenize          Code = "TOKENIZE"
	CodeInvalidSymbol     Code = "INVALID_SYMBOL"
	CodeMissingEndMarker  Code = "MISSING_END_MARKER"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeTimeout,
		CodeCapacityExceeded, CodeStorageError,
		CodeGrammarConflict, CodeGrammarSymbol,
		CodeSyntax, CodeUnterminatedInput, CodeStackUnderflow, CodeTokenize, CodeInvalidSymbol, CodeMissingEndMarker,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeGrammarConflict, CodeGrammarSymbol:
		return "grammar"
	case CodeSyntax, CodeUnterminatedInput, CodeStackUnderflow, CodeTokenize, CodeInvalidSymbol, CodeMissingEndMarker:
		return "recognition"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return "configuration"
	case CodeCapacityExceeded, CodeStorageError:
		return "resource"
	default:
		return "generic"
	}
}

// HTTPStatus returns the HTTP status code the API layer uses for this code
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return 404
	case CodeInvalidInput, CodeMissingEndMarker, CodeSyntax, CodeUnterminatedInput:
		return 400
	case CodeCapacityExceeded:
		return 413
	case CodeTimeout:
		return 408
	case CodeStorageError:
		return 503
	default:
		return 500
	}
}
