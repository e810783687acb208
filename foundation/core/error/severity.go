// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors. The logger maps severities
//              to log levels when an error is logged.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial implementation with severity levels

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow is an expected failure, e.g. input that does not belong to
	// the language
	SeverityLow Severity = iota

	// SeverityMedium affects a single operation
	SeverityMedium

	// SeverityHigh points at broken configuration or storage
	SeverityHigh

	// SeverityCritical means an internal invariant was violated
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines the severity level for an error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeStackUnderflow, CodeInternal, CodeGrammarConflict, CodeGrammarSymbol:
		return SeverityCritical

	case CodeStorageError, CodeConfigError, CodeMissingConfig, CodeInvalidConfig, CodeInvalidSymbol:
		return SeverityHigh

	case CodeCapacityExceeded, CodeTokenize, CodeTimeout:
		return SeverityMedium

	case CodeSyntax, CodeUnterminatedInput, CodeMissingEndMarker, CodeInvalidInput, CodeNotFound:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
