package models

import "fmt"

// ErrorType represents different categories of check failures
type ErrorType int

const (
	ErrFileMissing ErrorType = iota
	ErrPatternNotFound
	ErrValueMismatch
	ErrDisallowedValue
	ErrArtifactInvalid
	ErrSignatureInvalid
	ErrInvalidConfig
	ErrInternal
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrFileMissing:
		return "FileMissing"
	case ErrPatternNotFound:
		return "PatternNotFound"
	case ErrValueMismatch:
		return "ValueMismatch"
	case ErrDisallowedValue:
		return "DisallowedValue"
	case ErrArtifactInvalid:
		return "ArtifactInvalid"
	case ErrSignatureInvalid:
		return "SignatureInvalid"
	case ErrInvalidConfig:
		return "InvalidConfig"
	case ErrInternal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// CheckError represents a failure found by a checklist item
type CheckError struct {
	Type ErrorType
	Path string
	Err  error
}

// Error implements the error interface
func (e *CheckError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *CheckError) Unwrap() error {
	return e.Err
}
