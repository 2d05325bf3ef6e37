package models

import (
	"errors"
	"testing"
)

func TestErrorTypeString(t *testing.T) {
	cases := map[ErrorType]string{
		ErrFileMissing:      "FileMissing",
		ErrPatternNotFound:  "PatternNotFound",
		ErrValueMismatch:    "ValueMismatch",
		ErrDisallowedValue:  "DisallowedValue",
		ErrArtifactInvalid:  "ArtifactInvalid",
		ErrSignatureInvalid: "SignatureInvalid",
		ErrInvalidConfig:    "InvalidConfig",
		ErrInternal:         "Internal",
		ErrorType(99):       "Unknown",
	}

	for typ, want := range cases {
		if got := typ.String(); got != want {
			t.Errorf("ErrorType(%d).String() = %q, want %q", typ, got, want)
		}
	}
}

func TestCheckErrorFormat(t *testing.T) {
	err := &CheckError{
		Type: ErrFileMissing,
		Path: "pyproject.toml",
		Err:  errors.New("not found"),
	}

	want := "[FileMissing] pyproject.toml: not found"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	// Without a path the brackets still carry the type
	err = &CheckError{
		Type: ErrValueMismatch,
		Err:  errors.New("pyproject.toml=1.0.0, _version.py=1.0.1"),
	}
	want = "[ValueMismatch] pyproject.toml=1.0.0, _version.py=1.0.1"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestCheckErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := &CheckError{Type: ErrInternal, Err: inner}

	if !errors.Is(err, inner) {
		t.Error("errors.Is should find the wrapped error")
	}

	var ce *CheckError
	if !errors.As(error(err), &ce) {
		t.Error("errors.As should match *CheckError")
	}
	if ce.Type != ErrInternal {
		t.Errorf("unwrapped type = %v, want ErrInternal", ce.Type)
	}
}

func TestResultPassed(t *testing.T) {
	passed := Result{Name: "Version Consistency", Status: StatusPassed}
	if !passed.Passed() {
		t.Error("StatusPassed result should report Passed() = true")
	}

	failed := Result{Name: "Required Files", Status: StatusFailed, Err: errors.New("missing")}
	if failed.Passed() {
		t.Error("StatusFailed result should report Passed() = false")
	}

	if StatusPassed.String() != "passed" || StatusFailed.String() != "failed" {
		t.Error("Status.String() mismatch")
	}
}
