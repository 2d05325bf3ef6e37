package models

// Status is the outcome of a single checklist item
type Status int

const (
	StatusPassed Status = iota
	StatusFailed
)

// String returns the string representation of Status
func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result records the outcome of one checklist item
type Result struct {
	Name   string
	Status Status
	Err    error
}

// Passed reports whether the item succeeded
func (r Result) Passed() bool {
	return r.Status == StatusPassed
}
