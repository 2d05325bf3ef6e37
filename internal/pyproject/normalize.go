package pyproject

import (
	"regexp"
	"strings"
)

var separatorRuns = regexp.MustCompile(`[-_.]+`)

// Normalize lowercases a distribution name and collapses every run of dots,
// hyphens and underscores into a single hyphen (PEP 503).
func Normalize(name string) string {
	return strings.ToLower(separatorRuns.ReplaceAllString(name, "-"))
}

// ModuleName derives the import-package name for a distribution: lowercase
// with separator runs flattened to underscores, so "LLM-Regression-Tester"
// imports as "llm_regression_tester".
func ModuleName(name string) string {
	return strings.ToLower(separatorRuns.ReplaceAllString(name, "_"))
}
