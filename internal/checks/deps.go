package checks

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ralt/prepub/internal/models"
	"github.com/ralt/prepub/internal/pyproject"
)

// dependenciesCheck scans the core dependency list for names that belong in
// optional extras instead, heavyweight SDKs above all. A hit renders as a
// warning but fails the item: publishing should stop until the dependency
// moves or the warning is consciously configured away.
type dependenciesCheck struct{}

func (dependenciesCheck) ID() string   { return "dependencies" }
func (dependenciesCheck) Name() string { return "Dependencies" }

func (dependenciesCheck) Run(rc *Context) error {
	rc.Out.Section("🔍 Checking dependencies...")

	pyprojectPath := filepath.Join(rc.Dir, pyproject.FileName)
	if _, err := os.Stat(pyprojectPath); err != nil {
		rc.Out.Failure("pyproject.toml not found")
		return &models.CheckError{Type: models.ErrFileMissing, Path: pyproject.FileName, Err: errors.New("not found")}
	}

	doc, err := pyproject.LoadFile(pyprojectPath)
	if err != nil {
		rc.Out.Failure("Failed to parse pyproject.toml: %v", err)
		return &models.CheckError{Type: models.ErrPatternNotFound, Path: pyproject.FileName, Err: err}
	}

	// A project with no dependencies array is fine; only what it does
	// declare gets inspected.
	for _, dep := range doc.Project.Dependencies {
		for _, banned := range rc.Config.Dependencies.Disallowed {
			if strings.Contains(strings.ToLower(dep), strings.ToLower(banned)) {
				rc.Out.Warning("%s is in core dependencies - consider moving to optional dependencies", banned)
				return &models.CheckError{
					Type: models.ErrDisallowedValue,
					Err:  fmt.Errorf("%q listed in core dependencies", dep),
				}
			}
		}
	}

	rc.Out.Success("Dependencies look reasonable")
	return nil
}
