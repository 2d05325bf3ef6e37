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

// metadataCheck verifies that the [project] table defines every field PyPI
// expects a serious package to carry.
type metadataCheck struct{}

func (metadataCheck) ID() string   { return "metadata" }
func (metadataCheck) Name() string { return "Package Metadata" }

func (metadataCheck) Run(rc *Context) error {
	rc.Out.Section("🔍 Checking package metadata...")

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

	var missing []string
	for _, field := range rc.Config.Metadata.Fields {
		if !doc.HasField(field) {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		rc.Out.Failure("Missing metadata fields: %v", missing)
		return &models.CheckError{
			Type: models.ErrPatternNotFound,
			Err:  fmt.Errorf("missing metadata fields: %s", strings.Join(missing, ", ")),
		}
	}

	rc.Out.Success("Package metadata is complete")
	return nil
}
