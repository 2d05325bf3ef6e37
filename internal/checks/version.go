package checks

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ralt/prepub/internal/models"
	"github.com/ralt/prepub/internal/pyproject"
)

// versionCheck verifies that pyproject.toml and the package's _version.py
// declare the same version string.
type versionCheck struct{}

func (versionCheck) ID() string   { return "version" }
func (versionCheck) Name() string { return "Version Consistency" }

func (versionCheck) Run(rc *Context) error {
	rc.Out.Section("🔍 Checking version consistency...")

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

	pyprojectVersion := doc.Project.Version
	if pyprojectVersion == "" {
		rc.Out.Failure("Version not found in pyproject.toml")
		return &models.CheckError{Type: models.ErrPatternNotFound, Path: pyproject.FileName, Err: errors.New("version not found")}
	}

	versionRel := filepath.Join(rc.Config.SourceDir, moduleName(rc, doc), "_version.py")
	data, err := os.ReadFile(filepath.Join(rc.Dir, versionRel))
	if err != nil {
		rc.Out.Failure("_version.py not found")
		return &models.CheckError{Type: models.ErrFileMissing, Path: versionRel, Err: errors.New("not found")}
	}

	fileVersion, ok := pyproject.VersionAssignment(data)
	if !ok {
		rc.Out.Failure("Version not found in _version.py")
		return &models.CheckError{Type: models.ErrPatternNotFound, Path: versionRel, Err: errors.New("__version__ assignment not found")}
	}

	if pyprojectVersion != fileVersion {
		rc.Out.Failure("Version mismatch: pyproject.toml=%s, _version.py=%s", pyprojectVersion, fileVersion)
		return &models.CheckError{
			Type: models.ErrValueMismatch,
			Err:  fmt.Errorf("pyproject.toml=%s, _version.py=%s", pyprojectVersion, fileVersion),
		}
	}

	rc.Version = pyprojectVersion
	rc.Out.Success("Version %s is consistent", pyprojectVersion)
	return nil
}
