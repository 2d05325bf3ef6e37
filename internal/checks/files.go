package checks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ralt/prepub/internal/models"
	"github.com/ralt/prepub/internal/pyproject"
)

// filesCheck verifies that the files every publishable package needs are
// present. The default list is derived from the project's module name;
// required_files in .prepub.yaml replaces it entirely.
type filesCheck struct{}

func (filesCheck) ID() string   { return "files" }
func (filesCheck) Name() string { return "Required Files" }

func (filesCheck) Run(rc *Context) error {
	rc.Out.Section("🔍 Checking required files...")

	required := rc.Config.RequiredFiles
	if len(required) == 0 {
		doc, _ := pyproject.Load(rc.Dir)
		required = defaultRequiredFiles(rc.Config.SourceDir, moduleName(rc, doc))
	}

	var missing []string
	for _, rel := range required {
		if _, err := os.Stat(filepath.Join(rc.Dir, rel)); err != nil {
			missing = append(missing, rel)
		}
	}

	if len(missing) > 0 {
		rc.Out.Failure("Missing required files: %v", missing)
		return &models.CheckError{
			Type: models.ErrFileMissing,
			Err:  fmt.Errorf("missing %d required files: %s", len(missing), strings.Join(missing, ", ")),
		}
	}

	rc.Out.Success("All required files are present")
	return nil
}

func defaultRequiredFiles(sourceDir, module string) []string {
	return []string{
		"README.md",
		"LICENSE",
		"pyproject.toml",
		filepath.Join(sourceDir, module, "__init__.py"),
		filepath.Join(sourceDir, module, module+".py"),
		filepath.Join(sourceDir, module, "_version.py"),
		filepath.Join("tests", "test_basic.py"),
	}
}
