package checks

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ralt/prepub/internal/models"
)

// readmeCheck verifies that the README mentions the topics users reach for
// first. Matching is a case-insensitive substring search, so a "## Usage"
// heading and a passing "usage:" both count.
type readmeCheck struct{}

func (readmeCheck) ID() string   { return "readme" }
func (readmeCheck) Name() string { return "README Content" }

func (readmeCheck) Run(rc *Context) error {
	rc.Out.Section("🔍 Checking README...")

	rel := rc.Config.Readme.Path
	data, err := os.ReadFile(filepath.Join(rc.Dir, rel))
	if err != nil {
		rc.Out.Failure("%s not found", rel)
		return &models.CheckError{Type: models.ErrFileMissing, Path: rel, Err: errors.New("not found")}
	}

	content := strings.ToLower(string(data))

	var missing []string
	for _, section := range rc.Config.Readme.Sections {
		if !strings.Contains(content, strings.ToLower(section)) {
			missing = append(missing, section)
		}
	}

	if len(missing) > 0 {
		rc.Out.Failure("README missing sections: %v", missing)
		return &models.CheckError{
			Type: models.ErrPatternNotFound,
			Path: rel,
			Err:  fmt.Errorf("missing sections: %s", strings.Join(missing, ", ")),
		}
	}

	rc.Out.Success("README contains essential information")
	return nil
}
