package checks

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ralt/prepub/internal/dist"
	"github.com/ralt/prepub/internal/models"
	"github.com/ralt/prepub/internal/pyproject"
)

// distCheck validates whatever has already been built under the dist
// directory: every artifact must parse and carry the name and version
// declared in pyproject.toml. An absent or empty dist directory is not a
// failure, builds happen after the checklist as often as before it.
type distCheck struct{}

func (distCheck) ID() string   { return "dist" }
func (distCheck) Name() string { return "Distribution Artifacts" }

func (distCheck) Run(rc *Context) error {
	rc.Out.Section("🔍 Checking distribution artifacts...")

	distDir := filepath.Join(rc.Dir, rc.Config.DistDir)
	found, err := dist.Scan(distDir)
	if err != nil {
		if os.IsNotExist(err) {
			rc.Out.Info("No %s/ directory, skipping (run: python -m build)", rc.Config.DistDir)
			return nil
		}
		rc.Out.Failure("Failed to scan %s/: %v", rc.Config.DistDir, err)
		return &models.CheckError{Type: models.ErrArtifactInvalid, Path: rc.Config.DistDir, Err: err}
	}
	if len(found) == 0 {
		rc.Out.Info("No artifacts in %s/, skipping (run: python -m build)", rc.Config.DistDir)
		return nil
	}

	doc, err := pyproject.Load(rc.Dir)
	if err != nil {
		rc.Out.Failure("Failed to parse pyproject.toml: %v", err)
		return &models.CheckError{Type: models.ErrPatternNotFound, Path: pyproject.FileName, Err: err}
	}
	wantName := pyproject.Normalize(doc.Project.Name)
	wantVersion := doc.Project.Version

	bad := 0
	for _, f := range found {
		base := filepath.Base(f.Path)
		art, err := dist.Parse(f.Path, f.Kind)
		if err != nil {
			rc.Out.Failure("%s: %v", base, err)
			bad++
			continue
		}
		if pyproject.Normalize(art.Name) != wantName {
			rc.Out.Failure("%s: package name %q does not match %q", base, art.Name, doc.Project.Name)
			bad++
			continue
		}
		if art.Version != wantVersion {
			rc.Out.Failure("%s: version %s does not match %s", base, art.Version, wantVersion)
			bad++
		}
	}

	if bad > 0 {
		return &models.CheckError{
			Type: models.ErrArtifactInvalid,
			Path: rc.Config.DistDir,
			Err:  fmt.Errorf("%d of %d artifacts failed validation", bad, len(found)),
		}
	}

	rc.Out.Success("%d distribution artifact(s) match %s %s", len(found), doc.Project.Name, wantVersion)
	return nil
}
