package checks

import (
	"fmt"
	"path/filepath"

	"github.com/ralt/prepub/internal/config"
	"github.com/ralt/prepub/internal/models"
	"github.com/ralt/prepub/internal/pyproject"
	"github.com/ralt/prepub/internal/report"
)

// Context carries everything a checklist item needs: where the project
// lives, the resolved configuration and where to render progress.
type Context struct {
	Dir    string
	Config *config.Config
	Out    report.Reporter

	// Version is filled in by the version consistency check when both
	// sources agree. The summary uses it for the suggested git tag and the
	// history store records it.
	Version string
}

// Check is a single checklist item. Run returns nil when the item passes and
// a *models.CheckError describing the failure otherwise; items render their
// own diagnostics through rc.Out either way.
type Check interface {
	// ID is the stable machine name, e.g. "version"
	ID() string

	// Name is the display name used in the summary, e.g. "Version Consistency"
	Name() string

	Run(rc *Context) error
}

// All returns the checklist in its fixed execution order.
func All() []Check {
	return []Check{
		versionCheck{},
		filesCheck{},
		metadataCheck{},
		readmeCheck{},
		dependenciesCheck{},
		distCheck{},
		signaturesCheck{},
	}
}

// Lookup finds a check by its machine name.
func Lookup(id string) (Check, bool) {
	for _, c := range All() {
		if c.ID() == id {
			return c, true
		}
	}
	return nil, false
}

// Execute runs a single check, converting a panic into a failed result so
// one broken item cannot take down the rest of the run.
func Execute(c Check, rc *Context) (res models.Result) {
	defer func() {
		if r := recover(); r != nil {
			rc.Out.Failure("Error in %s: %v", c.Name(), r)
			res = models.Result{
				Name:   c.Name(),
				Status: models.StatusFailed,
				Err:    &models.CheckError{Type: models.ErrInternal, Err: fmt.Errorf("%v", r)},
			}
		}
	}()

	res = models.Result{Name: c.Name(), Status: models.StatusPassed}
	if err := c.Run(rc); err != nil {
		res.Status = models.StatusFailed
		res.Err = err
	}
	return res
}

// RunAll executes every checklist item in order and collects their results.
func RunAll(rc *Context) []models.Result {
	all := All()
	results := make([]models.Result, 0, len(all))
	for _, c := range all {
		results = append(results, Execute(c, rc))
	}
	return results
}

// moduleName returns the import-package name for the project, falling back
// to the project directory's own name when pyproject.toml cannot provide
// one. doc may be nil.
func moduleName(rc *Context, doc *pyproject.Document) string {
	if doc != nil && doc.Project.Name != "" {
		return pyproject.ModuleName(doc.Project.Name)
	}
	abs, err := filepath.Abs(rc.Dir)
	if err != nil {
		return pyproject.ModuleName(filepath.Base(rc.Dir))
	}
	return pyproject.ModuleName(filepath.Base(abs))
}

// ProjectName returns the display name for the banner, the pyproject.toml
// project name when there is one and the directory name otherwise.
func ProjectName(rc *Context) string {
	if doc, err := pyproject.Load(rc.Dir); err == nil && doc.Project.Name != "" {
		return doc.Project.Name
	}
	abs, err := filepath.Abs(rc.Dir)
	if err != nil {
		return filepath.Base(rc.Dir)
	}
	return filepath.Base(abs)
}
