package checks

import (
	"strings"

	"github.com/ralt/prepub/internal/models"
)

var separator = strings.Repeat("=", 60)

// Header prints the checklist banner.
func Header(rc *Context, project string) {
	rc.Out.Line(separator)
	rc.Out.Line("📋 PRE-PUBLISHING CHECKLIST - %s", project)
	rc.Out.Line(separator)
}

// Summary prints the result table and the final verdict, returning true when
// every item passed.
func Summary(rc *Context, results []models.Result) bool {
	rc.Out.Line("")
	rc.Out.Line(separator)
	rc.Out.Line("📊 CHECKLIST SUMMARY")
	rc.Out.Line(separator)

	allPassed := true
	for _, res := range results {
		verdict := "✅ PASSED"
		if !res.Passed() {
			verdict = "❌ FAILED"
			allPassed = false
		}
		rc.Out.Line("%s: %s", res.Name, verdict)
	}

	rc.Out.Line("")
	rc.Out.Line(separator)

	if !allPassed {
		rc.Out.Line("❌ SOME CHECKS FAILED! Please fix issues before publishing.")
		return false
	}

	version := rc.Version
	if version == "" {
		version = "{version}"
	}

	rc.Out.Line("🎉 ALL CHECKS PASSED! Ready for publishing.")
	rc.Out.Line("")
	rc.Out.Line("🚀 Publishing steps:")
	rc.Out.Line("1. Update version number if needed")
	rc.Out.Line("2. Run: python -m build")
	rc.Out.Line("3. Run: twine check dist/*")
	rc.Out.Line("4. Run: twine upload dist/*")
	rc.Out.Line("5. Create git tag: git tag v%s", version)
	rc.Out.Line("6. Push tag: git push origin v%s", version)
	return true
}
