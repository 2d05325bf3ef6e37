package pyproject

import "regexp"

// Matches __version__ = "1.2.3" in either quote style. setuptools and the
// packaging guide both show the double-quoted form but single quotes are
// common in the wild.
var versionAssign = regexp.MustCompile(`__version__\s*=\s*['"]([^'"]+)['"]`)

// VersionAssignment finds the first __version__ assignment in a Python
// source file, typically the package's _version.py.
func VersionAssignment(data []byte) (string, bool) {
	m := versionAssign.FindSubmatch(data)
	if m == nil {
		return "", false
	}
	return string(m[1]), true
}
