package dist

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sassoftware/go-rpmutils"
)

// parseRPM reads the header of a bdist_rpm artifact. setuptools' bdist_rpm
// is legacy but such packages still show up under dist/ for projects that
// ship to both PyPI and RPM-based distributions.
func parseRPM(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Read RPM header
	rpm, err := rpmutils.ReadRpm(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read RPM: %w", err)
	}

	art := &Artifact{
		Path:    path,
		Kind:    KindRPM,
		Name:    getStringTag(rpm, rpmutils.NAME),
		Version: getStringTag(rpm, rpmutils.VERSION),
		Metadata: map[string]string{
			"Release": getStringTag(rpm, rpmutils.RELEASE),
			"Summary": getStringTag(rpm, rpmutils.SUMMARY),
			"License": getStringTag(rpm, rpmutils.LICENSE),
		},
	}

	if art.Name == "" || art.Version == "" {
		return nil, fmt.Errorf("missing name/version tags in %s", filepath.Base(path))
	}
	return art, nil
}

// getStringTag safely gets a string tag from RPM
func getStringTag(rpm *rpmutils.Rpm, tag int) string {
	val, err := rpm.Header.Get(tag)
	if err != nil {
		return ""
	}

	// Handle different types that might be returned
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	default:
		return fmt.Sprintf("%v", v)
	}

	return ""
}
