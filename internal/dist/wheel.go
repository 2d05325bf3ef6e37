package dist

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
)

// parseWheel extracts the METADATA file from a wheel's top-level .dist-info
// directory. Wheels are plain zip archives (PEP 427).
func parseWheel(wheelPath string) (*Artifact, error) {
	zr, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	for _, zf := range zr.File {
		// Zip entries always use forward slashes
		dir := path.Dir(zf.Name)
		if path.Base(zf.Name) != "METADATA" {
			continue
		}
		if !strings.HasSuffix(dir, ".dist-info") || strings.Contains(dir, "/") {
			continue
		}

		rc, err := zf.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		return artifactFromMetadata(wheelPath, KindWheel, data)
	}

	return nil, fmt.Errorf("METADATA not found in %s", filepath.Base(wheelPath))
}
