package dist

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Found is an artifact file discovered during a dist directory scan
type Found struct {
	Path string
	Kind Kind
	Size int64
}

// Scan lists the recognized distribution artifacts directly under dir.
// Detached signatures, checksum manifests and anything else that is not a
// distribution are skipped. Results follow directory order, which os.ReadDir
// keeps sorted by filename.
func Scan(dir string) ([]Found, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var found []Found
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		kind, err := DetectKind(path)
		if err != nil {
			logrus.Warnf("Failed to detect artifact type for %s: %v", path, err)
			continue
		}
		if kind == KindUnknown {
			logrus.Debugf("Skipping non-artifact file: %s", path)
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return nil, err
		}

		logrus.Debugf("Found %s artifact: %s", kind, path)

		found = append(found, Found{
			Path: path,
			Kind: kind,
			Size: info.Size(),
		})
	}

	return found, nil
}
