package dist

import (
	"archive/tar"
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

// parseSdist extracts the PKG-INFO from a source distribution. Sdists built
// by python -m build are tar archives compressed with gzip or xz, or plain
// zips, with everything under a single <name>-<version>/ directory.
func parseSdist(path string) (*Artifact, error) {
	basename := filepath.Base(path)
	if strings.HasSuffix(basename, ".zip") {
		return parseZipSdist(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tr *tar.Reader
	switch {
	case strings.HasSuffix(basename, ".tar.gz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gr.Close()
		tr = tar.NewReader(gr)
	case strings.HasSuffix(basename, ".tar.xz"):
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, err
		}
		tr = tar.NewReader(xr)
	default:
		return nil, fmt.Errorf("unsupported sdist compression: %s", basename)
	}

	// Find the root PKG-INFO file
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if header.Typeflag != tar.TypeReg {
			continue
		}
		if isRootPkgInfo(header.Name) {
			data, err := io.ReadAll(tr)
			if err != nil {
				return nil, err
			}
			return artifactFromMetadata(path, KindSdist, data)
		}
	}

	return nil, fmt.Errorf("PKG-INFO not found in %s", basename)
}

func parseZipSdist(path string) (*Artifact, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	for _, zf := range zr.File {
		if !isRootPkgInfo(zf.Name) {
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
		return artifactFromMetadata(path, KindSdist, data)
	}

	return nil, fmt.Errorf("PKG-INFO not found in %s", filepath.Base(path))
}

// isRootPkgInfo matches <root>/PKG-INFO and nothing deeper; sdists also
// carry egg-info copies further down the tree.
func isRootPkgInfo(name string) bool {
	name = strings.TrimPrefix(name, "./")
	parts := strings.Split(name, "/")
	return len(parts) == 2 && parts[1] == "PKG-INFO"
}
