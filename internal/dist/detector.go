package dist

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

// Magic bytes for artifact detection
var (
	// Gzip magic bytes (.tar.gz sdists)
	gzipMagic = []byte{0x1F, 0x8B}

	// XZ magic bytes (.tar.xz sdists)
	xzMagic = []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}

	// Zip magic bytes (wheels and .zip sdists)
	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}

	// RPM lead magic (legacy bdist_rpm output)
	rpmMagic = []byte{0xED, 0xAB, 0xEE, 0xDB}
)

// DetectKind determines the artifact kind based on magic bytes and filename
func DetectKind(path string) (Kind, error) {
	// Open file
	f, err := os.Open(path)
	if err != nil {
		return KindUnknown, err
	}
	defer f.Close()

	// Read first 512 bytes for magic byte detection
	header := make([]byte, 512)
	n, err := f.Read(header)
	if err != nil && n == 0 {
		return KindUnknown, err
	}
	header = header[:n]

	basename := filepath.Base(path)

	// Check for bdist_rpm artifacts
	if bytes.HasPrefix(header, rpmMagic) || filepath.Ext(basename) == ".rpm" {
		return KindRPM, nil
	}

	// Wheels are zip archives with a .whl extension (PEP 427)
	if bytes.HasPrefix(header, zipMagic) && strings.HasSuffix(basename, ".whl") {
		return KindWheel, nil
	}

	// Source distributions: gzipped or xz tars, or plain zips
	if bytes.HasPrefix(header, gzipMagic) && strings.HasSuffix(basename, ".tar.gz") {
		return KindSdist, nil
	}
	if bytes.HasPrefix(header, xzMagic) && strings.HasSuffix(basename, ".tar.xz") {
		return KindSdist, nil
	}
	if bytes.HasPrefix(header, zipMagic) && strings.HasSuffix(basename, ".zip") {
		return KindSdist, nil
	}

	return KindUnknown, nil
}
