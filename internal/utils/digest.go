package utils

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"
)

// Digest contains the checksums PyPI publishes for every uploaded file
type Digest struct {
	MD5        string
	SHA256     string
	Blake2b256 string
	Size       int64
}

// FileDigest calculates all digests for a file in a single pass
func FileDigest(path string) (*Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Get file info for size
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	// Create all hash writers
	md5Hash := md5.New()
	sha256Hash := sha256.New()
	blakeHash, err := blake2b.New256(nil)
	if err != nil {
		return nil, err
	}

	// Use MultiWriter to calculate all hashes at once
	multiWriter := io.MultiWriter(md5Hash, sha256Hash, blakeHash)

	// Stream file through all hashes
	if _, err := io.Copy(multiWriter, f); err != nil {
		return nil, err
	}

	return &Digest{
		MD5:        hex.EncodeToString(md5Hash.Sum(nil)),
		SHA256:     hex.EncodeToString(sha256Hash.Sum(nil)),
		Blake2b256: hex.EncodeToString(blakeHash.Sum(nil)),
		Size:       info.Size(),
	}, nil
}
