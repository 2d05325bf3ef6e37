package dist

import (
	"fmt"
	"path/filepath"
)

// Kind represents the format of a distribution artifact
type Kind int

const (
	KindUnknown Kind = iota
	KindSdist
	KindWheel
	KindRPM
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindSdist:
		return "sdist"
	case KindWheel:
		return "wheel"
	case KindRPM:
		return "rpm"
	default:
		return "unknown"
	}
}

// Artifact is a built distribution with the metadata extracted from it
type Artifact struct {
	Path     string
	Kind     Kind
	Name     string
	Version  string
	Metadata map[string]string
}

// Parse extracts name and version metadata from an artifact file
func Parse(path string, kind Kind) (*Artifact, error) {
	switch kind {
	case KindSdist:
		return parseSdist(path)
	case KindWheel:
		return parseWheel(path)
	case KindRPM:
		return parseRPM(path)
	default:
		return nil, fmt.Errorf("unknown artifact kind for %s", filepath.Base(path))
	}
}

func artifactFromMetadata(path string, kind Kind, data []byte) (*Artifact, error) {
	fields, err := parseCoreMetadata(data)
	if err != nil {
		return nil, err
	}

	art := &Artifact{
		Path:     path,
		Kind:     kind,
		Name:     fields["Name"],
		Version:  fields["Version"],
		Metadata: fields,
	}
	if art.Name == "" || art.Version == "" {
		return nil, fmt.Errorf("missing Name/Version metadata in %s", filepath.Base(path))
	}
	return art, nil
}
