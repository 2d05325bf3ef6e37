package pyproject

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the project descriptor every Python package carries.
const FileName = "pyproject.toml"

// Project holds the PEP 621 [project] fields the checklist reads. Fields it
// only tests for presence (authors, license) stay undecoded so that both
// their string and table forms parse.
type Project struct {
	Name           string   `toml:"name"`
	Version        string   `toml:"version"`
	Description    string   `toml:"description"`
	RequiresPython string   `toml:"requires-python"`
	Dependencies   []string `toml:"dependencies"`
	Dynamic        []string `toml:"dynamic"`
}

// Document is a parsed pyproject.toml plus enough decode metadata to answer
// "was this key present at all".
type Document struct {
	Project Project `toml:"project"`

	meta toml.MetaData
}

// Load parses the pyproject.toml inside dir.
func Load(dir string) (*Document, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// LoadFile parses a pyproject.toml at an explicit path.
func LoadFile(path string) (*Document, error) {
	var doc Document
	meta, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	doc.meta = meta
	return &doc, nil
}

// HasField reports whether the [project] table defines key, regardless of
// whether this package decodes its value.
func (d *Document) HasField(key string) bool {
	return d.meta.IsDefined("project", key)
}
