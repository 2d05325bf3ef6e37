package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ralt/prepub/internal/models"
	"gopkg.in/yaml.v3"
)

// FileName is the optional per-project configuration file.
const FileName = ".prepub.yaml"

// Config contains everything a checklist run needs to know about a project.
// Zero values are filled from Default; a .prepub.yaml overrides per key.
type Config struct {
	SourceDir string `yaml:"source_dir"`
	DistDir   string `yaml:"dist_dir"`
	Python    string `yaml:"python"`

	// RequiredFiles overrides the derived required-file list entirely.
	RequiredFiles []string `yaml:"required_files"`

	Readme       Readme       `yaml:"readme"`
	Metadata     Metadata     `yaml:"metadata"`
	Dependencies Dependencies `yaml:"dependencies"`
	Import       Import       `yaml:"import"`
	Signing      Signing      `yaml:"signing"`

	History bool `yaml:"history"`
}

// Readme configures the README content check.
type Readme struct {
	Path     string   `yaml:"path"`
	Sections []string `yaml:"sections"`
}

// Metadata configures which [project] fields must be present.
type Metadata struct {
	Fields []string `yaml:"fields"`
}

// Dependencies configures names that must not appear in core dependencies.
type Dependencies struct {
	Disallowed []string `yaml:"disallowed"`
}

// Import configures the entry points verify-import loads.
type Import struct {
	Symbols []string `yaml:"symbols"`
}

// Signing configures artifact signature verification.
type Signing struct {
	Keyring string `yaml:"keyring"`
}

// Default returns the configuration used when no .prepub.yaml overrides it.
func Default() *Config {
	return &Config{
		SourceDir: "src",
		DistDir:   "dist",
		Python:    "python3",
		Readme: Readme{
			Path:     "README.md",
			Sections: []string{"installation", "usage", "example"},
		},
		Metadata: Metadata{
			Fields: []string{"name", "version", "description", "authors", "license", "requires-python", "dependencies"},
		},
		Dependencies: Dependencies{
			Disallowed: []string{"OpenAI"},
		},
		History: true,
	}
}

// Load reads dir's .prepub.yaml on top of the defaults. A missing file is
// not an error; unknown keys are.
func Load(dir string) (*Config, error) {
	cfg := Default()

	f, err := os.Open(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, &models.CheckError{
			Type: models.ErrInvalidConfig,
			Path: FileName,
			Err:  err,
		}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.SourceDir == "" {
		return &models.CheckError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("source_dir must not be empty"),
		}
	}
	if cfg.DistDir == "" {
		return &models.CheckError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("dist_dir must not be empty"),
		}
	}
	if cfg.Python == "" {
		return &models.CheckError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("python must not be empty"),
		}
	}
	return nil
}
