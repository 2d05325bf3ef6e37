package history

import (
	"os"
	"path/filepath"
)

// EnvDataDir overrides where prepub keeps its state. Tests point it at a
// temporary directory.
const EnvDataDir = "PREPUB_DATA_DIR"

// DataDir returns the directory used to store prepub data.
func DataDir() (string, error) {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".prepub"), nil
}

// DBPath returns the full path to the SQLite database file.
func DBPath() (string, error) {
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "prepub.db"), nil
}
