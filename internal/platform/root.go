package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// DataDirName is the directory that marks a project-local notebook.
const DataDirName = ".supernotes"

// ErrRootNotFound is returned by FindRoot when no notebook is found.
var ErrRootNotFound = errors.New("notebook root not found")

// FindRoot walks upwards from startDir looking for a project-local notebook
// (a .supernotes directory) and returns the absolute path of that directory.
func FindRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, DataDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrRootNotFound
		}
		dir = parent
	}
}
