package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// IsDevRun reports whether the process was started by `go run` or `go test`,
// both of which build the binary in a temporary directory.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}
	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// ResolveDataPath returns the location the notebook is actually opened at.
// With forceTemp, paths outside the system temp directory are re-rooted into
// a namespaced sandbox so development runs never touch real notes.
func ResolveDataPath(userPath string, forceTemp bool) string {
	if !forceTemp {
		if userPath == "" {
			return "."
		}
		return userPath
	}

	clean := filepath.Clean(userPath)
	if rel, err := filepath.Rel(os.TempDir(), clean); err == nil && !strings.HasPrefix(rel, "..") && filepath.IsAbs(clean) {
		return clean
	}

	name := filepath.Base(clean)
	if userPath == "" || name == "." || name == string(os.PathSeparator) {
		name = "default"
	}
	return filepath.Join(os.TempDir(), "supernotes-dev", name)
}
