package utils

import (
	"os"
	"path/filepath"
)

// EnsureDir creates the directory if it does not exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// EnsureParent creates the parent directory of the given path.
func EnsureParent(path string) error {
	return EnsureDir(filepath.Dir(path))
}
