package path

import (
	"path/filepath"
	"runtime"
)

// GetRootDirectory returns the absolute path of the project root,
// resolved from this source file's location.
func GetRootDirectory() string {
	_, currentFile, _, _ := runtime.Caller(0)
	return filepath.Dir(filepath.Dir(filepath.Dir(currentFile)))
}
