package starlark

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/amansingh-swe/OpenRefine-aman/internal/helpers"
)

// Config controls Runtime construction.
type Config struct {
	// LibraryPath names a directory of Starlark support files (*.star)
	// executed into the universe when the Runtime is built. When empty, the
	// default candidates are probed relative to the working directory and a
	// miss simply disables preloading. An explicitly configured path that
	// does not exist is a construction error.
	LibraryPath string
}

// Probed in order when LibraryPath is unset.
var defaultLibraryCandidates = []string{
	"starlib",
	filepath.Join("main", "starlib"),
}

// resolveLibraryDir returns the directory to preload, when one exists.
func (c Config) resolveLibraryDir(logger *slog.Logger) (string, bool, error) {
	if c.LibraryPath != "" {
		info, err := os.Stat(c.LibraryPath)
		if err != nil || !info.IsDir() {
			return "", false, fmt.Errorf(
				"%w: library path %q is not a directory",
				ErrLibraryLoad,
				c.LibraryPath,
			)
		}
		abs, err := filepath.Abs(c.LibraryPath)
		if err != nil {
			abs = c.LibraryPath
		}
		return abs, true, nil
	}

	dir, found := helpers.FindDir(logger, defaultLibraryCandidates...)
	return dir, found, nil
}
