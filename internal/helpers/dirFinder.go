package helpers

import (
	"log/slog"
	"os"
	"path/filepath"
)

// FindDir searches the given candidate paths in order and returns the
// absolute path of the first one that exists and is a directory.
//
// Parameters:
//   - logger: Optional logger for verbose output
//   - candidates: Relative or absolute directory paths to probe
//
// Returns:
//   - Absolute path of the first matching directory
//   - false when none of the candidates exist
func FindDir(logger *slog.Logger, candidates ...string) (string, bool) {
	for _, path := range candidates {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			if logger != nil {
				logger.Debug("candidate directory not usable", "path", path)
			}
			continue
		}
		absPath, err := filepath.Abs(path)
		if err != nil {
			absPath = path
		}
		if logger != nil {
			logger.Debug("found directory", "path", absPath)
		}
		return absPath, true
	}
	return "", false
}
