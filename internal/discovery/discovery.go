// Package discovery lists eligible media files within a directory for
// batch processing.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Logger defines the interface for discovery logging.
type Logger interface {
	Info(format string, args ...any)
	Debug(format string, args ...any)
}

// Result contains the results of file discovery with metadata.
type Result struct {
	Files        []string
	SkippedCount int
}

// FindFiles lists regular, non-hidden files directly under dir whose
// extension is in exts, sorted alphabetically by filename.
func FindFiles(dir string, exts map[string]bool) ([]string, error) {
	result, err := FindFilesWithLogging(dir, exts, nil)
	if err != nil {
		return nil, err
	}
	return result.Files, nil
}

// FindFilesWithLogging is FindFiles plus discovery-progress logging:
// a count summary, then the first 5 files found.
func FindFilesWithLogging(dir string, exts map[string]bool, logger Logger) (*Result, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("directory does not exist: %s", dir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	result := &Result{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if exts[strings.ToLower(filepath.Ext(name))] {
			result.Files = append(result.Files, filepath.Join(dir, name))
		} else {
			result.SkippedCount++
		}
	}

	if len(result.Files) == 0 {
		return nil, fmt.Errorf("no eligible files found in %s", dir)
	}

	sort.Slice(result.Files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(result.Files[i])) < strings.ToLower(filepath.Base(result.Files[j]))
	})

	if logger != nil {
		logFound(result.Files, logger)
	}
	return result, nil
}

func logFound(files []string, logger Logger) {
	if len(files) == 0 {
		logger.Info("no files found")
		return
	}
	logger.Info("found %d file(s)", len(files))

	maxToLog := min(5, len(files))
	for i := range maxToLog {
		logger.Debug("  %s", filepath.Base(files[i]))
	}
	if len(files) > 5 {
		logger.Debug("  ... and %d more", len(files)-5)
	}
}
