package util

import (
	"os"
	"path/filepath"
	"strings"
)

// IsImageFile reports whether path names an existing file with a
// recognized image extension.
func IsImageFile(path string, imageExts map[string]bool) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

// IsVideoFile reports whether path names an existing file with a
// recognized video extension.
func IsVideoFile(path string, videoExts map[string]bool) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return videoExts[strings.ToLower(filepath.Ext(path))]
}

// GetFilename returns the filename from a path.
func GetFilename(path string) string {
	return filepath.Base(path)
}

// GetFileStem returns the filename without extension.
func GetFileStem(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext)
}

// GetFileSize returns the size of a file in bytes.
func GetFileSize(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return uint64(info.Size()), nil
}

// EnsureDirectory creates a directory if it doesn't exist.
func EnsureDirectory(path string) error {
	return os.MkdirAll(path, 0755)
}

// DirectoryExists checks if a directory exists.
func DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ResolveImageOutputPath builds the default output path for a single
// image given its input path, when the caller did not specify one:
// <stem>_<suffix>.<ext>, beside the input.
func ResolveImageOutputPath(inputPath, suffix string) string {
	dir := filepath.Dir(inputPath)
	stem := GetFileStem(inputPath)
	ext := filepath.Ext(inputPath)
	return filepath.Join(dir, stem+"_"+suffix+ext)
}

// ResolveVideoOutputPath builds the default output path for a video
// given its input path, when the caller did not specify one:
// <stem>_<suffix>.<ext>, defaulting to .mp4 when the input extension
// is not a supported output container.
func ResolveVideoOutputPath(inputPath, suffix string, outputExts map[string]bool) string {
	dir := filepath.Dir(inputPath)
	stem := GetFileStem(inputPath)
	ext := strings.ToLower(filepath.Ext(inputPath))
	if !outputExts[ext] {
		ext = ".mp4"
	}
	return filepath.Join(dir, stem+"_"+suffix+ext)
}

// ResolveBatchOutputDir builds the default output directory for a
// batch run: <inputDir>_<suffix>, beside the input directory.
func ResolveBatchOutputDir(inputDir, suffix string) string {
	parent := filepath.Dir(inputDir)
	base := filepath.Base(inputDir)
	return filepath.Join(parent, base+"_"+suffix)
}
