// Package nativelib resolves the native media library (FFmpeg's
// shared libraries) location per the priority order in the external
// interfaces contract: configured path, environment variable,
// platform-common directories, then a sibling lib directory of any
// ffmpeg binary on PATH. cascaler never links these libraries
// directly (see internal/videoio); resolution only locates them for
// diagnostic and --detect-ffmpeg reporting.
package nativelib

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// essentialLibs names the shared libraries a usable FFmpeg
// installation must provide, without platform file-extension or
// version-suffix decoration (applied by libraryFilenames).
var essentialLibs = []string{"avcodec", "avformat"}

// commonDirs lists platform-common directories FFmpeg's shared
// libraries are typically installed into.
func commonDirs() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\ffmpeg\bin`,
			filepath.Join(os.Getenv("ProgramFiles"), "ffmpeg", "bin"),
		}
	case "darwin":
		return []string{
			"/opt/homebrew/lib",
			"/usr/local/lib",
			"/opt/local/lib",
		}
	default:
		return []string{
			"/usr/lib/x86_64-linux-gnu",
			"/usr/lib",
			"/usr/local/lib",
			"/lib/x86_64-linux-gnu",
		}
	}
}

// libraryFilenames returns the platform-appropriate candidate
// filenames for a bare library name (e.g. "avcodec").
func libraryFilenames(name string) []string {
	switch runtime.GOOS {
	case "windows":
		return []string{name + "-60.dll", name + "-61.dll", name + ".dll"}
	case "darwin":
		return []string{"lib" + name + ".dylib", "lib" + name + ".60.dylib", "lib" + name + ".61.dylib"}
	default:
		return []string{"lib" + name + ".so", "lib" + name + ".so.60", "lib" + name + ".so.61"}
	}
}

// Source identifies which step of the resolution order located the
// library directory.
type Source int

const (
	// SourceConfigured means the configured FFmpeg.LibraryPath was used.
	SourceConfigured Source = iota
	// SourceEnv means FFMPEG_PATH was used.
	SourceEnv
	// SourceCommonDir means a platform-common directory was used.
	SourceCommonDir
	// SourceBinarySibling means the directory was derived from an
	// ffmpeg binary found on PATH.
	SourceBinarySibling
)

func (s Source) String() string {
	switch s {
	case SourceConfigured:
		return "configured library path"
	case SourceEnv:
		return "FFMPEG_PATH environment variable"
	case SourceCommonDir:
		return "platform-common directory"
	case SourceBinarySibling:
		return "sibling directory of ffmpeg on PATH"
	default:
		return "unknown"
	}
}

// Result reports a successful resolution.
type Result struct {
	Dir    string
	Source Source
}

// hasEssentialLibs reports whether dir contains every library in
// essentialLibs under any of its platform-appropriate filenames.
func hasEssentialLibs(dir string) bool {
	if dir == "" {
		return false
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	for _, lib := range essentialLibs {
		found := false
		for _, name := range libraryFilenames(lib) {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Resolve locates a directory containing the essential FFmpeg shared
// libraries, trying configuredPath, then FFMPEG_PATH, then
// platform-common directories, then the sibling lib directory of any
// ffmpeg binary on PATH, in that order. Returns an error naming every
// candidate tried when none qualifies.
func Resolve(configuredPath string) (*Result, error) {
	if hasEssentialLibs(configuredPath) {
		return &Result{Dir: configuredPath, Source: SourceConfigured}, nil
	}

	if envPath := os.Getenv("FFMPEG_PATH"); hasEssentialLibs(envPath) {
		return &Result{Dir: envPath, Source: SourceEnv}, nil
	}

	for _, dir := range commonDirs() {
		if hasEssentialLibs(dir) {
			return &Result{Dir: dir, Source: SourceCommonDir}, nil
		}
	}

	if binPath, err := exec.LookPath("ffmpeg"); err == nil {
		sibling := filepath.Join(filepath.Dir(filepath.Dir(binPath)), "lib")
		if hasEssentialLibs(sibling) {
			return &Result{Dir: sibling, Source: SourceBinarySibling}, nil
		}
	}

	return nil, &NotFoundError{ConfiguredPath: configuredPath}
}

// NotFoundError reports that no resolution step located the
// essential libraries.
type NotFoundError struct {
	ConfiguredPath string
}

func (e *NotFoundError) Error() string {
	msg := "no FFmpeg installation found providing avcodec/avformat"
	if e.ConfiguredPath != "" {
		msg += " (configured path " + e.ConfiguredPath + " did not qualify)"
	}
	return msg
}
