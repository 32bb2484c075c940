package nativelib

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func touchLib(t *testing.T, dir, name string) {
	t.Helper()
	names := libraryFilenames(name)
	if err := os.WriteFile(filepath.Join(dir, names[0]), []byte{}, 0644); err != nil {
		t.Fatalf("touchLib: %v", err)
	}
}

func TestHasEssentialLibs(t *testing.T) {
	dir := t.TempDir()
	if hasEssentialLibs(dir) {
		t.Fatal("expected empty directory to lack essential libs")
	}
	touchLib(t, dir, "avcodec")
	if hasEssentialLibs(dir) {
		t.Fatal("expected partial libs to still fail")
	}
	touchLib(t, dir, "avformat")
	if !hasEssentialLibs(dir) {
		t.Fatal("expected both libs present to satisfy hasEssentialLibs")
	}
}

func TestHasEssentialLibsMissingDir(t *testing.T) {
	if hasEssentialLibs(filepath.Join(t.TempDir(), "does-not-exist")) {
		t.Fatal("expected missing directory to fail")
	}
	if hasEssentialLibs("") {
		t.Fatal("expected empty path to fail")
	}
}

func TestResolveUsesConfiguredPathFirst(t *testing.T) {
	configured := t.TempDir()
	touchLib(t, configured, "avcodec")
	touchLib(t, configured, "avformat")

	t.Setenv("FFMPEG_PATH", "")

	result, err := Resolve(configured)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if result.Dir != configured {
		t.Errorf("Dir = %q, want %q", result.Dir, configured)
	}
	if result.Source != SourceConfigured {
		t.Errorf("Source = %v, want SourceConfigured", result.Source)
	}
}

func TestResolveFallsBackToEnv(t *testing.T) {
	envDir := t.TempDir()
	touchLib(t, envDir, "avcodec")
	touchLib(t, envDir, "avformat")
	t.Setenv("FFMPEG_PATH", envDir)

	result, err := Resolve(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if result.Dir != envDir || result.Source != SourceEnv {
		t.Errorf("got %+v, want env dir %q", result, envDir)
	}
}

func TestResolveReturnsNotFoundError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("common-dir fallback list differs on windows")
	}
	t.Setenv("FFMPEG_PATH", "")
	t.Setenv("PATH", t.TempDir())

	_, err := Resolve(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("expected an error when nothing qualifies")
	}
	if _, ok := err.(*NotFoundError); !ok {
		t.Errorf("expected *NotFoundError, got %T", err)
	}
}

func TestSourceString(t *testing.T) {
	cases := map[Source]string{
		SourceConfigured:    "configured library path",
		SourceEnv:           "FFMPEG_PATH environment variable",
		SourceCommonDir:     "platform-common directory",
		SourceBinarySibling: "sibling directory of ffmpeg on PATH",
	}
	for src, want := range cases {
		if got := src.String(); got != want {
			t.Errorf("Source(%d).String() = %q, want %q", src, got, want)
		}
	}
}
