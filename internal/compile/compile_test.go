package compile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAbortRemovesPartialOutput(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.mp4")
	videoTemp := filepath.Join(dir, "video.mp4")
	audioTemp := filepath.Join(dir, "audio.m4a")

	for _, p := range []string{outPath, videoTemp, audioTemp} {
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	s := &Sink{
		opts:      Options{OutputPath: outPath},
		videoTemp: videoTemp,
		audioTemp: audioTemp,
	}
	s.Abort()

	for _, p := range []string{outPath, videoTemp, audioTemp} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("expected %s to be removed", p)
		}
	}
}

func TestAbortOnEmptySinkDoesNotPanic(t *testing.T) {
	s := &Sink{opts: Options{OutputPath: filepath.Join(t.TempDir(), "missing.mp4")}}
	s.Abort()
}
