package audiofilter

import (
	"context"
	"testing"

	"github.com/five82/cascaler/internal/videoio"
)

func TestDisabledGraphIsIdentity(t *testing.T) {
	g, err := New(context.Background(), false, 48000, 2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if g.Enabled() {
		t.Error("expected disabled graph")
	}

	in := &videoio.AudioFrame{SampleRate: 48000, Channels: 2, Samples: []float32{0.1, 0.2, 0.3, 0.4}, PTS: 10}
	out, err := g.Apply(in)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if out != in {
		t.Error("expected disabled graph to return the same frame")
	}
	if err := g.Close(); err != nil {
		t.Errorf("Close() on disabled graph returned error: %v", err)
	}
}
