package processor

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/five82/cascaler/internal/config"
	"github.com/five82/cascaler/internal/dispatch"
	"github.com/five82/cascaler/internal/reporter"
)

// recordingCarver resizes to the requested target and records every
// call it receives, safe for concurrent use by the worker pool.
type recordingCarver struct {
	mu    sync.Mutex
	calls []carveCall
	err   error
}

type carveCall struct {
	w, h     int
	deltaX   float64
	rigidity int
}

func (c *recordingCarver) Carve(ctx context.Context, img image.Image, targetW, targetH int, deltaX float64, rigidity int) (image.Image, error) {
	c.mu.Lock()
	c.calls = append(c.calls, carveCall{w: targetW, h: targetH, deltaX: deltaX, rigidity: rigidity})
	c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	out := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	return out, nil
}

func (c *recordingCarver) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

// concurrencyTrackingCarver records the highest number of Carve calls
// observed in flight at once, to let tests assert on worker pool size.
type concurrencyTrackingCarver struct {
	current int32
	peak    int32
}

func (c *concurrencyTrackingCarver) Carve(ctx context.Context, img image.Image, targetW, targetH int, deltaX float64, rigidity int) (image.Image, error) {
	n := atomic.AddInt32(&c.current, 1)
	for {
		p := atomic.LoadInt32(&c.peak)
		if n <= p || atomic.CompareAndSwapInt32(&c.peak, p, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	atomic.AddInt32(&c.current, -1)
	return image.NewRGBA(image.Rect(0, 0, targetW, targetH)), nil
}

func writePNG(t *testing.T, path string, w, h int, fill color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, fill)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func testOptions() *config.Options {
	w, h := 20, 10
	return &config.Options{
		Width:    &w,
		Height:   &h,
		FPS:      30,
		DeltaX:   0.5,
		Rigidity: 2,
		Format:   "png",
	}
}

func TestRunImageBatchSucceedsAndNamesOutputsBySource(t *testing.T) {
	dir := t.TempDir()
	srcNames := []string{"alpha.png", "beta.png", "gamma.png"}
	var sources []string
	for _, name := range srcNames {
		p := filepath.Join(dir, name)
		writePNG(t, p, 40, 20, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		sources = append(sources, p)
	}
	outDir := filepath.Join(dir, "out")

	carver := &recordingCarver{}
	cfg := config.Default()
	cfg.Processing.MaxImageThreads = 2
	p := New(carver, reporter.NullReporter{}, t.TempDir())

	plan := &dispatch.Plan{
		Mode:       dispatch.ImageBatch,
		OutputPath: outDir,
		Sources:    sources,
	}

	result, err := p.Run(context.Background(), plan, testOptions(), cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.SuccessCount != 3 || result.FailedCount != 0 {
		t.Fatalf("expected 3 successes 0 failures, got success=%d failed=%d", result.SuccessCount, result.FailedCount)
	}

	for i, name := range srcNames {
		wantPath := filepath.Join(outDir, name[:len(name)-len(filepath.Ext(name))]+".png")
		if result.Results[i].Path != wantPath {
			t.Errorf("result[%d].Path = %q, want %q", i, result.Results[i].Path, wantPath)
		}
		if _, err := os.Stat(wantPath); err != nil {
			t.Errorf("expected output file %s to exist: %v", wantPath, err)
		}
	}

	if carver.callCount() != 3 {
		t.Errorf("expected 3 carve calls, got %d", carver.callCount())
	}
}

func TestRunImageBatchUsesUniformTargetAcrossItems(t *testing.T) {
	dir := t.TempDir()
	var sources []string
	for i := 0; i < 4; i++ {
		p := filepath.Join(dir, "src"+string(rune('a'+i))+".png")
		writePNG(t, p, 40, 20, color.RGBA{A: 255})
		sources = append(sources, p)
	}

	carver := &recordingCarver{}
	cfg := config.Default()
	cfg.Processing.MaxImageThreads = 4
	p := New(carver, reporter.NullReporter{}, t.TempDir())

	plan := &dispatch.Plan{
		Mode:       dispatch.ImageBatch,
		OutputPath: filepath.Join(dir, "out"),
		Sources:    sources,
	}

	if _, err := p.Run(context.Background(), plan, testOptions(), cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	carver.mu.Lock()
	defer carver.mu.Unlock()
	if len(carver.calls) != 4 {
		t.Fatalf("expected 4 calls, got %d", len(carver.calls))
	}
	for _, c := range carver.calls {
		if c.w != 20 || c.h != 10 {
			t.Errorf("expected every batch item to target the uniform 20x10 size, got %dx%d", c.w, c.h)
		}
		if c.deltaX != 0.5 || c.rigidity != 2 {
			t.Errorf("expected deltaX/rigidity to be threaded through, got %v/%d", c.deltaX, c.rigidity)
		}
	}
}

func TestRunImageBatchRecordsPerItemFailure(t *testing.T) {
	dir := t.TempDir()
	sources := []string{
		filepath.Join(dir, "ok.png"),
		filepath.Join(dir, "missing.png"), // never written, Load fails
	}
	writePNG(t, sources[0], 40, 20, color.RGBA{A: 255})

	carver := &recordingCarver{}
	cfg := config.Default()
	cfg.Processing.MaxImageThreads = 2
	p := New(carver, reporter.NullReporter{}, t.TempDir())

	plan := &dispatch.Plan{
		Mode:       dispatch.ImageBatch,
		OutputPath: filepath.Join(dir, "out"),
		Sources:    sources,
	}

	result, err := p.Run(context.Background(), plan, testOptions(), cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.SuccessCount != 1 || result.FailedCount != 1 {
		t.Fatalf("expected 1 success 1 failure, got success=%d failed=%d", result.SuccessCount, result.FailedCount)
	}
	if result.Results[0].Success != true {
		t.Errorf("expected sources[0] to succeed")
	}
	if result.Results[1].Success != false || result.Results[1].Error == "" {
		t.Errorf("expected sources[1] to fail with a recorded error, got %+v", result.Results[1])
	}
}

func TestRunImageBatchPreservesOrderUnderConcurrency(t *testing.T) {
	dir := t.TempDir()
	const n = 12
	var sources []string
	for i := 0; i < n; i++ {
		p := filepath.Join(dir, "f"+string(rune('a'+i))+".png")
		writePNG(t, p, 40, 20, color.RGBA{A: 255})
		sources = append(sources, p)
	}

	carver := &recordingCarver{}
	cfg := config.Default()
	cfg.Processing.MaxImageThreads = 6
	proc := New(carver, reporter.NullReporter{}, t.TempDir())

	plan := &dispatch.Plan{
		Mode:       dispatch.ImageBatch,
		OutputPath: filepath.Join(dir, "out"),
		Sources:    sources,
	}

	result, err := proc.Run(context.Background(), plan, testOptions(), cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Results) != n {
		t.Fatalf("expected %d results, got %d", n, len(result.Results))
	}
	for i, r := range result.Results {
		if !r.Success {
			t.Errorf("result[%d] unexpectedly failed: %s", i, r.Error)
		}
	}
}

func TestRunImageBatchThreadsOverridesConfiguredMax(t *testing.T) {
	dir := t.TempDir()
	const n = 8
	var sources []string
	for i := 0; i < n; i++ {
		p := filepath.Join(dir, "f"+string(rune('a'+i))+".png")
		writePNG(t, p, 40, 20, color.RGBA{A: 255})
		sources = append(sources, p)
	}

	carver := &concurrencyTrackingCarver{}
	cfg := config.Default()
	cfg.Processing.MaxImageThreads = 8
	proc := New(carver, reporter.NullReporter{}, t.TempDir())

	plan := &dispatch.Plan{
		Mode:       dispatch.ImageBatch,
		OutputPath: filepath.Join(dir, "out"),
		Sources:    sources,
	}

	opts := testOptions()
	opts.Threads = 2
	if _, err := proc.Run(context.Background(), plan, opts, cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if peak := atomic.LoadInt32(&carver.peak); peak > 2 {
		t.Errorf("expected Threads=2 to cap worker pool, observed peak concurrency %d", peak)
	}
}

func TestRunSingleImageScaleBack(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	writePNG(t, src, 40, 20, color.RGBA{A: 255})
	out := filepath.Join(dir, "out.png")

	carver := &recordingCarver{}
	cfg := config.Default()
	proc := New(carver, reporter.NullReporter{}, t.TempDir())

	opts := testOptions()
	opts.ScaleBack = true

	plan := &dispatch.Plan{
		Mode:       dispatch.SingleImage,
		InputPath:  src,
		OutputPath: out,
	}

	result, err := proc.Run(context.Background(), plan, opts, cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.SuccessCount != 1 {
		t.Fatalf("expected success, got %+v", result.Results[0])
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 40 || b.Dy() != 20 {
		t.Errorf("expected scale-back to restore original 40x20, got %dx%d", b.Dx(), b.Dy())
	}
}
