// Package processor implements the Media Processor: the top-level
// orchestrator that drives a dispatched Job Plan as a producer,
// bounded worker pool, Frame Ordering Buffer, and sink.
package processor

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/five82/cascaler/internal/compile"
	"github.com/five82/cascaler/internal/config"
	"github.com/five82/cascaler/internal/dimension"
	"github.com/five82/cascaler/internal/dispatch"
	cerrors "github.com/five82/cascaler/internal/errors"
	"github.com/five82/cascaler/internal/imageop"
	"github.com/five82/cascaler/internal/order"
	"github.com/five82/cascaler/internal/pixfmt"
	"github.com/five82/cascaler/internal/progress"
	"github.com/five82/cascaler/internal/reporter"
	"github.com/five82/cascaler/internal/util"
	"github.com/five82/cascaler/internal/videoio"
	"github.com/five82/cascaler/internal/worker"
)

// heldFrameMultiplier is the Frame Ordering Buffer's capacity factor:
// held-but-undrained frames are capped at multiplier*workers + 1.
const heldFrameMultiplier = 4

// ItemResult is one item's outcome within a run.
type ItemResult struct {
	Path    string
	Success bool
	Error   string
}

// RunResult is the full outcome of a Media Processor run.
type RunResult struct {
	Results       []ItemResult
	SuccessCount  int
	FailedCount   int
	TotalDuration time.Duration
	Cancelled     bool
}

// Processor drives Job Plans to completion.
type Processor struct {
	Carver   imageop.SeamCarver
	Reporter reporter.Reporter
	TempDir  string
}

// New creates a Processor.
func New(carver imageop.SeamCarver, rep reporter.Reporter, tempDir string) *Processor {
	if rep == nil {
		rep = &reporter.NullReporter{}
	}
	return &Processor{Carver: carver, Reporter: rep, TempDir: tempDir}
}

// produced is one unit of decoded work, indexed for reassembly.
type produced struct {
	index int
	img   image.Image
	err   error
}

// completedFrame is a finished item ready for ordering and sinking.
type completedFrame struct {
	index int
	img   image.Image
	err   error
}

func (c completedFrame) Index() int { return c.index }

// Run dispatches plan and drives it to completion.
func (p *Processor) Run(ctx context.Context, plan *dispatch.Plan, opts *config.Options, cfg *config.Config) (*RunResult, error) {
	start := time.Now()

	switch plan.Mode {
	case dispatch.Video:
		return p.runVideo(ctx, plan, opts, cfg, start)
	case dispatch.ImageSequence:
		if len(plan.Sources) == 1 {
			return p.runSyntheticSequence(ctx, plan, opts, cfg, start)
		}
		return p.runDirectoryToVideo(ctx, plan, opts, cfg, start)
	case dispatch.ImageBatch:
		return p.runImageBatch(ctx, plan, opts, cfg, start)
	default:
		return p.runSingleImage(ctx, plan, opts, cfg, start)
	}
}

// runSingleImage handles the one-file-in, one-file-out case.
func (p *Processor) runSingleImage(ctx context.Context, plan *dispatch.Plan, opts *config.Options, cfg *config.Config, start time.Time) (*RunResult, error) {
	img, err := imageop.Load(plan.InputPath)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()

	dimPlan := dimension.Resolve(opts, origW, origH)
	out, err := imageop.Process(ctx, p.Carver, img, dimPlan.EndW, dimPlan.EndH, opts.DeltaX, opts.Rigidity)
	result := ItemResult{Path: plan.OutputPath}
	if err != nil {
		result.Error = err.Error()
	} else {
		if opts.ScaleBack {
			sw, sh := dimPlan.ScaleBackTarget(origW, origH)
			out = imageop.Resize(out, sw, sh)
		}
		if saveErr := imageop.Save(out, plan.OutputPath); saveErr != nil {
			result.Error = saveErr.Error()
		} else {
			result.Success = true
		}
	}
	return finalize([]ItemResult{result}, start), nil
}

// runImageBatch processes every discovered file independently to the
// same (uniform) target, writing a mirrored output directory.
func (p *Processor) runImageBatch(ctx context.Context, plan *dispatch.Plan, opts *config.Options, cfg *config.Config, start time.Time) (*RunResult, error) {
	if err := util.EnsureDirectory(plan.OutputPath); err != nil {
		return nil, cerrors.NewIOError("failed to create output directory", err)
	}

	first, err := imageop.Load(plan.Sources[0])
	if err != nil {
		return nil, err
	}
	b := first.Bounds()
	dimPlan := dimension.Resolve(opts, b.Dx(), b.Dy())

	producer := func(out chan<- produced) {
		for i, srcPath := range plan.Sources {
			img, err := imageop.Load(srcPath)
			select {
			case out <- produced{index: i, img: img, err: err}:
			case <-ctx.Done():
				return
			}
		}
	}

	sink := newImageDirSink(plan.OutputPath, plan.Sources, opts.Format)
	uniformTarget := func(int) (int, int) { return dimPlan.EndW, dimPlan.EndH }
	return p.runPipeline(ctx, producer, len(plan.Sources), uniformTarget, dimPlan, opts, cfg.Processing.MaxImageThreads, sink, start)
}

// runSyntheticSequence interpolates a single source image across a
// synthetic duration into a compiled video.
func (p *Processor) runSyntheticSequence(ctx context.Context, plan *dispatch.Plan, opts *config.Options, cfg *config.Config, start time.Time) (*RunResult, error) {
	srcImg, err := imageop.Load(plan.Sources[0])
	if err != nil {
		return nil, err
	}
	b := srcImg.Bounds()
	origW, origH := b.Dx(), b.Dy()
	dimPlan := dimension.Resolve(opts, origW, origH)

	duration := 0.0
	if opts.Duration != nil {
		duration = *opts.Duration
	}
	totalFrames := uint64(duration * opts.FPS)
	if totalFrames == 0 {
		totalFrames = 1
	}

	producer := func(out chan<- produced) {
		for i := uint64(0); i < totalFrames; i++ {
			select {
			case out <- produced{index: int(i), img: srcImg}:
			case <-ctx.Done():
				return
			}
		}
	}

	sink, err := newVideoSink(ctx, compile.Options{
		SourceVideoPath:         "",
		OutputPath:              plan.OutputPath,
		Width:                   dimPlan.EndW,
		Height:                  dimPlan.EndH,
		FPS:                     opts.FPS,
		TotalFrames:             totalFrames,
		Codec:                   opts.Codec,
		CRF:                     opts.CRF,
		Preset:                  opts.Preset,
		PixelFormat:             cfg.VideoEncoding.DefaultPixelFormat,
		KeyframeIntervalSeconds: cfg.VideoEncoding.KeyframeIntervalSeconds,
		TempDir:                 p.TempDir,
	})
	if err != nil {
		return nil, err
	}

	gradualTarget := func(i int) (int, int) { return dimPlan.Interpolate(i, int(totalFrames)) }
	return p.runPipeline(ctx, producer, int(totalFrames), gradualTarget, dimPlan, opts, cfg.Processing.MaxVideoThreads, sink, start)
}

// runDirectoryToVideo compiles a directory of discovered frames into
// a video, interpolating dimensions across the discovered sequence.
func (p *Processor) runDirectoryToVideo(ctx context.Context, plan *dispatch.Plan, opts *config.Options, cfg *config.Config, start time.Time) (*RunResult, error) {
	first, err := imageop.Load(plan.Sources[0])
	if err != nil {
		return nil, err
	}
	b := first.Bounds()
	dimPlan := dimension.Resolve(opts, b.Dx(), b.Dy())

	producer := func(out chan<- produced) {
		for i, srcPath := range plan.Sources {
			img, err := imageop.Load(srcPath)
			select {
			case out <- produced{index: i, img: img, err: err}:
			case <-ctx.Done():
				return
			}
		}
	}

	sink, err := newVideoSink(ctx, compile.Options{
		OutputPath:              plan.OutputPath,
		Width:                   dimPlan.EndW,
		Height:                  dimPlan.EndH,
		FPS:                     opts.FPS,
		TotalFrames:             uint64(len(plan.Sources)),
		Codec:                   opts.Codec,
		CRF:                     opts.CRF,
		Preset:                  opts.Preset,
		PixelFormat:             cfg.VideoEncoding.DefaultPixelFormat,
		KeyframeIntervalSeconds: cfg.VideoEncoding.KeyframeIntervalSeconds,
		TempDir:                 p.TempDir,
	})
	if err != nil {
		return nil, err
	}

	gradualTarget := func(i int) (int, int) { return dimPlan.Interpolate(i, len(plan.Sources)) }
	return p.runPipeline(ctx, producer, len(plan.Sources), gradualTarget, dimPlan, opts, cfg.Processing.MaxVideoThreads, sink, start)
}

// runVideo decodes, rescales, and reencodes a source video, muxing
// the original audio track back in.
func (p *Processor) runVideo(ctx context.Context, plan *dispatch.Plan, opts *config.Options, cfg *config.Config, start time.Time) (*RunResult, error) {
	startSecs, endSecs := 0.0, 0.0
	if opts.Start != nil {
		startSecs = *opts.Start
	}
	if opts.End != nil {
		endSecs = *opts.End
	} else if opts.Duration != nil {
		endSecs = startSecs + *opts.Duration
	}

	decoder, err := videoio.NewVideoDecoder(ctx, plan.InputPath, startSecs, endSecs, opts.FPS)
	if err != nil {
		return nil, err
	}
	defer decoder.Close()

	dimPlan := dimension.Resolve(opts, decoder.Width, decoder.Height)

	producer := func(out chan<- produced) {
		frameIdx := 0
		for {
			frame, ok, err := decoder.NextFrame()
			if err != nil {
				select {
				case out <- produced{index: frameIdx, err: err}:
				case <-ctx.Done():
				}
				return
			}
			if !ok {
				return
			}
			select {
			case out <- produced{index: frameIdx, img: frame.ToImage()}:
			case <-ctx.Done():
				return
			}
			frameIdx++
		}
	}

	sink, err := newVideoSink(ctx, compile.Options{
		SourceVideoPath:         plan.InputPath,
		OutputPath:              plan.OutputPath,
		Width:                   dimPlan.EndW,
		Height:                  dimPlan.EndH,
		FPS:                     decoder.FrameRate,
		TotalFrames:             decoder.TotalFrames,
		Codec:                   opts.Codec,
		CRF:                     opts.CRF,
		Preset:                  opts.Preset,
		PixelFormat:             cfg.VideoEncoding.DefaultPixelFormat,
		KeyframeIntervalSeconds: cfg.VideoEncoding.KeyframeIntervalSeconds,
		Vibrato:                 opts.Vibrato,
		StartSecs:               startSecs,
		EndSecs:                 endSecs,
		TempDir:                 p.TempDir,
	})
	if err != nil {
		return nil, err
	}

	gradualTarget := func(i int) (int, int) { return dimPlan.Interpolate(i, int(decoder.TotalFrames)) }
	return p.runPipeline(ctx, producer, int(decoder.TotalFrames), gradualTarget, dimPlan, opts, cfg.Processing.MaxVideoThreads, sink, start)
}

// sink abstracts the two sink shapes (per-file images, or a streaming
// video compilation) behind a uniform submit/finish/abort contract.
type sink interface {
	submit(index int, img image.Image) (outPath string, err error)
	finish(ctx context.Context) error
	abort()
}

func newVideoSink(ctx context.Context, opts compile.Options) (sink, error) {
	c, err := compile.Start(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &videoSink{compileSink: c}, nil
}

type videoSink struct {
	compileSink *compile.Sink
}

func (s *videoSink) submit(index int, img image.Image) (string, error) {
	rgb := pixfmt.FromImage(img, int64(index))
	return "", s.compileSink.Submit(rgb)
}

func (s *videoSink) finish(ctx context.Context) error { return s.compileSink.Finish(ctx) }
func (s *videoSink) abort()                           { s.compileSink.Abort() }

type imageDirSink struct {
	outputDir string
	sources   []string
	format    string
}

func newImageDirSink(outputDir string, sources []string, format string) *imageDirSink {
	return &imageDirSink{outputDir: outputDir, sources: sources, format: format}
}

func (s *imageDirSink) submit(index int, img image.Image) (string, error) {
	name := fmt.Sprintf("frame_%05d.%s", index, s.format)
	if index >= 0 && index < len(s.sources) {
		name = util.GetFileStem(s.sources[index]) + "." + s.format
	}
	outPath := filepath.Join(s.outputDir, name)
	return outPath, imageop.Save(img, outPath)
}

func (s *imageDirSink) finish(ctx context.Context) error { return nil }
func (s *imageDirSink) abort()                           {}

// runPipeline wires the producer, a bounded worker pool, the Frame
// Ordering Buffer, and sink together and drives them to completion.
func (p *Processor) runPipeline(ctx context.Context, produce func(chan<- produced), total int, targetFor func(index int) (int, int), dimPlan dimension.Plan, opts *config.Options, maxThreads int, s sink, start time.Time) (*RunResult, error) {
	workerCount := maxThreads
	if opts.Threads > 0 {
		workerCount = opts.Threads
	}
	if workerCount > total {
		workerCount = total
	}
	if workerCount < 1 {
		workerCount = 1
	}

	jobs := make(chan produced, workerCount)
	go func() {
		defer close(jobs)
		produce(jobs)
	}()

	buffer := order.NewBuffer[completedFrame]()
	sem := worker.NewSemaphore(heldFrameMultiplier*workerCount + 1)
	tracker := progress.New(uint64(total), 3)
	p.Reporter.ProcessingStarted(uint64(total))

	results := make([]ItemResult, total)
	var wg sync.WaitGroup
	var sinkMu sync.Mutex
	var cancelled atomic.Bool

	releaseReady := func(item completedFrame) {
		buffer.Submit(item)
		ready := buffer.Drain()
		if len(ready) == 0 {
			return
		}
		sinkMu.Lock()
		defer sinkMu.Unlock()
		for _, r := range ready {
			var outPath string
			var err error
			if r.err != nil {
				err = r.err
			} else {
				outPath, err = s.submit(r.index, r.img)
			}
			res := ItemResult{Path: outPath}
			if err != nil {
				res.Error = err.Error()
			} else {
				res.Success = true
			}
			if r.index >= 0 && r.index < len(results) {
				results[r.index] = res
			}
			tracker.Complete(1)
			p.Reporter.ProcessingProgress(snapshotToProgress(tracker.Snapshot()))
			sem.Release()
		}
	}

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				select {
				case <-ctx.Done():
					cancelled.Store(true)
					continue
				case <-sem.Chan():
				}

				if item.err != nil {
					releaseReady(completedFrame{index: item.index, err: item.err})
					continue
				}

				w, h := targetFor(item.index)
				out, err := imageop.Process(ctx, p.Carver, item.img, w, h, opts.DeltaX, opts.Rigidity)
				if err == nil && opts.ScaleBack {
					sw, sh := dimPlan.ScaleBackTarget(w, h)
					out = imageop.Resize(out, sw, sh)
				}
				releaseReady(completedFrame{index: item.index, img: out, err: err})
			}
		}()
	}
	wg.Wait()

	finalResults := append([]ItemResult(nil), results...)

	if ctx.Err() != nil || cancelled.Load() {
		s.abort()
		return &RunResult{Results: finalResults, Cancelled: true, TotalDuration: time.Since(start)}, cerrors.NewCancelledError()
	}

	if err := s.finish(ctx); err != nil {
		s.abort()
		return nil, err
	}

	return finalize(finalResults, start), nil
}

func finalize(results []ItemResult, start time.Time) *RunResult {
	run := &RunResult{Results: results, TotalDuration: time.Since(start)}
	for _, r := range results {
		if r.Success {
			run.SuccessCount++
		} else {
			run.FailedCount++
		}
	}
	return run
}

func snapshotToProgress(s progress.Snapshot) reporter.ProgressSnapshot {
	return reporter.ProgressSnapshot{
		FramesComplete: s.Completed,
		FramesTotal:    s.Total,
		Percent:        float32(s.Percent),
		FPS:            float32(s.FPS),
		ETA:            s.ETA,
		HasETA:         s.HasETA,
	}
}
