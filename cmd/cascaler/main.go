// Package main provides the CLI entry point for cascaler.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/cascaler"
	"github.com/five82/cascaler/internal/config"
	"github.com/five82/cascaler/internal/nativelib"
	"github.com/five82/cascaler/internal/reporter"
)

const appName = "cascaler"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "config":
		err = runConfig(os.Args[2:])
	case "version", "--version", "-v":
		fmt.Printf("%s\n", appName)
		return
	case "help", "--help", "-h":
		printUsage()
		return
	default:
		err = runRescale(os.Args[1:])
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%s - content-aware liquid rescaling

Usage:
  %s <input> [options]
  %s config <show|path|init|export> [options]

Run '%s <input> --help' for rescale options.
`, appName, appName, appName, appName)
}

type rescaleArgs struct {
	output       string
	width        int
	height       int
	percent      float64
	startWidth   int
	startHeight  int
	startPercent float64
	start        float64
	end          float64
	duration     float64
	format       string
	fps          float64
	deltaX       float64
	rigidity     int
	threads      int
	noProgress   bool
	scaleBack    bool
	vibrato      bool
}

func runRescale(args []string) error {
	if len(args) == 0 || args[0] == "" {
		printUsage()
		return fmt.Errorf("input path is required")
	}
	input := args[0]
	rest := args[1:]

	fs := flag.NewFlagSet("rescale", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Rescale an image, image batch, or video.

Usage:
  %s <input> [options]

Target size (mutually exclusive):
  -w, --width <N>           Target width in pixels
  -h, --height <N>          Target height in pixels
  -p, --percent <N>         Target size as a percentage of the original

Gradual start size (mutually exclusive, for video/sequence runs):
  -sw, --start-width <N>    Starting width in pixels
  -sh, --start-height <N>   Starting height in pixels
  -sp, --start-percent <N>  Starting size as a percentage

Time window (video input):
  --start <SECONDS>         Window start offset
  --end <SECONDS>           Window end offset (mutually exclusive with --duration)
  --duration <SECONDS>      Window/output duration in seconds

Output:
  -o, --output <PATH>       Output file or directory
  -f, --format <FMT>        Per-frame output format (png, jpg, bmp, tiff)
  --fps <N>                 Output frame rate
  --no-progress             Disable the live progress display
  --scale-back              Resample carved frames to max(start, end) size

Carving:
  -d, --deltaX <N>          Seam curvature freedom, 0..1
  -r, --rigidity <N>        Seam straightness bias, 0..10
  -t, --threads <N>         Worker thread count

Audio (video input):
  --vibrato                 Apply a vibrato+tremolo audio filter
`, appName)
	}

	var ra rescaleArgs
	fs.StringVar(&ra.output, "o", "", "Output path")
	fs.StringVar(&ra.output, "output", "", "Output path")
	fs.IntVar(&ra.width, "w", 0, "Target width")
	fs.IntVar(&ra.width, "width", 0, "Target width")
	fs.IntVar(&ra.height, "h", 0, "Target height")
	fs.IntVar(&ra.height, "height", 0, "Target height")
	fs.Float64Var(&ra.percent, "p", 0, "Target percent")
	fs.Float64Var(&ra.percent, "percent", 0, "Target percent")
	fs.IntVar(&ra.startWidth, "sw", 0, "Start width")
	fs.IntVar(&ra.startWidth, "start-width", 0, "Start width")
	fs.IntVar(&ra.startHeight, "sh", 0, "Start height")
	fs.IntVar(&ra.startHeight, "start-height", 0, "Start height")
	fs.Float64Var(&ra.startPercent, "sp", 0, "Start percent")
	fs.Float64Var(&ra.startPercent, "start-percent", 0, "Start percent")
	fs.Float64Var(&ra.start, "start", 0, "Window start seconds")
	fs.Float64Var(&ra.end, "end", 0, "Window end seconds")
	fs.Float64Var(&ra.duration, "duration", 0, "Window/output duration seconds")
	fs.StringVar(&ra.format, "f", "", "Frame output format")
	fs.StringVar(&ra.format, "format", "", "Frame output format")
	fs.Float64Var(&ra.fps, "fps", 0, "Output frame rate")
	fs.Float64Var(&ra.deltaX, "d", 0, "Seam curvature freedom")
	fs.Float64Var(&ra.deltaX, "deltaX", 0, "Seam curvature freedom")
	fs.IntVar(&ra.rigidity, "r", 0, "Seam straightness bias")
	fs.IntVar(&ra.rigidity, "rigidity", 0, "Seam straightness bias")
	fs.IntVar(&ra.threads, "t", 0, "Worker thread count")
	fs.IntVar(&ra.threads, "threads", 0, "Worker thread count")
	fs.BoolVar(&ra.noProgress, "no-progress", false, "Disable the live progress display")
	fs.BoolVar(&ra.scaleBack, "scale-back", false, "Resample carved frames to max(start, end) size")
	fs.BoolVar(&ra.vibrato, "vibrato", false, "Apply a vibrato+tremolo audio filter")

	if err := fs.Parse(rest); err != nil {
		return err
	}

	return executeRescale(input, ra)
}

func executeRescale(input string, ra rescaleArgs) error {
	opts := buildRescaleOptions(ra)

	var rep reporter.Reporter = reporter.NullReporter{}
	if !ra.noProgress {
		rep = reporter.NewTerminalReporter()
	}

	r, err := cascaler.New(cascaler.WithReporter(rep))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	_, err = r.Rescale(ctx, input, ra.output, opts...)
	return err
}

func buildRescaleOptions(ra rescaleArgs) []cascaler.RescaleOption {
	var opts []cascaler.RescaleOption
	if ra.width != 0 {
		opts = append(opts, cascaler.WithWidth(ra.width))
	}
	if ra.height != 0 {
		opts = append(opts, cascaler.WithHeight(ra.height))
	}
	if ra.percent != 0 {
		opts = append(opts, cascaler.WithPercent(ra.percent))
	}
	if ra.startWidth != 0 {
		opts = append(opts, cascaler.WithStartWidth(ra.startWidth))
	}
	if ra.startHeight != 0 {
		opts = append(opts, cascaler.WithStartHeight(ra.startHeight))
	}
	if ra.startPercent != 0 {
		opts = append(opts, cascaler.WithStartPercent(ra.startPercent))
	}
	if ra.end != 0 {
		opts = append(opts, cascaler.WithWindow(ra.start, ra.end))
	} else if ra.start != 0 {
		start := ra.start
		opts = append(opts, func(o *config.Options) { o.Start = &start })
	}
	if ra.duration != 0 {
		opts = append(opts, cascaler.WithDuration(ra.duration))
	}
	if ra.format != "" {
		opts = append(opts, cascaler.WithFormat(ra.format))
	}
	if ra.fps != 0 {
		opts = append(opts, cascaler.WithFPS(ra.fps))
	}
	if ra.deltaX != 0 {
		opts = append(opts, cascaler.WithDeltaX(ra.deltaX))
	}
	if ra.rigidity != 0 {
		opts = append(opts, cascaler.WithRigidity(ra.rigidity))
	}
	if ra.threads != 0 {
		opts = append(opts, cascaler.WithThreads(ra.threads))
	}
	if ra.scaleBack {
		opts = append(opts, cascaler.WithScaleBack())
	}
	if ra.vibrato {
		opts = append(opts, cascaler.WithVibrato())
	}
	return opts
}

func runConfig(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("config subcommand required: show, path, init, export")
	}
	switch args[0] {
	case "show":
		return configShow()
	case "path":
		return configPath()
	case "init":
		return configInit(args[1:])
	case "export":
		return configExport(args[1:])
	default:
		return fmt.Errorf("unknown config subcommand: %s", args[0])
	}
}

func configShow() error {
	path, err := config.UserConfigPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	return printConfig(cfg, os.Stdout)
}

func configPath() error {
	path, err := config.UserConfigPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func configInit(args []string) error {
	fs := flag.NewFlagSet("config init", flag.ExitOnError)
	detect := fs.Bool("detect-ffmpeg", false, "Probe for a usable FFmpeg installation and record its library path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path, err := config.UserConfigPath()
	if err != nil {
		return err
	}
	cfg := config.Default()
	if *detect {
		if err := applyDetectedLibraryPath(cfg); err != nil {
			return err
		}
	}
	if err := config.Save(cfg, path); err != nil {
		return err
	}
	fmt.Printf("Wrote default configuration to %s\n", path)
	return nil
}

func configExport(args []string) error {
	fs := flag.NewFlagSet("config export", flag.ExitOnError)
	detect := fs.Bool("detect-ffmpeg", false, "Probe for a usable FFmpeg installation and record its library path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("export requires a target file path")
	}
	path := fs.Arg(0)

	userPath, err := config.UserConfigPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(userPath)
	if err != nil {
		return err
	}
	if *detect {
		if err := applyDetectedLibraryPath(cfg); err != nil {
			return err
		}
	}
	if err := config.Save(cfg, path); err != nil {
		return err
	}
	fmt.Printf("Exported configuration to %s\n", path)
	return nil
}

func applyDetectedLibraryPath(cfg *config.Config) error {
	result, err := nativelib.Resolve(cfg.FFmpeg.LibraryPath)
	if err != nil {
		return err
	}
	cfg.FFmpeg.LibraryPath = result.Dir
	fmt.Printf("Detected FFmpeg libraries in %s (%s)\n", result.Dir, result.Source)
	return nil
}

func printConfig(cfg *config.Config, w *os.File) error {
	fmt.Fprintf(w, "FFmpeg.LibraryPath: %s\n", cfg.FFmpeg.LibraryPath)
	fmt.Fprintf(w, "FFmpeg.EnableAutoDetection: %v\n", cfg.FFmpeg.EnableAutoDetection)
	fmt.Fprintf(w, "Processing.MaxImageThreads: %d\n", cfg.Processing.MaxImageThreads)
	fmt.Fprintf(w, "Processing.MaxVideoThreads: %d\n", cfg.Processing.MaxVideoThreads)
	fmt.Fprintf(w, "Processing.DefaultFps: %g\n", cfg.Processing.DefaultFps)
	fmt.Fprintf(w, "Processing.DefaultDeltaX: %g\n", cfg.Processing.DefaultDeltaX)
	fmt.Fprintf(w, "Processing.DefaultRigidity: %d\n", cfg.Processing.DefaultRigidity)
	fmt.Fprintf(w, "VideoEncoding.DefaultCRF: %d\n", cfg.VideoEncoding.DefaultCRF)
	fmt.Fprintf(w, "VideoEncoding.DefaultPreset: %s\n", cfg.VideoEncoding.DefaultPreset)
	fmt.Fprintf(w, "VideoEncoding.DefaultCodec: %s\n", cfg.VideoEncoding.DefaultCodec)
	fmt.Fprintf(w, "Output.Suffix: %s\n", cfg.Output.Suffix)
	return nil
}
