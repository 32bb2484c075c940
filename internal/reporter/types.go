// Package reporter provides progress reporting interfaces and
// implementations for the cascaler CLI.
package reporter

import "time"

// HardwareSummary contains host information printed once per run.
type HardwareSummary struct {
	Hostname string
	NumCPU   int
}

// InitializationSummary describes the current item before processing.
type InitializationSummary struct {
	InputFile  string
	OutputFile string
	Mode       string
	Resolution string
	Duration   string
}

// ProcessingConfigSummary describes the resolved options for a run.
type ProcessingConfigSummary struct {
	DeltaX    float64
	Rigidity  int
	ScaleBack bool
	Vibrato   bool
	Codec     string
	Preset    string
	CRF       int
}

// ProgressSnapshot contains a point-in-time progress update.
type ProgressSnapshot struct {
	FramesComplete uint64
	FramesTotal    uint64
	Percent        float32
	FPS            float32
	ETA            time.Duration
	HasETA         bool
}

// ProcessingOutcome contains final per-item results.
type ProcessingOutcome struct {
	InputFile    string
	OutputFile   string
	OriginalSize uint64
	OutputSize   uint64
	TotalTime    time.Duration
}

// ReporterError contains error information for display.
type ReporterError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}

// BatchStartInfo contains batch start metadata.
type BatchStartInfo struct {
	TotalFiles int
	FileList   []string
	OutputDir  string
}

// FileProgressContext contains the current file index within a batch.
type FileProgressContext struct {
	CurrentFile int
	TotalFiles  int
	Filename    string
}

// BatchSummary contains batch completion information.
type BatchSummary struct {
	SuccessfulCount int
	FailedCount     int
	TotalFiles      int
	TotalDuration   time.Duration
	FileResults     []FileResult
	Failures        []FailureResult
}

// FileResult contains a per-file success outcome.
type FileResult struct {
	Filename     string
	OriginalSize uint64
	OutputSize   uint64
}

// FailureResult contains a per-file failure outcome.
type FailureResult struct {
	Filename string
	Reason   string
}

// StageProgress represents a generic pipeline stage update, e.g.
// "decode", "carve", "encode", "mux".
type StageProgress struct {
	Stage   string
	Message string
}
