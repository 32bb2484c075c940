package reporter

// Reporter defines the interface for progress reporting. The Media
// Processor calls it with Progress Tracker snapshots; it has no
// knowledge of the pipeline internals.
type Reporter interface {
	Hardware(summary HardwareSummary)
	Initialization(summary InitializationSummary)
	StageProgress(update StageProgress)
	ProcessingConfig(summary ProcessingConfigSummary)
	ProcessingStarted(totalFrames uint64)
	ProcessingProgress(progress ProgressSnapshot)
	ProcessingComplete(summary ProcessingOutcome)
	Warning(message string)
	Error(err ReporterError)
	OperationComplete(message string)
	BatchStarted(info BatchStartInfo)
	FileProgress(context FileProgressContext)
	BatchComplete(summary BatchSummary)
	Verbose(message string)
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) Hardware(HardwareSummary)                 {}
func (NullReporter) Initialization(InitializationSummary)     {}
func (NullReporter) StageProgress(StageProgress)              {}
func (NullReporter) ProcessingConfig(ProcessingConfigSummary) {}
func (NullReporter) ProcessingStarted(uint64)                 {}
func (NullReporter) ProcessingProgress(ProgressSnapshot)      {}
func (NullReporter) ProcessingComplete(ProcessingOutcome)     {}
func (NullReporter) Warning(string)                           {}
func (NullReporter) Error(ReporterError)                      {}
func (NullReporter) OperationComplete(string)                 {}
func (NullReporter) BatchStarted(BatchStartInfo)              {}
func (NullReporter) FileProgress(FileProgressContext)         {}
func (NullReporter) BatchComplete(BatchSummary)               {}
func (NullReporter) Verbose(string)                           {}
