// Package progress implements the Progress Tracker: a completion
// counter with an EMA-smoothed ETA, reported through the reporter
// package once enough samples have accumulated.
package progress

import (
	"sync"
	"time"
)

// emaAlpha weights the most recent frame-rate sample against the
// running average. Lower values smooth more aggressively.
const emaAlpha = 0.3

// Tracker observes frame completions from the Media Processor's
// worker pool and derives a rate and ETA. It is safe for concurrent
// use: Complete is called from worker goroutines, Snapshot from the
// reporting goroutine.
type Tracker struct {
	mu                 sync.Mutex
	total              uint64
	completed          uint64
	minItemsForETA     int
	start              time.Time
	lastSampleTime     time.Time
	emaFramesPerSecond float64
	haveSample         bool
}

// New creates a Tracker for a run of total frames. minItemsForETA
// gates ETA display until at least that many frames have completed,
// avoiding a wildly noisy estimate from the first frame or two.
func New(total uint64, minItemsForETA int) *Tracker {
	now := time.Now()
	return &Tracker{
		total:          total,
		minItemsForETA: minItemsForETA,
		start:          now,
		lastSampleTime: now,
	}
}

// Complete records n additional completed frames.
func (t *Tracker) Complete(n uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(t.lastSampleTime).Seconds()
	t.lastSampleTime = now
	t.completed += n

	if elapsed <= 0 {
		return
	}
	instRate := float64(n) / elapsed
	if !t.haveSample {
		t.emaFramesPerSecond = instRate
		t.haveSample = true
		return
	}
	t.emaFramesPerSecond = emaAlpha*instRate + (1-emaAlpha)*t.emaFramesPerSecond
}

// Snapshot is a point-in-time progress reading.
type Snapshot struct {
	Completed uint64
	Total     uint64
	Percent   float64
	FPS       float64
	ETA       time.Duration
	HasETA    bool
}

// Snapshot returns the current progress and ETA. ETA is only
// considered valid once at least minItemsForETA frames have
// completed and a rate sample exists.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Snapshot{Completed: t.completed, Total: t.total}
	if t.total > 0 {
		s.Percent = float64(t.completed) / float64(t.total) * 100
	}
	s.FPS = t.emaFramesPerSecond

	if t.haveSample && int(t.completed) >= t.minItemsForETA && t.emaFramesPerSecond > 0 {
		remaining := t.total - t.completed
		s.ETA = time.Duration(float64(remaining)/t.emaFramesPerSecond) * time.Second
		s.HasETA = true
	}
	return s
}

// Elapsed returns the total time since the tracker was created.
func (t *Tracker) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return time.Since(t.start)
}

// Done reports whether every frame has completed.
func (t *Tracker) Done() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completed >= t.total
}
