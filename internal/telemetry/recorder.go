// Package telemetry captures per-frame engine stats and persists them
// as replayable runs: a metadata.json plus a frames.csv per run.
package telemetry

import "github.com/avelev/wormview/internal/engine"

// Recorder buffers frame stats in memory. Attach it to the scheduler
// with Observe, then hand the buffer to a Store when the session ends.
type Recorder struct {
	Label  string
	frames []engine.FrameStats
}

// NewRecorder returns a recorder tagged with a session label.
func NewRecorder(label string) *Recorder {
	return &Recorder{Label: label}
}

// ObserveFrame implements engine.FrameObserver.
func (r *Recorder) ObserveFrame(s engine.FrameStats) {
	r.frames = append(r.frames, s)
}

// Frames returns the captured buffer.
func (r *Recorder) Frames() []engine.FrameStats { return r.frames }

// Len returns the number of captured frames.
func (r *Recorder) Len() int { return len(r.frames) }
