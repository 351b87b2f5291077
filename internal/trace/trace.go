// Package trace records how one transcript moved through the
// interpretation pipeline: which stages ran, how many candidates they
// produced, how long they took. Emitted as a single structured log entry
// per interpretation so production issues ("why did it pick that
// product?") can be diagnosed from logs alone.
package trace

import (
	"time"

	"go.uber.org/zap"
)

// Step is one pipeline stage of an interpretation.
type Step struct {
	Stage      string
	Candidates int
	DurationMs int64
}

// Recorder accumulates steps for one transcript. A nil logger disables
// recording entirely; all methods stay safe to call.
type Recorder struct {
	log        *zap.Logger
	transcript string
	start      time.Time
	steps      []Step
}

// New starts a recorder for one transcript.
func New(log *zap.Logger, transcript string) *Recorder {
	return &Recorder{
		log:        log,
		transcript: transcript,
		start:      time.Now(),
	}
}

// Add appends one stage.
func (r *Recorder) Add(stage string, candidates int, d time.Duration) {
	if r.log == nil {
		return
	}
	r.steps = append(r.steps, Step{
		Stage:      stage,
		Candidates: candidates,
		DurationMs: d.Milliseconds(),
	})
}

// Finish emits the collected trace.
func (r *Recorder) Finish(result string, confidence float64) {
	if r.log == nil {
		return
	}
	r.log.Debug("interpretation",
		zap.String("transcript", r.transcript),
		zap.String("result", result),
		zap.Float64("confidence", confidence),
		zap.Int64("total_ms", time.Since(r.start).Milliseconds()),
		zap.Any("steps", r.steps),
	)
}
