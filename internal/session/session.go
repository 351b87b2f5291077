// Package session owns the state of one voice-capture session. The
// recognizer delivers a stream of hypotheses; the session keeps only the
// finalized ones, accumulating fragments across a pause window so that
// "tạo đơn" ... "5kg bột mì" spoken with a breath in between still
// dispatches as a single utterance. The caller owns the session handle
// and decides when to flush; there is no package-level singleton.
package session

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vietshop/voicepilot/pkg/models"
)

// Session accumulates finalized transcript fragments. Safe for use from
// the recognizer callback goroutine and the dispatching goroutine.
type Session struct {
	mu           sync.Mutex
	id           string
	parts        []string
	minConf      float64
	lastActivity time.Time
}

// New creates an empty session with a fresh id.
func New() *Session {
	return &Session{
		id:      uuid.NewString(),
		minConf: 1,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Push records a hypothesis. Interim hypotheses are ignored: they exist
// for live display, not interpretation. The fragment's confidence lowers
// the session's running confidence; the weakest fragment bounds the whole
// utterance.
func (s *Session) Push(h models.SpeechHypothesis) {
	if !h.IsFinal || strings.TrimSpace(h.Transcript) == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parts = append(s.parts, strings.TrimSpace(h.Transcript))
	if h.Confidence < s.minConf {
		s.minConf = h.Confidence
	}
	s.lastActivity = time.Now()
}

// Pending reports whether any fragments are waiting to be flushed.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.parts) > 0
}

// IdleSince returns the time of the last accepted fragment; zero when
// nothing was pushed yet. Callers use it to implement their debounce
// policy.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// Flush joins the accumulated fragments into one transcript and resets
// the session for the next utterance. ok is false when nothing was
// accumulated.
func (s *Session) Flush() (transcript string, confidence float64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.parts) == 0 {
		return "", 0, false
	}
	transcript = strings.Join(s.parts, " ")
	confidence = s.minConf
	s.parts = nil
	s.minConf = 1
	return transcript, confidence, true
}
