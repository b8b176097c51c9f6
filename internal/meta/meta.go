// Package meta interprets a recording's ECMETA control track: pause and
// resume markers that a Craig-style recorder writes to its own logical
// stream while the other streams keep rolling, so the gap they bracket can
// be closed out of the corrected timeline.
package meta

import "strings"

// Control packet bodies are matched by prefix, not by exact length or full
// JSON parsing: a recorder that appends trailing fields after the control
// object should still be recognized.
const (
	pausePrefix  = `{"c":"pause"}`
	resumePrefix = `{"c":"resume"}`
)

// Tracker accumulates the granule-position offset that pause/resume pairs
// on the meta stream introduce into every other stream's timeline.
type Tracker struct {
	streamNo      uint32
	haveStream    bool
	granuleOffset uint64
	paused        bool
	pauseAt       uint64
}

// SetStream records which logical stream carries meta control packets.
// A recording with no meta track never calls this, and Observe is never
// reached because HasStream stays false.
func (t *Tracker) SetStream(streamNo uint32) {
	t.streamNo = streamNo
	t.haveStream = true
}

// HasStream reports whether a meta stream has been identified yet.
func (t *Tracker) HasStream() bool {
	return t.haveStream
}

// StreamNo returns the identified meta stream's serial number. Only valid
// once HasStream reports true.
func (t *Tracker) StreamNo() uint32 {
	return t.streamNo
}

// Observe processes a packet from the meta stream seen at granulePos,
// updating the accumulated offset across a pause/resume pair. It reports
// whether the packet was a recognized control packet.
func (t *Tracker) Observe(granulePos uint64, payload []byte) bool {
	s := string(payload)
	switch {
	case strings.HasPrefix(s, pausePrefix):
		t.pauseAt = granulePos
		t.paused = true
		return true
	case strings.HasPrefix(s, resumePrefix):
		if t.paused {
			t.granuleOffset += granulePos - t.pauseAt
			t.paused = false
		}
		return true
	default:
		return false
	}
}

// Offset returns the total granule-position offset accumulated from
// pause/resume pairs observed so far.
func (t *Tracker) Offset() uint64 {
	return t.granuleOffset
}
