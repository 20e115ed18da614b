// Package audio plays looping music tracks and one-shot sound effects through
// the beep speaker. Every failure degrades to silence.
package audio

import (
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Track is a handle to a looping music track.
//
// Pausing keeps the stream position, so Resume continues where the track
// stopped. Stop releases the stream for good: Resume after Stop does nothing
// and the caller must Loop the path again to hear it.
type Track interface {
	Pause()
	Resume()
	Stop()
	IsRunning() bool
}

// NopTrack is the silent fallback handle. All methods are safe no-ops.
type NopTrack struct{}

func (NopTrack) Pause()          {}
func (NopTrack) Resume()         {}
func (NopTrack) Stop()           {}
func (NopTrack) IsRunning() bool { return false }

// LoopTrack is a looping stream registered in the manager's mixer.
type LoopTrack struct {
	ctrl    *beep.Ctrl
	closer  beep.StreamSeekCloser
	stopped bool
}

func newLoopTrack(src beep.StreamSeekCloser, out beep.Streamer) *LoopTrack {
	return &LoopTrack{
		ctrl:   &beep.Ctrl{Streamer: out},
		closer: src,
	}
}

// Pause silences the track and keeps its position.
func (t *LoopTrack) Pause() {
	speaker.Lock()
	defer speaker.Unlock()
	if !t.stopped {
		t.ctrl.Paused = true
	}
}

// Resume continues a paused track.
func (t *LoopTrack) Resume() {
	speaker.Lock()
	defer speaker.Unlock()
	if !t.stopped {
		t.ctrl.Paused = false
	}
}

// Stop detaches the track from the mixer and closes the decoder.
// Calling Stop twice is harmless.
func (t *LoopTrack) Stop() {
	speaker.Lock()
	if t.stopped {
		speaker.Unlock()
		return
	}
	t.stopped = true
	// A Ctrl without a streamer reports end of stream and the mixer drops it.
	t.ctrl.Streamer = nil
	speaker.Unlock()

	if t.closer != nil {
		_ = t.closer.Close()
	}
}

// IsRunning reports whether the track is currently audible.
func (t *LoopTrack) IsRunning() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return !t.stopped && !t.ctrl.Paused
}
