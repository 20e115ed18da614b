package audio

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/tui-arkanoid/internal/assets"
)

const (
	sampleRate      = beep.SampleRate(44100)
	resampleQuality = 4
)

// Opener resolves a logical asset path to a readable stream.
type Opener interface {
	Open(path string) (io.ReadCloser, error)
}

// Manager owns the speaker mixer, the loaded effect buffers and the
// currently opened tracks.
type Manager struct {
	opener Opener
	logger *log.Logger

	mu          sync.Mutex
	mixer       *beep.Mixer
	effects     map[string]*beep.Buffer
	initialized bool
}

// NewManager creates a manager. Nothing is audible until Init succeeds.
func NewManager(opener Opener, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{
		opener:  opener,
		logger:  logger,
		mixer:   &beep.Mixer{},
		effects: make(map[string]*beep.Buffer),
	}
}

// Init opens the audio device. On failure the manager stays silent.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Close silences everything that is still playing.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	m.initialized = false
}

// Loop starts a looping track. It never returns nil: any failure yields a
// NopTrack so callers can pause/resume/stop unconditionally.
func (m *Manager) Loop(path string) Track {
	m.mu.Lock()
	ready := m.initialized
	m.mu.Unlock()
	if !ready {
		return NopTrack{}
	}

	src, format, err := m.decode(path)
	if err != nil {
		m.logMiss("music", path, err)
		return NopTrack{}
	}

	t := newLoopTrack(src, m.resampled(format, beep.Loop(-1, src)))
	speaker.Lock()
	m.mixer.Add(t.ctrl)
	speaker.Unlock()
	return t
}

// PlayOnce plays a short effect. The decoded samples are kept in memory so
// repeated hits do not touch the disk.
func (m *Manager) PlayOnce(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}

	buf, ok := m.effects[path]
	if !ok {
		src, format, err := m.decode(path)
		if err != nil {
			m.logMiss("sound", path, err)
			// Remember the miss so a missing file is not retried every hit.
			m.effects[path] = nil
			return
		}
		buf = beep.NewBuffer(format)
		buf.Append(src)
		_ = src.Close()
		m.effects[path] = buf
	}
	if buf == nil {
		return
	}

	speaker.Lock()
	m.mixer.Add(m.resampled(buf.Format(), buf.Streamer(0, buf.Len())))
	speaker.Unlock()
}

// decode opens and decodes a WAV asset.
func (m *Manager) decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	if m.opener == nil {
		return nil, beep.Format{}, fmt.Errorf("audio: no asset source: %w", assets.ErrNotFound)
	}
	r, err := m.opener.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	s, format, err := wav.Decode(r)
	if err != nil {
		r.Close()
		return nil, beep.Format{}, fmt.Errorf("audio: decode %s: %w", path, err)
	}
	return s, format, nil
}

// resampled adapts a stream to the speaker's sample rate.
func (m *Manager) resampled(format beep.Format, s beep.Streamer) beep.Streamer {
	if format.SampleRate == sampleRate {
		return s
	}
	return beep.Resample(resampleQuality, format.SampleRate, sampleRate, s)
}

func (m *Manager) logMiss(kind, path string, err error) {
	if errors.Is(err, assets.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		m.logger.Debug("audio asset missing", "kind", kind, "path", path, "reason", "not_found")
		return
	}
	m.logger.Warn("audio asset unusable", "kind", kind, "path", path, "reason", "io", "error", err)
}
