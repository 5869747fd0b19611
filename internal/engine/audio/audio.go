// Package audio plays short feedback sounds for sketch events.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned when playing before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Cue names a feedback event.
type Cue int

const (
	CueCreated Cue = iota
	CueDiscarded
	CueDeleted
)

// Tone is one segment of a synthesized cue.
type Tone struct {
	Freq     float64 // Hz
	Duration time.Duration
}

// cueTones are the built-in sounds used when no WAV override is loaded.
var cueTones = map[Cue][]Tone{
	CueCreated:   {{660, 60 * time.Millisecond}, {880, 90 * time.Millisecond}},
	CueDiscarded: {{220, 140 * time.Millisecond}},
	CueDeleted:   {{520, 50 * time.Millisecond}, {390, 70 * time.Millisecond}},
}

// Manager mixes cue playback onto the speaker.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	volume      float64 // 0.0 to 1.0

	// Decoded WAV overrides, at sampleRate.
	overrides map[Cue]*beep.Buffer

	mixer *beep.Mixer
}

// New creates a new audio manager.
func New() *Manager {
	return &Manager{
		sampleRate: DefaultSampleRate,
		volume:     1.0,
		overrides:  make(map[Cue]*beep.Buffer),
		mixer:      &beep.Mixer{},
	}
}

// Init opens the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)

	m.initialized = true
	return nil
}

// Close shuts down the audio system.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		speaker.Clear()
		speaker.Close()
	}
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetVolume sets the volume (0.0 to 1.0).
func (m *Manager) SetVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clamp(vol, 0, 1)
}

// Volume returns the volume.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volume
}

// LoadOverride replaces a cue's tones with WAV data.
func (m *Manager) LoadOverride(cue Cue, data []byte) error {
	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	m.mu.Lock()
	defer m.mu.Unlock()

	buf := beep.NewBuffer(beep.Format{SampleRate: m.sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(resample(format.SampleRate, m.sampleRate, streamer))
	m.overrides[cue] = buf
	return nil
}

// Play queues a cue on the mixer.
func (m *Manager) Play(cue Cue) error {
	m.mu.RLock()
	initialized := m.initialized
	m.mu.RUnlock()
	if !initialized {
		return ErrNotInitialized
	}

	s, err := m.cueStreamer(cue)
	if err != nil {
		return err
	}
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
	return nil
}

// cueStreamer builds the volume-adjusted stream for a cue.
func (m *Manager) cueStreamer(cue Cue) (beep.Streamer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var s beep.Streamer
	if buf, ok := m.overrides[cue]; ok {
		s = buf.Streamer(0, buf.Len())
	} else {
		tones, ok := cueTones[cue]
		if !ok {
			return nil, fmt.Errorf("unknown cue %d", cue)
		}
		seq := make([]beep.Streamer, 0, len(tones))
		for _, t := range tones {
			tone, err := generators.SineTone(m.sampleRate, t.Freq)
			if err != nil {
				return nil, fmt.Errorf("tone %.0fHz: %w", t.Freq, err)
			}
			seq = append(seq, beep.Take(m.sampleRate.N(t.Duration), tone))
		}
		s = beep.Seq(seq...)
	}

	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   volumeToDb(m.volume),
		Silent:   m.volume <= 0,
	}, nil
}

func resample(from, to beep.SampleRate, s beep.Streamer) beep.Streamer {
	if from == to {
		return s
	}
	return beep.Resample(4, from, to, s)
}

// volumeToDb converts a 0-1 volume to the exponent effects.Volume expects
// with base 2: vol=1 -> 0, vol=0.5 -> -1.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	return math.Log2(vol)
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
