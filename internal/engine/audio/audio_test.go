package audio

import (
	"errors"
	"testing"
)

func TestVolumeConversion(t *testing.T) {
	tests := []struct {
		vol  float64
		want float64
	}{
		{1.0, 0},
		{0.5, -1},
		{0.25, -2},
		{0.0, -100},
	}

	for _, tt := range tests {
		if got := volumeToDb(tt.vol); got != tt.want {
			t.Errorf("volumeToDb(%f) = %f, want %f", tt.vol, got, tt.want)
		}
	}
}

func TestSetVolumeClamps(t *testing.T) {
	m := New()
	if m.Volume() != 1.0 {
		t.Errorf("default volume = %f, want 1.0", m.Volume())
	}

	m.SetVolume(0.5)
	if m.Volume() != 0.5 {
		t.Errorf("volume = %f, want 0.5", m.Volume())
	}
	m.SetVolume(2.0)
	if m.Volume() != 1.0 {
		t.Errorf("volume = %f, want 1.0 (clamped)", m.Volume())
	}
	m.SetVolume(-1.0)
	if m.Volume() != 0.0 {
		t.Errorf("volume = %f, want 0.0 (clamped)", m.Volume())
	}
}

func TestPlayBeforeInit(t *testing.T) {
	if err := New().Play(CueCreated); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Play() error = %v, want ErrNotInitialized", err)
	}
}

func TestCueLength(t *testing.T) {
	m := New()
	for cue, tones := range cueTones {
		s, err := m.cueStreamer(cue)
		if err != nil {
			t.Fatalf("cueStreamer(%d): %v", cue, err)
		}

		want := 0
		for _, tone := range tones {
			want += m.sampleRate.N(tone.Duration)
		}

		total := 0
		buf := make([][2]float64, 512)
		for {
			n, ok := s.Stream(buf)
			total += n
			if !ok {
				break
			}
		}
		if total != want {
			t.Errorf("cue %d streamed %d samples, want %d", cue, total, want)
		}
	}
}

func TestUnknownCue(t *testing.T) {
	if _, err := New().cueStreamer(Cue(99)); err == nil {
		t.Error("expected error for unknown cue")
	}
}

func TestLoadOverrideRejectsGarbage(t *testing.T) {
	if err := New().LoadOverride(CueCreated, []byte("not a wav")); err == nil {
		t.Error("expected decode error")
	}
}
