package tui

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Sound plays sine-tone cues through the system speaker.
type Sound struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	inited bool
}

// NewSound initialises the speaker. Callers fall back to silence on error,
// e.g. on machines without an audio device.
func NewSound() (*Sound, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	s := &Sound{mixer: &beep.Mixer{}, inited: true}
	speaker.Play(s.mixer)
	return s, nil
}

// Close silences pending cues and releases the speaker.
func (s *Sound) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inited {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.inited = false
}

func (s *Sound) Hit()  { s.play(tone(660, 80*time.Millisecond), tone(880, 80*time.Millisecond)) }
func (s *Sound) Miss() { s.play(tone(180, 180*time.Millisecond)) }
func (s *Sound) Win() {
	s.play(tone(523, 120*time.Millisecond), tone(659, 120*time.Millisecond), tone(784, 240*time.Millisecond))
}
func (s *Sound) Lose() {
	s.play(tone(392, 200*time.Millisecond), tone(294, 200*time.Millisecond), tone(196, 400*time.Millisecond))
}

func (s *Sound) play(parts ...beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inited {
		return
	}
	speaker.Lock()
	s.mixer.Add(beep.Seq(parts...))
	speaker.Unlock()
}

// sine is a fixed-length sine oscillator with a short linear fade at both
// ends to avoid clicks.
type sine struct {
	freq  float64
	phase float64
	pos   int
	n     int
	fade  int
}

func tone(freq float64, d time.Duration) beep.Streamer {
	n := sampleRate.N(d)
	return &sine{freq: freq, n: n, fade: min(n/4, sampleRate.N(5*time.Millisecond))}
}

func (o *sine) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if o.pos >= o.n {
			return i, i > 0
		}
		v := 0.2 * math.Sin(2*math.Pi*o.phase) * o.envelope()
		samples[i][0] = v
		samples[i][1] = v
		o.phase += o.freq / float64(sampleRate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *sine) envelope() float64 {
	switch {
	case o.fade == 0:
		return 1
	case o.pos < o.fade:
		return float64(o.pos) / float64(o.fade)
	case o.n-o.pos < o.fade:
		return float64(o.n-o.pos) / float64(o.fade)
	}
	return 1
}

func (o *sine) Err() error { return nil }
