// Package hum synthesises the engine drone that follows flight speed.
package hum

import (
	"math"
	"sync"
)

const (
	// SampleRate is the PCM rate produced by Stream.
	SampleRate = 48000

	baseFreq  = 55.0
	freqRange = 165.0
	volume    = 0.25
	// Per-frame smoothing toward the target pitch.
	glide = 0.0005
	// AC coupling coefficient.
	dcAlpha = 0.001
)

// Stream is an io.Reader of signed 16-bit little-endian stereo PCM.
type Stream struct {
	mu         sync.Mutex
	sampleRate float64
	target     float64
	freq       float64
	phase      float64
	dc         float64

	loop    []float32
	loopPos float64
}

// NewStream returns an idle drone at the given sample rate.
func NewStream(sampleRate int) *Stream {
	if sampleRate <= 0 {
		sampleRate = SampleRate
	}
	return &Stream{
		sampleRate: float64(sampleRate),
		target:     baseFreq,
		freq:       baseFreq,
	}
}

// SetSpeed sets the normalised flight speed; 0 idles and 1 is full throttle.
// Values outside [0, 1] are clamped.
func (s *Stream) SetSpeed(v float64) {
	if math.IsNaN(v) || v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	s.mu.Lock()
	s.target = baseFreq + v*freqRange
	s.mu.Unlock()
}

// SetLoop mixes a mono sample loop under the drone, played back faster as
// the pitch rises. A nil loop removes it.
func (s *Stream) SetLoop(samples []float32) {
	s.mu.Lock()
	s.loop = samples
	s.loopPos = 0
	s.mu.Unlock()
}

// Frequency reports the current oscillator pitch in hertz.
func (s *Stream) Frequency() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.freq
}

func (s *Stream) Read(p []byte) (int, error) {
	// Whole stereo frames only.
	n := len(p) - len(p)%4
	if n == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i += 4 {
		v := int16(s.next() * 32767)
		p[i] = byte(v)
		p[i+1] = byte(v >> 8)
		p[i+2] = p[i]
		p[i+3] = p[i+1]
	}
	return n, nil
}

func (s *Stream) next() float64 {
	s.freq += glide * (s.target - s.freq)
	s.phase += s.freq / s.sampleRate
	s.phase -= math.Floor(s.phase)

	saw := 2*s.phase - 1
	sine := math.Sin(2 * math.Pi * s.phase)
	v := volume * (0.6*sine + 0.4*saw)

	if len(s.loop) > 0 {
		v += 0.5 * float64(s.loop[int(s.loopPos)])
		s.loopPos += s.freq / baseFreq
		for s.loopPos >= float64(len(s.loop)) {
			s.loopPos -= float64(len(s.loop))
		}
	}

	s.dc += dcAlpha * (v - s.dc)
	v -= s.dc
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return v
}

func (s *Stream) Close() error {
	return nil
}
