package hum

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestReadWholeFrames(t *testing.T) {
	s := NewStream(SampleRate)
	buf := make([]byte, 4*100+3)
	n, err := s.Read(buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != 400 {
		t.Fatalf("Read = %d bytes, want 400", n)
	}
	if n, _ := s.Read(buf[:3]); n != 0 {
		t.Errorf("Read of partial frame = %d, want 0", n)
	}
}

func TestChannelsMatch(t *testing.T) {
	s := NewStream(SampleRate)
	s.SetSpeed(0.7)
	buf := make([]byte, 4*512)
	s.Read(buf)
	nonZero := false
	for i := 0; i < len(buf); i += 4 {
		l := binary.LittleEndian.Uint16(buf[i:])
		r := binary.LittleEndian.Uint16(buf[i+2:])
		if l != r {
			t.Fatalf("frame %d: left %d != right %d", i/4, l, r)
		}
		if l != 0 {
			nonZero = true
		}
	}
	if !nonZero {
		t.Error("stream produced silence")
	}
}

func TestSpeedRaisesPitch(t *testing.T) {
	s := NewStream(SampleRate)
	idle := s.Frequency()
	s.SetSpeed(1)
	buf := make([]byte, 4*SampleRate/10)
	for i := 0; i < 10; i++ {
		s.Read(buf)
	}
	got := s.Frequency()
	if got <= idle {
		t.Fatalf("frequency %v did not rise above idle %v", got, idle)
	}
	if want := baseFreq + freqRange; math.Abs(got-want) > 1 {
		t.Errorf("frequency after one second = %v, want about %v", got, want)
	}
}

func TestSetSpeedClamps(t *testing.T) {
	for _, v := range []float64{-3, math.NaN(), 0} {
		s := NewStream(SampleRate)
		s.SetSpeed(v)
		if s.target != baseFreq {
			t.Errorf("SetSpeed(%v) target = %v, want %v", v, s.target, baseFreq)
		}
	}
	s := NewStream(SampleRate)
	s.SetSpeed(9)
	if s.target != baseFreq+freqRange {
		t.Errorf("SetSpeed(9) target = %v", s.target)
	}
}

func TestLoopWraps(t *testing.T) {
	s := NewStream(SampleRate)
	s.SetLoop([]float32{1, -1, 0.5})
	buf := make([]byte, 4*1000)
	if _, err := s.Read(buf); err != nil {
		t.Fatal(err)
	}
	if s.loopPos < 0 || s.loopPos >= 3 {
		t.Errorf("loop position %v escaped the loop", s.loopPos)
	}
	s.SetLoop(nil)
	if _, err := s.Read(buf); err != nil {
		t.Fatal(err)
	}
}
