package mixer

import (
	"math"
	"testing"
	"time"

	"github.com/rolandbrake/piscript/internal/piscript/value"
)

// These tests exercise the waveform synthesis directly, without touching
// speaker.Init: initializing a real output device isn't available in every
// test environment, but the sample generation it drives is pure logic.

func streamAll(t *testing.T, s *waveformStreamer, bufLen int) []float64 {
	t.Helper()
	var out []float64
	buf := make([][2]float64, bufLen)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			out = append(out, buf[i][0])
		}
		if !ok {
			break
		}
	}
	return out
}

func TestWaveformStreamerStopsAfterDuration(t *testing.T) {
	s := newWaveform(value.WaveSine, 440, 1*time.Millisecond).(*waveformStreamer)
	want := sampleRate.N(1 * time.Millisecond)
	got := streamAll(t, s, 16)
	if len(got) != want {
		t.Errorf("produced %d samples, want %d (%v at %d Hz)", len(got), want, time.Millisecond, sampleRate)
	}
}

func TestSquareWaveformAlternatesSign(t *testing.T) {
	s := &waveformStreamer{kind: value.WaveSquare}
	s.phase = 0.1
	if v := s.sample(); v != 1 {
		t.Errorf("square wave at phase 0.1 = %v, want 1", v)
	}
	s.phase = 0.6
	if v := s.sample(); v != -1 {
		t.Errorf("square wave at phase 0.6 = %v, want -1", v)
	}
}

func TestSawtoothWaveformRampsLinearly(t *testing.T) {
	s := &waveformStreamer{kind: value.WaveSawtooth}
	s.phase = 0
	if v := s.sample(); v != -1 {
		t.Errorf("sawtooth at phase 0 = %v, want -1", v)
	}
	s.phase = 1
	if v := s.sample(); v != 1 {
		t.Errorf("sawtooth at phase 1 = %v, want 1", v)
	}
}

func TestTriangleWaveformTroughsAtHalfPhase(t *testing.T) {
	s := &waveformStreamer{kind: value.WaveTriangle}
	s.phase = 0.5
	if v := s.sample(); v != -1 {
		t.Errorf("triangle at phase 0.5 = %v, want -1 (the trough)", v)
	}
	s.phase = 0
	if v := s.sample(); v != 1 {
		t.Errorf("triangle at phase 0 = %v, want 1 (the peak)", v)
	}
}

func TestSineWaveformMatchesMathSin(t *testing.T) {
	s := &waveformStreamer{kind: value.WaveSine}
	s.phase = 0.25
	want := math.Sin(2 * math.Pi * 0.25)
	if v := s.sample(); math.Abs(v-want) > 1e-9 {
		t.Errorf("sine at phase 0.25 = %v, want %v", v, want)
	}
}

func TestNoiseWaveformStaysInRange(t *testing.T) {
	s := &waveformStreamer{kind: value.WaveNoise, noiseSeed: 42}
	for i := 0; i < 100; i++ {
		v := s.sample()
		if v < -1.5 || v > 1.5 {
			t.Errorf("noise sample %v out of expected range", v)
		}
	}
}
