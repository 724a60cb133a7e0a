// Package mixer implements the beep-backed Mixer capability: a bounded
// queue of tone requests consumed by a dedicated audio thread, grounded on
// chippy's ManageAudio (a goroutine reading off a channel and handing
// streamers to the speaker package) but generalized from a single fixed
// beep.mp3 sample to synthesized waveforms per §3.6's note format.
package mixer

import (
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/rolandbrake/piscript/internal/piscript/value"
)

const sampleRate = beep.SampleRate(44100)

// queueDepth is the bounded FIFO capacity; a full queue drops the newest
// request with a warning, per §5's resource model.
const queueDepth = 32

type toneRequest struct {
	frequency float64
	duration  time.Duration
	waveform  value.Waveform
}

// Mixer is a polyphonic tone player: each queued tone becomes its own
// beep.Streamer additively mixed into the speaker by a background thread.
type Mixer struct {
	mu       sync.Mutex
	queue    chan toneRequest
	playing  int
	dropWarn func(string)
	done     chan struct{}
}

// New initializes the speaker at sampleRate and starts the mixer's
// background consumer goroutine. dropWarn, if non-nil, is called with a
// message when a full queue drops a request; it defaults to a no-op.
func New(dropWarn func(string)) (*Mixer, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return nil, err
	}
	if dropWarn == nil {
		dropWarn = func(string) {}
	}
	m := &Mixer{
		queue:    make(chan toneRequest, queueDepth),
		dropWarn: dropWarn,
		done:     make(chan struct{}),
	}
	go m.run()
	return m, nil
}

// Play enqueues a tone; waveforms follow §3.6's note encoding
// (0=sine,1=square,2=triangle,3=sawtooth,4=noise). A full queue drops the
// newest request.
func (m *Mixer) Play(frequency float64, durationMs int, waveform int) {
	req := toneRequest{
		frequency: frequency,
		duration:  time.Duration(durationMs) * time.Millisecond,
		waveform:  value.Waveform(waveform),
	}
	select {
	case m.queue <- req:
	default:
		m.dropWarn("mixer: queue full, dropping tone request")
	}
}

// IsPlaying reports whether any tone is currently sounding.
func (m *Mixer) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing > 0
}

// StopAll drops every pending request from the queue and removes every
// streamer from the speaker, cutting off tones mid-play; only audio the
// speaker has already buffered still plays out.
func (m *Mixer) StopAll() {
	speaker.Clear()
	for {
		select {
		case <-m.queue:
		default:
			m.mu.Lock()
			m.playing = 0
			m.mu.Unlock()
			return
		}
	}
}

// Close stops the background consumer goroutine.
func (m *Mixer) Close() { close(m.done) }

func (m *Mixer) run() {
	for {
		select {
		case req := <-m.queue:
			m.play(req)
		case <-m.done:
			return
		}
	}
}

func (m *Mixer) play(req toneRequest) {
	streamer := newWaveform(req.waveform, req.frequency, req.duration)
	m.mu.Lock()
	m.playing++
	m.mu.Unlock()
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		m.mu.Lock()
		m.playing--
		m.mu.Unlock()
	})))
}

// waveformStreamer synthesizes one of the five §3.6 waveforms, computing
// each sample directly from the current phase, the "synthesized
// waveforms" domain-stack use of beep's Streamer interface in place of chippy's single decoded mp3 sample.
type waveformStreamer struct {
	kind      value.Waveform
	freq      float64
	remaining int
	phase     float64
	noiseSeed uint32
}

func newWaveform(kind value.Waveform, freq float64, dur time.Duration) beep.Streamer {
	return &waveformStreamer{
		kind:      kind,
		freq:      freq,
		remaining: sampleRate.N(dur),
		noiseSeed: 0x1234567 ^ uint32(freq*1000),
	}
}

func (w *waveformStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if w.remaining <= 0 {
		return 0, false
	}
	step := w.freq / float64(sampleRate)
	for i := range samples {
		if w.remaining <= 0 {
			return i, i > 0
		}
		v := w.sample()
		samples[i][0], samples[i][1] = v, v
		w.phase += step
		if w.phase >= 1 {
			w.phase -= 1
		}
		w.remaining--
	}
	return len(samples), true
}

func (w *waveformStreamer) sample() float64 {
	switch w.kind {
	case value.WaveSquare:
		if w.phase < 0.5 {
			return 1
		}
		return -1
	case value.WaveTriangle:
		return 4*math.Abs(w.phase-0.5) - 1
	case value.WaveSawtooth:
		return 2*w.phase - 1
	case value.WaveNoise:
		w.noiseSeed = w.noiseSeed*1664525 + 1013904223
		return float64(int32(w.noiseSeed))/float64(1<<31)
	default: // WaveSine
		return math.Sin(2 * math.Pi * w.phase)
	}
}

func (w *waveformStreamer) Err() error { return nil }
