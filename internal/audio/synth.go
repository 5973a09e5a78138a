// Package audio synthesizes the wormhole drone: a detuned pad whose
// pitch spread follows time dilation and whose noise floor follows the
// glitch intensity.
package audio

import (
	"math"
	"math/rand"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

// Synth is an output-only portaudio stream. The engine thread feeds it
// through UpdateState; the audio callback only reads under the mutex.
type Synth struct {
	Stream *portaudio.Stream
	Active bool

	time        float64
	phases      [3]float64
	filterState [2]float64
	delayLine   [2][]float64
	delayHead   int
	rng         *rand.Rand

	mu       sync.Mutex
	glitch   float64
	dilation float64

	// Smoothed copies used inside the callback.
	glitchSmooth   float64
	dilationSmooth float64
}

func NewSynth() *Synth {
	delayLen := int(float64(SampleRate) * 0.45)
	return &Synth{
		delayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
		rng:       rand.New(rand.NewSource(1)),
		dilation:  1,
	}
}

func (s *Synth) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, s.process)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}
	s.Stream = stream
	s.Active = true
	return nil
}

func (s *Synth) Stop() {
	if s.Stream != nil {
		s.Stream.Stop()
		s.Stream.Close()
	}
	portaudio.Terminate()
	s.Active = false
}

// SetGlitchIntensity implements engine.EffectSink: the glitch scalar
// becomes the noise floor of the drone.
func (s *Synth) SetGlitchIntensity(v float64) {
	s.mu.Lock()
	s.glitch = v
	s.mu.Unlock()
}

// UpdateDilation widens the pad detune as time dilation grows.
func (s *Synth) UpdateDilation(d float64) {
	s.mu.Lock()
	s.dilation = d
	s.mu.Unlock()
}

// Triangle wave: smooth, no harsh buzz.
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// One pole low pass.
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

func (s *Synth) process(out [][]float32) {
	s.mu.Lock()
	glitch, dilation := s.glitch, s.dilation
	s.mu.Unlock()

	dt := 1.0 / SampleRate
	for i := range out[0] {
		// Slow-morph the control inputs so frame-rate steps never
		// click.
		s.glitchSmooth += (glitch - s.glitchSmooth) * 0.0005
		s.dilationSmooth += (dilation - s.dilationSmooth) * 0.0002

		// Three detuned voices around a low A; dilation spreads them.
		base := 55.0
		spread := 0.003 * s.dilationSmooth
		freqs := [3]float64{base, base * (1 + spread), base * 1.5 * (1 - spread)}

		sample := 0.0
		for v := range s.phases {
			s.phases[v] += freqs[v] * dt
			sample += triangle(s.phases[v]) * 0.22
		}

		// Glitch becomes wideband noise riding the pad.
		sample += (s.rng.Float64()*2 - 1) * 0.25 * s.glitchSmooth

		cutoff := 400 + 900*s.glitchSmooth
		var l, r float64
		l, s.filterState[0] = lpf(sample, cutoff, dt, s.filterState[0])
		r, s.filterState[1] = lpf(sample, cutoff*1.02, dt, s.filterState[1])

		// Feedback delay for a wash of space.
		dl := s.delayLine[0][s.delayHead]
		dr := s.delayLine[1][s.delayHead]
		s.delayLine[0][s.delayHead] = l + dr*0.35
		s.delayLine[1][s.delayHead] = r + dl*0.35
		s.delayHead = (s.delayHead + 1) % len(s.delayLine[0])

		out[0][i] = float32((l + dl*0.4) * 0.5)
		out[1][i] = float32((r + dr*0.4) * 0.5)
		s.time += dt
	}
}
