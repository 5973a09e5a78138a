// Package analysis inspects recorded runs in the frequency domain,
// mainly to verify that the throat wobble and glitch pulses land at
// the rates the flight profile intends.
package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// ErrTooShort is returned when a signal has too few samples to
// analyze.
var ErrTooShort = errors.New("analysis: signal too short")

// PowerSpectrum returns the one-sided power spectrum of samples. Bin k
// corresponds to frequency k*sampleRate/len(samples).
func PowerSpectrum(samples []float64) ([]float64, error) {
	if len(samples) < 4 {
		return nil, ErrTooShort
	}
	// Remove the DC offset so bin 0 does not drown the signal.
	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(len(samples))
	centered := make([]float64, len(samples))
	for i, v := range samples {
		centered[i] = v - mean
	}

	spec := fft.FFTReal(centered)
	n := len(samples)
	half := n / 2
	power := make([]float64, half)
	for k := 0; k < half; k++ {
		m := cmplx.Abs(spec[k])
		power[k] = m * m / float64(n)
	}
	return power, nil
}

// Peak holds the strongest spectral component.
type Peak struct {
	Frequency float64 // Hz
	Power     float64
}

// DominantFrequency finds the strongest non-DC component of a signal
// sampled at sampleRate Hz.
func DominantFrequency(samples []float64, sampleRate float64) (Peak, error) {
	power, err := PowerSpectrum(samples)
	if err != nil {
		return Peak{}, err
	}
	best := 1
	for k := 2; k < len(power); k++ {
		if power[k] > power[best] {
			best = k
		}
	}
	return Peak{
		Frequency: float64(best) * sampleRate / float64(len(samples)),
		Power:     power[best],
	}, nil
}

// MeanFrameRate estimates the effective frame rate of a run from its
// per-frame deltas, ignoring the zero-delta startup frame.
func MeanFrameRate(deltas []float64) float64 {
	sum, n := 0.0, 0
	for _, d := range deltas {
		if d <= 0 {
			continue
		}
		sum += d
		n++
	}
	if n == 0 || sum == 0 {
		return 0
	}
	return float64(n) / sum
}

// RMS returns the root mean square of a signal, a rough loudness
// measure for the glitch track.
func RMS(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range samples {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(samples)))
}
