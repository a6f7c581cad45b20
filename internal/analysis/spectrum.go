package analysis

import (
	"errors"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// minSamples is the shortest series worth transforming.
const minSamples = 16

var ErrSeriesTooShort = errors.New("analysis: series too short for a spectrum")

// Spectrum is the one-sided power spectrum of a uniformly sampled series.
type Spectrum struct {
	Freqs []float64 // Hz
	Power []float64
}

// PowerSpectrum computes the Hann-windowed power spectrum of a series
// sampled every dt seconds. The mean is removed first so the DC bin does
// not swamp the drive peak.
func PowerSpectrum(series []float64, dt float64) (*Spectrum, error) {
	n := len(series)
	if n < minSamples || dt <= 0 {
		return nil, ErrSeriesTooShort
	}

	var mean float64
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)

	data := make([]float64, n)
	for i, v := range series {
		data[i] = v - mean
	}
	window.Apply(data, window.Hann)

	bins := fft.FFTReal(data)
	half := n / 2
	sp := &Spectrum{
		Freqs: make([]float64, half),
		Power: make([]float64, half),
	}
	for i := 0; i < half; i++ {
		sp.Freqs[i] = float64(i) / (dt * float64(n))
		sp.Power[i] = cmplx.Abs(bins[i])
	}
	return sp, nil
}

// Dominant returns the frequency and power of the strongest non-DC bin.
func (s *Spectrum) Dominant() (freq, power float64) {
	for i := 1; i < len(s.Power); i++ {
		if s.Power[i] > power {
			power = s.Power[i]
			freq = s.Freqs[i]
		}
	}
	return freq, power
}
