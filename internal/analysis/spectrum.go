package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// ErrNoPeriod is returned when a series has no oscillating component.
var ErrNoPeriod = errors.New("analysis: no dominant period")

// PowerSpectrum returns |X_k|^2 of the mean-removed series for k in
// [0, n/2].
func PowerSpectrum(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	centred := make([]float64, len(values))
	for i, v := range values {
		centred[i] = v - mean
	}

	coeffs := fft.FFTReal(centred)
	power := make([]float64, len(values)/2+1)
	for k := range power {
		a := cmplx.Abs(coeffs[k])
		power[k] = a * a
	}
	return power
}

// DominantPeriod returns the period of the strongest frequency in a series
// sampled every dt. Resolution is limited to n*dt/k for integer k.
func DominantPeriod(values []float64, dt float64) (float64, error) {
	if len(values) < 4 || !(dt > 0) {
		return 0, fmt.Errorf("%w: %d samples, dt=%v", ErrInvalidParams, len(values), dt)
	}

	power := PowerSpectrum(values)
	best, peak := 0, 0.0
	for k := 1; k < len(power); k++ {
		if power[k] > peak {
			best, peak = k, power[k]
		}
	}
	if best == 0 || peak < 1e-12*float64(len(values)) || math.IsNaN(peak) {
		return 0, ErrNoPeriod
	}
	return float64(len(values)) * dt / float64(best), nil
}
