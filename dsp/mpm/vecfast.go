package mpm

import (
	algofft "github.com/MeKo-Christian/algo-fft"
	algovecmath "github.com/cwbudde/algo-vecmath"
)

// squareSpectrum replaces each of the nFFT complex bins in a.transform
// (interleaved, length 2*nFFT) with (re^2+im^2, 0) in place: step 4 of the
// autocorrelation algorithm, "square the magnitude of every bin". For the
// float64 instantiation this deinterleaves into the instance's owned
// float64 scratch and calls into algo-vecmath's Power to turn the FFT bins
// into a power spectrum; other instantiations fall back to a manual loop.
func (a *AutocorrelatorT[F, C]) squareSpectrum() {
	if buf64, ok := any(a.transform).([]float64); ok {
		for i := 0; i < a.nFFT; i++ {
			a.reScratch[i] = buf64[2*i]
			a.imScratch[i] = buf64[2*i+1]
		}
		algovecmath.Power(a.powScratch, a.reScratch, a.imScratch)
		for i := 0; i < a.nFFT; i++ {
			buf64[2*i] = a.powScratch[i]
			buf64[2*i+1] = 0
		}
		return
	}

	for i := 0; i < a.nFFT; i++ {
		re := a.transform[2*i]
		im := a.transform[2*i+1]
		a.transform[2*i] = re*re + im*im
		a.transform[2*i+1] = 0
	}
}

// sumSquares returns sum(x[i]^2) in float64 precision regardless of F, used
// by the RMS volume gate. The float64 instantiation is handed directly to
// algo-vecmath's DotProduct(x, x); other instantiations fall back to a
// manual loop.
func sumSquares[F algofft.Float](x []F) float64 {
	if x64, ok := any(x).([]float64); ok {
		return algovecmath.DotProduct(x64, x64)
	}

	var sum float64
	for _, v := range x {
		fv := float64(v)
		sum += fv * fv
	}
	return sum
}
