package mpm

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/mpm-pitch/dsp/core"
	"github.com/cwbudde/mpm-pitch/internal/rfft"
)

// BufferFactory allocates a scratch buffer of the requested length. The
// contents of the returned buffer are unspecified; callers always overwrite
// them before reading. A nil factory is equivalent to plain make().
type BufferFactory[F algofft.Float] func(length int) []F

// AutocorrelatorT computes the MPM autocorrelation r'(tau), for tau in
// [0, N), of windows of a fixed length N. It zero-pads each window into a
// power-of-two FFT size at least 2*N, so that the circular autocorrelation
// the FFT naturally produces coincides with the linear one for every lag in
// range, and recovers it via a real-input FFT collaborator.
//
// An AutocorrelatorT is not safe for concurrent use: Autocorrelate mutates
// scratch buffers the instance owns.
type AutocorrelatorT[F algofft.Float, C algofft.Complex] struct {
	n    int
	nFFT int

	engine *rfft.Engine[F, C]

	padded    []F // length nFFT, time domain, zero-padded input
	transform []F // length 2*nFFT, interleaved complex spectrum
	inverse   []F // length 2*nFFT, interleaved complex time domain

	factory BufferFactory[F]

	// float64 fast-path scratch for squareSpectrum; nil unless F is float64.
	reScratch, imScratch, powScratch []float64
}

// NewAutocorrelatorT constructs an autocorrelator for windows of length n.
// A nil factory defaults to plain make()-backed buffers.
func NewAutocorrelatorT[F algofft.Float, C algofft.Complex](n int, factory BufferFactory[F]) (*AutocorrelatorT[F, C], error) {
	if n < 1 {
		return nil, ErrInvalidLength
	}
	if factory == nil {
		factory = func(length int) []F { return make([]F, length) }
	}

	nFFT := nextPow2(2 * n)
	engine, err := rfft.New[F, C](nFFT)
	if err != nil {
		return nil, fmt.Errorf("mpm: %w", err)
	}

	a := &AutocorrelatorT[F, C]{
		n:         n,
		nFFT:      nFFT,
		engine:    engine,
		padded:    factory(nFFT),
		transform: factory(2 * nFFT),
		inverse:   factory(2 * nFFT),
		factory:   factory,
	}

	if _, ok := any(a.transform).([]float64); ok {
		a.reScratch = make([]float64, nFFT)
		a.imScratch = make([]float64, nFFT)
		a.powScratch = make([]float64, nFFT)
	}

	return a, nil
}

// Autocorrelator is the float64 specialization of AutocorrelatorT.
type Autocorrelator = AutocorrelatorT[float64, complex128]

// Autocorrelator32 is the float32 specialization of AutocorrelatorT.
type Autocorrelator32 = AutocorrelatorT[float32, complex64]

// NewAutocorrelator constructs a float64 Autocorrelator with plain
// make()-backed scratch buffers.
func NewAutocorrelator(n int) (*Autocorrelator, error) {
	return NewAutocorrelatorT[float64, complex128](n, nil)
}

// NewAutocorrelator32 constructs a float32 Autocorrelator32 with plain
// make()-backed scratch buffers.
func NewAutocorrelator32(n int) (*Autocorrelator32, error) {
	return NewAutocorrelatorT[float32, complex64](n, nil)
}

// InputLength reports the configured window length N.
func (a *AutocorrelatorT[F, C]) InputLength() int { return a.n }

// Autocorrelate writes r'(0)..r'(N-1) for input (length N) into output. If
// output is nil, a fresh buffer is allocated via the instance's factory;
// otherwise output must have length N and is returned unchanged (reused,
// not reallocated).
func (a *AutocorrelatorT[F, C]) Autocorrelate(input, output []F) ([]F, error) {
	if len(input) != a.n {
		return nil, &LengthError{Expected: a.n, Got: len(input)}
	}
	if output == nil {
		output = a.factory(a.n)
	} else if len(output) != a.n {
		return nil, &LengthError{Expected: a.n, Got: len(output)}
	}

	copy(a.padded[:a.n], input)
	for i := a.n; i < a.nFFT; i++ {
		a.padded[i] = 0
	}

	if err := a.engine.RealTransform(a.transform, a.padded); err != nil {
		return nil, fmt.Errorf("mpm: %w", err)
	}
	a.engine.CompleteSpectrum(a.transform)

	a.squareSpectrum()

	if err := a.engine.InverseTransform(a.inverse, a.transform); err != nil {
		return nil, fmt.Errorf("mpm: %w", err)
	}

	// The inverse transform of a near-silent window can leave denormal
	// residue in the real lags, which slows down every arithmetic op the
	// NSDF stage performs on them.
	for i := 0; i < a.n; i++ {
		output[i] = F(core.FlushDenormals(float64(a.inverse[2*i])))
	}

	return output, nil
}
