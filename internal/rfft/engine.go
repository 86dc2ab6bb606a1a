// Package rfft adapts the complex-to-complex FFT plan the rest of the
// module's dependency graph is built on (github.com/MeKo-Christian/algo-fft) to the
// real-input transform contract the autocorrelator needs: a forward real
// transform, Hermitian spectrum completion, and an inverse complex
// transform, all expressed over interleaved real/imaginary buffers.
//
// algo-fft exposes only a general complex plan (Plan.Forward/Inverse on
// complex slices); there is no dedicated real-input primitive in the
// dependency graph this module draws on. Engine synthesizes one: the
// forward transform zero-extends the real input into the complex domain,
// runs the full complex FFT, and reports only the canonical lower half of
// the spectrum (bins 0..size/2) as the "half-spectrum" the autocorrelator's
// algorithm expects; CompleteSpectrum mirrors the upper half back in via
// conjugate symmetry before the inverse transform.
package rfft

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Engine is a real-input FFT collaborator for a fixed power-of-two size.
type Engine[F algofft.Float, C algofft.Complex] struct {
	size int
	plan *algofft.Plan[C]
	time []C
	freq []C
}

// New constructs an Engine for the given power-of-two size (size >= 2).
func New[F algofft.Float, C algofft.Complex](size int) (*Engine[F, C], error) {
	if size < 2 || size&(size-1) != 0 {
		return nil, fmt.Errorf("rfft: size must be a power of two >= 2, got %d", size)
	}

	plan, err := algofft.NewPlanT[C](size)
	if err != nil {
		return nil, fmt.Errorf("rfft: create plan: %w", err)
	}

	return &Engine[F, C]{
		size: size,
		plan: plan,
		time: make([]C, size),
		freq: make([]C, size),
	}, nil
}

// Size reports the configured transform size.
func (e *Engine[F, C]) Size() int { return e.size }

// RealTransform computes the forward transform of the real-valued input in
// and writes the lower half of the interleaved complex spectrum (bins
// 0..size/2 inclusive, i.e. out[0:size+2]) into out, which must have length
// 2*size. The upper half of out is left untouched; call CompleteSpectrum
// before reading it.
func (e *Engine[F, C]) RealTransform(out, in []F) error {
	for i := 0; i < e.size; i++ {
		e.time[i] = C(complex(float64(in[i]), 0))
	}

	if err := e.plan.Forward(e.freq, e.time); err != nil {
		return fmt.Errorf("rfft: forward transform: %w", err)
	}

	half := e.size / 2
	for i := 0; i <= half; i++ {
		c := complex128(e.freq[i])
		out[2*i] = F(real(c))
		out[2*i+1] = F(imag(c))
	}

	return nil
}

// CompleteSpectrum fills in the conjugate-symmetric upper half of buf
// (length 2*size), given that bins 0..size/2 already hold the canonical
// half-spectrum produced by RealTransform.
func (e *Engine[F, C]) CompleteSpectrum(buf []F) {
	half := e.size / 2
	for i := 1; i < half; i++ {
		mirror := e.size - i
		buf[2*mirror] = buf[2*i]
		buf[2*mirror+1] = -buf[2*i+1]
	}
}

// InverseTransform computes the inverse transform of the full interleaved
// complex spectrum in (length 2*size) and writes the interleaved complex
// time-domain result into out (length 2*size), including the underlying
// plan's 1/size normalisation.
func (e *Engine[F, C]) InverseTransform(out, in []F) error {
	for i := 0; i < e.size; i++ {
		e.freq[i] = C(complex(float64(in[2*i]), float64(in[2*i+1])))
	}

	if err := e.plan.Inverse(e.time, e.freq); err != nil {
		return fmt.Errorf("rfft: inverse transform: %w", err)
	}

	for i := 0; i < e.size; i++ {
		c := complex128(e.time[i])
		out[2*i] = F(real(c))
		out[2*i+1] = F(imag(c))
	}

	return nil
}
