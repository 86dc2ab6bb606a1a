package conv

// Correlate computes the full cross-correlation of a and b.
// The result has length len(a) + len(b) - 1.
// Output index k corresponds to lag k - (len(b) - 1).
//
// Cross-correlation is related to convolution: corr(a,b) = conv(a, reverse(b))
// For real signals, this is equivalent to sliding b over a and computing the dot product.
func Correlate(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}

	// Cross-correlation is convolution with time-reversed second signal
	bReversed := make([]float64, len(b))
	for i := range b {
		bReversed[i] = b[len(b)-1-i]
	}

	return Direct(a, bReversed)
}

// AutoCorrelate computes the auto-correlation of signal a.
// The result has length 2*len(a) - 1.
// Output index k corresponds to lag k - (len(a) - 1).
func AutoCorrelate(a []float64) ([]float64, error) {
	return Correlate(a, a)
}
