package mpm

import algofft "github.com/MeKo-Christian/algo-fft"

// computeNSDF runs ac over input and overwrites nsdf in place (length N)
// with the normalised squared difference function:
//
//	n'(tau) = 2*r'(tau) / m'(tau)
//	m'(tau) = sum_{i=0}^{N-1-tau} (x[i]^2 + x[i+tau]^2)
//
// m'(tau) is maintained incrementally starting from m'(0) = 2*r'(0), by
// subtracting the pair of samples that leaves the overlap window at each
// step, avoiding an O(N) recomputation per lag. Once m'(tau) is no longer
// positive, every remaining n'(tau) is defined as zero.
func computeNSDF[F algofft.Float, C algofft.Complex](ac *AutocorrelatorT[F, C], input, nsdf []F) error {
	if _, err := ac.Autocorrelate(input, nsdf); err != nil {
		return err
	}

	n := len(input)
	m := 2 * float64(nsdf[0])

	for tau := 0; tau < n; tau++ {
		if m <= 0 {
			nsdf[tau] = 0
			continue
		}

		nsdf[tau] = F(2 * float64(nsdf[tau]) / m)

		xi := float64(input[tau])
		xj := float64(input[n-1-tau])
		m -= xi*xi + xj*xj
	}

	return nil
}
