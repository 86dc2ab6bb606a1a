package mpm

import algofft "github.com/MeKo-Christian/algo-fft"

// keyMaxima scans nsdf (length N) for key maxima: the global maximum of
// each positive lobe bounded by an upward zero crossing (nsdf[tau-1] <= 0,
// nsdf[tau] > 0) and the next downward crossing. The scan covers
// tau in [1, N-2] so every returned index has a left and right neighbour
// for parabolic refinement.
//
// out is reset to length 0 and reused as the append target, so repeated
// calls with the same backing array amortize its allocation.
func keyMaxima[F algofft.Float](nsdf []F, out []int) []int {
	out = out[:0]

	n := len(nsdf)
	looking := false
	var maxVal F
	maxIdx := -1

	for tau := 1; tau <= n-2; tau++ {
		prev := nsdf[tau-1]
		cur := nsdf[tau]

		switch {
		case prev <= 0 && cur > 0:
			looking = true
			maxIdx = tau
			maxVal = cur
		case looking && prev > 0 && cur <= 0:
			looking = false
			out = append(out, maxIdx)
			maxIdx = -1
		case looking && cur > maxVal:
			maxVal = cur
			maxIdx = tau
		}
	}

	return out
}
