package mpm

import algofft "github.com/MeKo-Christian/algo-fft"

// parabolicPeak fits a parabola through (k-1, data[k-1]), (k, data[k]),
// (k+1, data[k+1]) and returns its vertex: a sub-sample position x and the
// interpolated value y at that position. k must satisfy 1 <= k <= len(data)-2.
//
// Divisions are plain floating-point divisions; no guard against a
// degenerate (collinear) triple is applied at this layer.
func parabolicPeak[F algofft.Float](data []F, k int) (x, y F) {
	x0, x1, x2 := float64(k-1), float64(k), float64(k+1)
	y0, y1, y2 := float64(data[k-1]), float64(data[k]), float64(data[k+1])

	a := y0/2 - y1 + y2/2
	b := -(y0/2)*(x1+x2) + y1*(x0+x2) - (y2/2)*(x0+x1)
	c := (y0*x1*x2)/2 - y1*x0*x2 + (y2*x0*x1)/2

	xs := -b / (2 * a)
	ys := a*xs*xs + b*xs + c

	return F(xs), F(ys)
}
