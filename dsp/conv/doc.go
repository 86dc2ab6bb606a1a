// Package conv provides direct time-domain convolution and correlation.
//
// mpm-pitch uses this package for one thing: a second, independently
// implemented correlation routine to cross-check the FFT-based
// autocorrelator in dsp/mpm against.
//
//	full, err := conv.AutoCorrelate(signal) // length 2*len(signal)-1, lag 0 at the center
package conv
