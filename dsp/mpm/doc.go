// Package mpm implements real-time monophonic pitch detection using the
// McLeod Pitch Method (MPM): FFT-based autocorrelation, the normalised
// squared difference function (NSDF), key-maximum selection, and parabolic
// sub-sample refinement of the chosen lag.
//
// # Usage
//
// Construct a detector once for a fixed window length and reuse it across
// many windows; all scratch buffers are owned by the instance and reused
// between calls:
//
//	det, err := mpm.NewPitchDetector(2048)
//	result, err := det.FindPitch(window, 48000)
//	if result.Clarity > 0 {
//		fmt.Printf("%.2f Hz (clarity %.3f)\n", result.Pitch, result.Clarity)
//	}
//
// # Autocorrelation only
//
// [Autocorrelator] exposes the lower-level FFT-based autocorrelation
// primitive directly, for callers that want r'(tau) without the rest of
// the MPM pipeline:
//
//	ac, err := mpm.NewAutocorrelator(4)
//	out, err := ac.Autocorrelate([]float64{1, 2, 3, 4}, nil)
//
// # Element type
//
// Both [Autocorrelator]/[AutocorrelatorT] and [PitchDetector]/[PitchDetectorT]
// are generic over the sample element type. The float64/complex128 and
// float32/complex64 specializations are provided as type aliases with
// dedicated constructors; other instantiations are reached through the
// generic constructors and an explicit buffer factory.
package mpm
