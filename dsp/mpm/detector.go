package mpm

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/mpm-pitch/dsp/core"
)

// Result is the outcome of one FindPitch call: a frequency estimate in Hz
// together with a clarity score in [0, 1]. A zero-value Result (Pitch == 0,
// Clarity == 0) denotes "no pitch detected" — either the window failed the
// volume gate or the NSDF had no key maximum.
type Result[F algofft.Float] struct {
	Pitch   F
	Clarity F
}

// Default configuration values, matching the McLeod Pitch Method reference
// behaviour: pick the first key maximum within 90% of the global maximum,
// and do not gate on volume unless the caller opts in.
const (
	defaultClarityThreshold  = 0.9
	defaultMaxInputAmplitude = 1.0
	defaultMinVolumeAbsolute = 0.0
)

// PitchDetectorT implements the McLeod Pitch Method over fixed-length
// windows of N samples: FFT-based autocorrelation, the normalised squared
// difference function, key-maximum selection, and parabolic sub-sample
// refinement of the chosen lag.
//
// A PitchDetectorT is not safe for concurrent use: FindPitch mutates
// scratch buffers the instance owns.
type PitchDetectorT[F algofft.Float, C algofft.Complex] struct {
	n  int
	ac *AutocorrelatorT[F, C]

	nsdf      []F
	keyMaxBuf []int

	clarityThreshold  float64
	maxInputAmplitude float64
	minVolumeAbsolute float64
}

// NewPitchDetectorT constructs a detector for windows of length n. A nil
// factory defaults to plain make()-backed buffers.
func NewPitchDetectorT[F algofft.Float, C algofft.Complex](n int, factory BufferFactory[F]) (*PitchDetectorT[F, C], error) {
	ac, err := NewAutocorrelatorT[F, C](n, factory)
	if err != nil {
		return nil, err
	}
	if factory == nil {
		factory = func(length int) []F { return make([]F, length) }
	}

	return &PitchDetectorT[F, C]{
		n:                 n,
		ac:                ac,
		nsdf:              factory(n),
		keyMaxBuf:         make([]int, 0, n/2+1),
		clarityThreshold:  defaultClarityThreshold,
		maxInputAmplitude: defaultMaxInputAmplitude,
		minVolumeAbsolute: defaultMinVolumeAbsolute,
	}, nil
}

// PitchDetector is the float64 specialization of PitchDetectorT.
type PitchDetector = PitchDetectorT[float64, complex128]

// PitchDetector32 is the float32 specialization of PitchDetectorT.
type PitchDetector32 = PitchDetectorT[float32, complex64]

// NewPitchDetector constructs a float64 PitchDetector with plain
// make()-backed scratch buffers.
func NewPitchDetector(n int) (*PitchDetector, error) {
	return NewPitchDetectorT[float64, complex128](n, nil)
}

// NewPitchDetector32 constructs a float32 PitchDetector32 with plain
// make()-backed scratch buffers.
func NewPitchDetector32(n int) (*PitchDetector32, error) {
	return NewPitchDetectorT[float32, complex64](n, nil)
}

// InputLength reports the configured window length N.
func (d *PitchDetectorT[F, C]) InputLength() int { return d.n }

// ClarityThreshold reports the current key-maximum selection threshold k,
// used as k * (global NSDF maximum).
func (d *PitchDetectorT[F, C]) ClarityThreshold() float64 { return d.clarityThreshold }

// SetClarityThreshold sets k, which must be finite and in (0, 1].
func (d *PitchDetectorT[F, C]) SetClarityThreshold(k float64) error {
	if math.IsNaN(k) || math.IsInf(k, 0) || k <= 0 || k > 1 {
		return &ConfigError{Parameter: "clarity_threshold", Reason: fmt.Sprintf("must be finite and in (0, 1], got %v", k)}
	}
	d.clarityThreshold = k
	return nil
}

// MaxInputAmplitude reports the configured full-scale input amplitude, used
// as the reference level for SetMinVolumeDecibels.
func (d *PitchDetectorT[F, C]) MaxInputAmplitude() float64 { return d.maxInputAmplitude }

// SetMaxInputAmplitude sets the full-scale input amplitude, which must be
// finite and positive.
func (d *PitchDetectorT[F, C]) SetMaxInputAmplitude(amplitude float64) error {
	if math.IsNaN(amplitude) || math.IsInf(amplitude, 0) || amplitude <= 0 {
		return &ConfigError{Parameter: "max_input_amplitude", Reason: fmt.Sprintf("must be finite and > 0, got %v", amplitude)}
	}
	d.maxInputAmplitude = amplitude
	return nil
}

// MinVolumeAbsolute reports the current RMS volume gate, in the same units
// as the input samples.
func (d *PitchDetectorT[F, C]) MinVolumeAbsolute() float64 { return d.minVolumeAbsolute }

// SetMinVolumeAbsolute sets the RMS volume gate directly. A window whose
// RMS falls below this threshold is reported as "no pitch detected" without
// running the NSDF pipeline. v must be finite and in [0, MaxInputAmplitude()].
func (d *PitchDetectorT[F, C]) SetMinVolumeAbsolute(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > d.maxInputAmplitude {
		return &ConfigError{Parameter: "min_volume_absolute", Reason: fmt.Sprintf("must be finite and in [0, %v], got %v", d.maxInputAmplitude, v)}
	}
	d.minVolumeAbsolute = v
	return nil
}

// SetMinVolumeDecibels sets the RMS volume gate relative to
// MaxInputAmplitude(), in decibels of power (db <= 0 attenuates). Equivalent
// to SetMinVolumeAbsolute(MaxInputAmplitude() * 10^(db/10)).
func (d *PitchDetectorT[F, C]) SetMinVolumeDecibels(db float64) error {
	if math.IsNaN(db) || math.IsInf(db, 0) || db > 0 {
		return &ConfigError{Parameter: "min_volume_decibels", Reason: fmt.Sprintf("must be finite and <= 0, got %v", db)}
	}
	d.minVolumeAbsolute = d.maxInputAmplitude * core.DBPowerToLinear(db)
	return nil
}

// FindPitch estimates the fundamental frequency and clarity of a single
// window of exactly InputLength() samples, sampled at sampleRate Hz.
//
// If the window's RMS falls below the configured volume gate, or the NSDF
// has no key maximum at all (e.g. a silent or constant window), FindPitch
// returns the zero Result and a nil error.
func (d *PitchDetectorT[F, C]) FindPitch(input []F, sampleRate float64) (Result[F], error) {
	if len(input) != d.n {
		return Result[F]{}, &LengthError{Expected: d.n, Got: len(input)}
	}

	if d.minVolumeAbsolute > 0 {
		rms := math.Sqrt(sumSquares(input) / float64(d.n))
		if rms < d.minVolumeAbsolute {
			return Result[F]{}, nil
		}
	}

	if err := computeNSDF(d.ac, input, d.nsdf); err != nil {
		return Result[F]{}, fmt.Errorf("mpm: %w", err)
	}

	d.keyMaxBuf = keyMaxima(d.nsdf, d.keyMaxBuf)
	if len(d.keyMaxBuf) == 0 {
		return Result[F]{}, nil
	}

	nMax := float64(d.nsdf[d.keyMaxBuf[0]])
	for _, idx := range d.keyMaxBuf[1:] {
		if v := float64(d.nsdf[idx]); v > nMax {
			nMax = v
		}
	}
	threshold := d.clarityThreshold * nMax

	chosen := d.keyMaxBuf[0]
	for _, idx := range d.keyMaxBuf {
		if float64(d.nsdf[idx]) >= threshold {
			chosen = idx
			break
		}
	}

	x, y := parabolicPeak(d.nsdf, chosen)
	clarity := F(core.Clamp(float64(y), 0, 1))

	return Result[F]{Pitch: F(sampleRate / float64(x)), Clarity: clarity}, nil
}

// FindPitchBatch runs FindPitch independently over each window in windows,
// in order, with no state carried between windows (no temporal smoothing).
// It returns an error wrapping the index of the first window that failed.
func (d *PitchDetectorT[F, C]) FindPitchBatch(windows [][]F, sampleRate float64) ([]Result[F], error) {
	results := make([]Result[F], len(windows))
	for i, w := range windows {
		r, err := d.FindPitch(w, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("mpm: window %d: %w", i, err)
		}
		results[i] = r
	}
	return results, nil
}
