package conv

import (
	"errors"
	"math"
	"testing"
)

func TestDirect(t *testing.T) {
	tests := []struct {
		name     string
		a        []float64
		b        []float64
		expected []float64
	}{
		{
			name:     "simple 3x3",
			a:        []float64{1, 2, 3},
			b:        []float64{1, 1, 1},
			expected: []float64{1, 3, 6, 5, 3},
		},
		{
			name:     "impulse",
			a:        []float64{1, 2, 3, 4, 5},
			b:        []float64{1},
			expected: []float64{1, 2, 3, 4, 5},
		},
		{
			name:     "delayed impulse",
			a:        []float64{1, 2, 3, 4, 5},
			b:        []float64{0, 0, 1},
			expected: []float64{0, 0, 1, 2, 3, 4, 5},
		},
		{
			name:     "symmetric",
			a:        []float64{1, 2, 1},
			b:        []float64{1, 2, 1},
			expected: []float64{1, 4, 6, 4, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Direct(tt.a, tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(result) != len(tt.expected) {
				t.Fatalf("length mismatch: got %d, expected %d", len(result), len(tt.expected))
			}

			for i := range result {
				if math.Abs(result[i]-tt.expected[i]) > 1e-10 {
					t.Errorf("result[%d] = %v, expected %v", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestDirectErrors(t *testing.T) {
	_, err := Direct([]float64{}, []float64{1, 2})
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}

	_, err = Direct([]float64{1, 2}, []float64{})
	if !errors.Is(err, ErrEmptyKernel) {
		t.Errorf("expected ErrEmptyKernel, got %v", err)
	}
}

func TestCorrelateErrors(t *testing.T) {
	_, err := Correlate(nil, []float64{1, 2})
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}

	_, err = Correlate([]float64{1, 2}, nil)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestAutoCorrelate(t *testing.T) {
	// Auto-correlation of a periodic cosine should peak at zero lag.
	n := 256

	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Cos(2 * math.Pi * float64(i) / 32)
	}

	result, err := AutoCorrelate(signal)
	if err != nil {
		t.Fatalf("auto-correlation failed: %v", err)
	}

	if len(result) != 2*n-1 {
		t.Fatalf("length = %d, want %d", len(result), 2*n-1)
	}

	// Zero lag is at index n-1 and must be the global maximum.
	zeroLag := n - 1
	for i, v := range result {
		if v > result[zeroLag]+1e-9 {
			t.Errorf("result[%d] = %v exceeds zero-lag value %v at index %d", i, v, result[zeroLag], zeroLag)
		}
	}
}

func TestAutoCorrelateSymmetric(t *testing.T) {
	// Auto-correlation is symmetric about the zero-lag center.
	signal := []float64{1, -2, 3, 0.5, -1.5}
	result, err := AutoCorrelate(signal)
	if err != nil {
		t.Fatalf("auto-correlation failed: %v", err)
	}

	n := len(signal)
	for k := 0; k < n; k++ {
		left := result[n-1-k]
		right := result[n-1+k]
		if math.Abs(left-right) > 1e-10 {
			t.Errorf("lag -%d = %v, lag +%d = %v, want equal", k, left, k, right)
		}
	}
}
