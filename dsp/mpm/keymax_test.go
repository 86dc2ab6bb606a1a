package mpm

import (
	"reflect"
	"testing"
)

func TestKeyMaxima(t *testing.T) {
	nsdf := []float64{1, -1, 0.5, -1, 0.9, -1, 0}

	got := keyMaxima(nsdf, nil)
	want := []int{2, 4}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("keyMaxima() = %v, want %v", got, want)
	}
}

func TestKeyMaximaNoPositiveLobe(t *testing.T) {
	nsdf := []float64{1, -1, -1, -1, -1}

	got := keyMaxima(nsdf, nil)
	if len(got) != 0 {
		t.Fatalf("keyMaxima() = %v, want empty", got)
	}
}

func TestKeyMaximaReusesBuffer(t *testing.T) {
	buf := make([]int, 0, 8)
	nsdf := []float64{1, -1, 0.5, -1, 0.9, -1, 0}

	got := keyMaxima(nsdf, buf)
	if &got[0] != &buf[0] {
		t.Fatal("keyMaxima() did not reuse the supplied backing array")
	}

	// A second call with a smaller lobe set must not leak stale entries.
	nsdf2 := []float64{1, -1, 0.3, -1, 0, 0, 0}
	got2 := keyMaxima(nsdf2, got)
	if len(got2) != 1 || got2[0] != 2 {
		t.Fatalf("keyMaxima() second call = %v, want [2]", got2)
	}
}

func TestKeyMaximaTracksGlobalWithinLobe(t *testing.T) {
	// One lobe with a rising-then-falling interior: the key maximum must be
	// the index of the largest value, not the first local bump.
	nsdf := []float64{1, -1, 0.2, 0.8, 0.4, -1, 0}

	got := keyMaxima(nsdf, nil)
	want := []int{3}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("keyMaxima() = %v, want %v", got, want)
	}
}
