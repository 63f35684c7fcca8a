package analyzer

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestMedian(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single", []float64{4}, 4},
		{"odd", []float64{5, 1, 3}, 3},
		{"even", []float64{4, 1, 3, 2}, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := median(tt.in); !approx(got, tt.want) {
				t.Errorf("median(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMedian_DoesNotMutateInput(t *testing.T) {
	in := []float64{3, 1, 2}
	median(in)
	if in[0] != 3 || in[1] != 1 || in[2] != 2 {
		t.Errorf("input was modified: %v", in)
	}
}

func TestTrimmedMean(t *testing.T) {
	// Fewer than five values: plain mean.
	if got := trimmedMean([]float64{1, 2, 3, 100}, 0.1); !approx(got, 26.5) {
		t.Errorf("small sample trimmed mean = %v, want 26.5", got)
	}

	// Nine values at 10% trims int(0.9) = 0 per tail: plain mean.
	nine := []float64{1, 1, 1, 1, 1, 1, 1, 1, 91}
	if got := trimmedMean(nine, 0.1); !approx(got, 11) {
		t.Errorf("zero trim count = %v, want 11", got)
	}

	// Ten values trim one from each tail.
	ten := []float64{1000, 2, 2, 2, 2, 2, 2, 2, 2, 0}
	if got := trimmedMean(ten, 0.1); !approx(got, 2) {
		t.Errorf("trimmed mean = %v, want 2", got)
	}
}

func TestSampleStdDev(t *testing.T) {
	if got := sampleStdDev([]float64{5}); got != 0 {
		t.Errorf("single value stddev = %v, want 0", got)
	}
	// Sample variance of 2,4,4,4,5,5,7,9 is 32/7.
	got := sampleStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if want := math.Sqrt(32.0 / 7.0); !approx(got, want) {
		t.Errorf("stddev = %v, want %v", got, want)
	}
}

func TestShannonEntropy(t *testing.T) {
	if got := shannonEntropy(""); got != 0 {
		t.Errorf("empty entropy = %v, want 0", got)
	}
	if got := shannonEntropy("aaaa"); got != 0 {
		t.Errorf("uniform entropy = %v, want 0", got)
	}
	if got := shannonEntropy("abab"); !approx(got, 1) {
		t.Errorf("two-symbol entropy = %v, want 1", got)
	}
	if got := shannonEntropy("abcd"); !approx(got, 2) {
		t.Errorf("four-symbol entropy = %v, want 2", got)
	}
}
