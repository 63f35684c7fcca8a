package analyzer

import (
	"math"
	"sort"
)

// median returns the middle value of values, averaging the two central
// values for an even count. It returns 0 for an empty slice and never
// modifies its input.
func median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := sortedCopy(values)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// trimmedMean discards frac of the sorted values at each tail before
// averaging. Small samples, or a trim count that rounds to zero, fall back
// to the plain mean.
func trimmedMean(values []float64, frac float64) float64 {
	n := len(values)
	if n < 5 {
		return mean(values)
	}
	k := int(float64(n) * frac)
	if k == 0 {
		return mean(values)
	}
	sorted := sortedCopy(values)
	return mean(sorted[k : n-k])
}

// sampleStdDev is the n-1 standard deviation. Fewer than two values yield 0.
func sampleStdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	m := mean(values)
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}

func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// shannonEntropy returns the entropy of text in bits per character.
func shannonEntropy(text string) float64 {
	counts := make(map[rune]int)
	total := 0
	for _, r := range text {
		counts[r]++
		total++
	}
	if total == 0 {
		return 0
	}

	// Sum in a fixed order so the result is bit-for-bit reproducible.
	runes := make([]rune, 0, len(counts))
	for r := range counts {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	var h float64
	for _, r := range runes {
		p := float64(counts[r]) / float64(total)
		h -= p * math.Log2(p)
	}
	return h
}

func sortedCopy(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)
	return out
}
