package analyzer

import (
	"strings"

	"github.com/blackwell-systems/commitprobe/internal/commits"
)

// AnalyzeEntropy computes the Shannon entropy of each commit's added text.
// Commits with fewer than minAddedLines added lines are skipped.
func AnalyzeEntropy(records []commits.CommitRecord, minAddedLines int) DiffEntropy {
	var values []float64

	for _, c := range records {
		var added []string
		for _, patch := range c.Patches {
			added = append(added, AddedLines(patch)...)
		}
		if len(added) < minAddedLines || len(added) == 0 {
			continue
		}
		values = append(values, shannonEntropy(strings.Join(added, "\n")))
	}

	result := DiffEntropy{Qualifying: len(values)}
	if len(values) == 0 {
		return result
	}
	result.Median = median(values)
	result.Mean = mean(values)
	return result
}
