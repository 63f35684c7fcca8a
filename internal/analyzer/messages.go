package analyzer

import (
	"strings"

	"github.com/blackwell-systems/commitprobe/internal/commits"
)

// Matcher reports whether a string matches any of an ordered set of
// patterns. *classify.PatternSet satisfies it.
type Matcher interface {
	Match(s string) bool
}

// AnalyzeMessages tests each commit's case-folded first message line
// against patterns. A message counts once no matter how many patterns it
// matches. Up to maxSamples flagged first lines are kept verbatim.
func AnalyzeMessages(records []commits.CommitRecord, patterns Matcher, maxSamples int) MessageAnalysis {
	result := MessageAnalysis{Total: len(records), Samples: []string{}}
	if len(records) == 0 {
		return result
	}

	for _, c := range records {
		subject := commits.FirstLine(c.Message)
		if !patterns.Match(strings.ToLower(subject)) {
			continue
		}
		result.Hits++
		if len(result.Samples) < maxSamples {
			result.Samples = append(result.Samples, subject)
		}
	}

	result.Ratio = float64(result.Hits) / float64(result.Total)
	return result
}
