package analyzer

import (
	"sort"

	"github.com/blackwell-systems/commitprobe/internal/commits"
)

// ComputeVelocity pairs each non-bot author's temporally adjacent commits
// and returns the authored lines per minute of the later commit. records
// must be sorted ascending by timestamp.
//
// Pairs closer than minGapMinutes are amend or rebase artifacts and are
// dropped. Commits with no authored lines (lockfile bumps, vendored
// updates) neither start nor end an interval.
func ComputeVelocity(records []commits.CommitRecord, minGapMinutes float64) []VelocityInterval {
	var intervals []VelocityInterval
	prevByAuthor := make(map[string]commits.CommitRecord)

	for _, c := range records {
		if c.Bot || c.AuthoredTotal == 0 {
			continue
		}

		if prev, ok := prevByAuthor[c.Author]; ok {
			gap := c.Timestamp.Sub(prev.Timestamp).Minutes()
			if gap >= minGapMinutes && gap > 0 {
				intervals = append(intervals, VelocityInterval{
					FromSHA:        prev.ShortSHA(),
					ToSHA:          c.ShortSHA(),
					Author:         c.Author,
					GapMinutes:     gap,
					LinesChanged:   c.AuthoredTotal,
					LinesPerMinute: float64(c.AuthoredTotal) / gap,
				})
			}
		}
		prevByAuthor[c.Author] = c
	}

	return intervals
}

// SummarizeVelocity aggregates intervals against the suspicious and
// very-suspicious lines-per-minute thresholds and keeps the topN fastest.
func SummarizeVelocity(intervals []VelocityInterval, suspicious, verySuspicious float64, topN int) VelocitySummary {
	summary := VelocitySummary{Intervals: len(intervals)}
	if len(intervals) == 0 {
		return summary
	}

	lpms := make([]float64, len(intervals))
	for i, v := range intervals {
		lpms[i] = v.LinesPerMinute
		if v.LinesPerMinute >= suspicious {
			summary.AboveSuspicious++
		}
		if v.LinesPerMinute >= verySuspicious {
			summary.AboveVerySuspicious++
		}
	}

	summary.Median = median(lpms)
	summary.Mean = mean(lpms)
	summary.Max = maxOf(lpms)
	summary.VerySuspiciousShare = float64(summary.AboveVerySuspicious) / float64(len(intervals))

	fastest := make([]VelocityInterval, len(intervals))
	copy(fastest, intervals)
	sort.SliceStable(fastest, func(i, j int) bool {
		return fastest[i].LinesPerMinute > fastest[j].LinesPerMinute
	})
	if topN >= 0 && len(fastest) > topN {
		fastest = fastest[:topN]
	}
	summary.Fastest = fastest

	return summary
}

// CountExtremeIntervals counts intervals that are both large and fast.
func CountExtremeIntervals(intervals []VelocityInterval, minLines int, minLPM float64) int {
	n := 0
	for _, v := range intervals {
		if v.LinesChanged >= minLines && v.LinesPerMinute >= minLPM {
			n++
		}
	}
	return n
}
