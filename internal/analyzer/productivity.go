package analyzer

// trimFraction is cut from each tail before averaging session rates.
const trimFraction = 0.10

// AnalyzeProductivity estimates authored lines per minute for every session
// with at least two commits lasting minMinutes or more. Shorter sessions are
// too noisy to rate.
func AnalyzeProductivity(sessions []Session, minMinutes float64) ProductivitySummary {
	summary := ProductivitySummary{Sessions: len(sessions)}

	rates := SessionRates(sessions, minMinutes)
	for _, s := range sessions {
		if s.Len() >= 2 {
			summary.MultiCommit++
		}
	}

	summary.Rated = len(rates)
	if len(rates) == 0 {
		return summary
	}

	summary.Median = median(rates)
	summary.TrimmedMean = trimmedMean(rates, trimFraction)
	return summary
}

// SessionRates returns the throughput of each rateable session in input
// order.
func SessionRates(sessions []Session, minMinutes float64) []float64 {
	var rates []float64
	for _, s := range sessions {
		if s.Len() < 2 {
			continue
		}
		d := s.DurationMinutes()
		if d < minMinutes || d <= 0 {
			continue
		}
		rates = append(rates, float64(s.TotalLines())/d)
	}
	return rates
}
