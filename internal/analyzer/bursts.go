package analyzer

// BurstThresholds configures burst classification.
type BurstThresholds struct {
	// MaxMinutes bounds the duration of a rapid burst (exclusive).
	MaxMinutes float64

	// MinLines is the authored volume a rapid burst must exceed.
	MinLines int

	// MinSessionMinutes is the shortest session rated for sustained speed.
	MinSessionMinutes float64

	// SustainedLPM is the throughput at which a session counts as sustained.
	SustainedLPM float64
}

// AnalyzeBursts classifies each multi-commit session as a rapid burst or a
// sustained high-velocity session. A session is counted at most once and
// the rapid check wins.
func AnalyzeBursts(sessions []Session, th BurstThresholds) BurstAnalysis {
	var result BurstAnalysis

	for _, s := range sessions {
		if s.Len() < 2 {
			continue
		}
		d := s.DurationMinutes()
		lines := s.TotalLines()

		switch {
		case d < th.MaxMinutes && lines > th.MinLines:
			result.Rapid++
		case d >= th.MinSessionMinutes && d > 0 && float64(lines)/d >= th.SustainedLPM:
			result.Sustained++
		}
	}

	result.Total = result.Rapid + result.Sustained
	return result
}
