package scoring

// Verdict is a qualitative bucket for a score.
type Verdict string

const (
	VerdictVeryLikely           Verdict = "very_likely"
	VerdictLikely               Verdict = "likely"
	VerdictPossibly             Verdict = "possibly"
	VerdictLikelyHuman          Verdict = "likely_human"
	VerdictAlmostCertainlyHuman Verdict = "almost_certainly_human"
)

var verdictLabels = map[Verdict]string{
	VerdictVeryLikely:           "Very likely LLM-generated",
	VerdictLikely:               "Likely LLM-assisted",
	VerdictPossibly:             "Possibly LLM-assisted",
	VerdictLikelyHuman:          "Likely human-written",
	VerdictAlmostCertainlyHuman: "Almost certainly human-written",
}

// Label is the human-readable form of the verdict.
func (v Verdict) Label() string {
	if l, ok := verdictLabels[v]; ok {
		return l
	}
	return string(v)
}

// Machine reports whether the verdict leans toward machine assistance.
func (v Verdict) Machine() bool {
	return v == VerdictVeryLikely || v == VerdictLikely || v == VerdictPossibly
}

// Classify buckets score into one of five bands.
func (b VerdictBands) Classify(score float64) Verdict {
	switch {
	case score >= b.VeryLikely:
		return VerdictVeryLikely
	case score >= b.Likely:
		return VerdictLikely
	case score >= b.Possibly:
		return VerdictPossibly
	case score >= b.LikelyHuman:
		return VerdictLikelyHuman
	default:
		return VerdictAlmostCertainlyHuman
	}
}
