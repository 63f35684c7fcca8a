package scoring

import (
	"fmt"
	"math"

	"github.com/blackwell-systems/commitprobe/internal/analyzer"
)

// Scorer applies a Policy to analyzer outputs. It holds no mutable state and
// is safe for concurrent use.
type Scorer struct {
	policy Policy
}

// NewScorer returns a Scorer bound to p.
func NewScorer(p Policy) *Scorer {
	return &Scorer{policy: p}
}

// Policy returns the policy the scorer was built with.
func (s *Scorer) Policy() Policy { return s.policy }

// Score evaluates every signal in a fixed order, sums the deltas and clamps
// the total to [0, 100]. Identical inputs always yield identical output.
func (s *Scorer) Score(in Inputs) ScoreResult {
	velocity := s.velocity(in.Velocity)
	productivity, productivityTop := s.productivity(in.Productivity)

	signals := []SignalResult{
		velocity,
		productivity,
		s.uniformity(in.Uniformity),
		s.messages(in.Messages, in.Velocity),
		s.bursts(in.Bursts, productivityTop),
		s.authors(in.Authors),
		s.extreme(in.Intervals),
		s.offHours(in.TimeOfDay),
		s.comments(in.Comments),
		s.entropy(in.Entropy),
		s.scale(in.Scale),
		s.generated(in.Generated),
	}

	result := ScoreResult{Reasons: []string{}, Signals: signals}
	for _, sig := range signals {
		result.Raw += sig.Points
		result.Reasons = append(result.Reasons, sig.Reasons...)
	}

	result.Score = math.Round(clamp(result.Raw, 0, 100)*10) / 10
	result.Verdict = s.policy.Verdicts.Classify(result.Score)
	return result
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func signal(name string, points float64, reasons ...string) SignalResult {
	if points == 0 {
		reasons = nil
	}
	if reasons == nil {
		reasons = []string{}
	}
	return SignalResult{Name: name, Points: points, Reasons: reasons}
}

func (s *Scorer) velocity(v analyzer.VelocitySummary) SignalResult {
	if v.Intervals == 0 {
		return signal(SignalVelocity, 0)
	}

	lpm := s.policy.LPM
	rule := s.policy.Velocity
	m := v.Median

	var points float64
	var reasons []string
	switch {
	case m >= lpm.VerySuspicious:
		points = rule.VerySuspiciousPoints
		reasons = append(reasons, fmt.Sprintf("Median velocity is extremely high (%.1f lines/min, about %.0f lines/hr)", m, m*60))
	case m >= lpm.Suspicious:
		points = rule.SuspiciousPoints
		reasons = append(reasons, fmt.Sprintf("Median velocity is suspiciously high (%.1f lines/min, about %.0f lines/hr)", m, m*60))
	case m >= lpm.HumanUpper:
		points = rule.HumanUpperPoints
		reasons = append(reasons, fmt.Sprintf("Median velocity is above typical human rate (%.1f lines/min)", m))
	case m >= lpm.ClearlyHuman:
		points = rule.ClearlyHumanPoints
		reasons = append(reasons, fmt.Sprintf("Median velocity is at the upper end of manual coding (%.2f lines/min)", m))
	case v.Intervals >= rule.SlowMinIntervals:
		points = rule.SlowPoints
		reasons = append(reasons, fmt.Sprintf("Median velocity is consistent with manual coding (%.2f lines/min over %d intervals)", m, v.Intervals))
	}

	if v.VerySuspiciousShare > rule.FastShare {
		extra := math.Min(rule.FastShareCap, v.VerySuspiciousShare*rule.FastShareScale)
		points += extra
		reasons = append(reasons, fmt.Sprintf("%.0f%% of commit intervals show very high velocity", v.VerySuspiciousShare*100))
	}

	return signal(SignalVelocity, points, reasons...)
}

// productivity also reports whether the top tier fired, which the burst
// rule reads.
func (s *Scorer) productivity(p analyzer.ProductivitySummary) (SignalResult, bool) {
	if p.Rated == 0 {
		return signal(SignalProductivity, 0), false
	}

	lpm := s.policy.LPM
	rule := s.policy.Productivity
	r := p.TrimmedMean

	switch {
	case r >= lpm.VerySuspicious:
		return signal(SignalProductivity, rule.VerySuspiciousPoints,
			fmt.Sprintf("Session productivity is extreme (%.1f lines/min trimmed mean over %d sessions)", r, p.Rated)), true
	case r >= lpm.Suspicious:
		return signal(SignalProductivity, rule.SuspiciousPoints,
			fmt.Sprintf("Session productivity is high (%.1f lines/min trimmed mean)", r)), false
	case r >= lpm.HumanUpper:
		return signal(SignalProductivity, rule.HumanUpperPoints,
			fmt.Sprintf("Session productivity is above average (%.1f lines/min)", r)), false
	case r < lpm.ClearlyHuman && p.Rated >= rule.SlowMinSessions:
		return signal(SignalProductivity, rule.SlowPoints,
			fmt.Sprintf("Session productivity is human-paced (%.2f lines/min across %d sessions)", r, p.Rated)), false
	}
	return signal(SignalProductivity, 0), false
}

func (s *Scorer) uniformity(u analyzer.SizeUniformity) SignalResult {
	rule := s.policy.Uniformity
	if !u.Sufficient || u.Commits < rule.MinCommits {
		return signal(SignalUniformity, 0)
	}

	switch {
	case u.CV < rule.StrictCV && u.Mean > rule.StrictMean:
		return signal(SignalUniformity, rule.StrictPoints,
			fmt.Sprintf("Commits are uniformly large (mean=%.0f, CV=%.2f)", u.Mean, u.CV))
	case u.CV < rule.LooseCV && u.Mean > rule.LooseMean:
		return signal(SignalUniformity, rule.LoosePoints,
			fmt.Sprintf("Commits are somewhat uniform in size (mean=%.0f, CV=%.2f)", u.Mean, u.CV))
	case u.CV > rule.VariedCV:
		return signal(SignalUniformity, rule.VariedPoints,
			fmt.Sprintf("Commit sizes vary widely (CV=%.2f), typical of human work", u.CV))
	}
	return signal(SignalUniformity, 0)
}

func (s *Scorer) messages(m analyzer.MessageAnalysis, v analyzer.VelocitySummary) SignalResult {
	rule := s.policy.Messages

	var points float64
	switch {
	case m.Ratio > rule.HighRatio:
		points = rule.HighPoints
	case m.Ratio > rule.MidRatio:
		points = rule.MidPoints
	case m.Ratio > rule.LowRatio:
		points = rule.LowPoints
	default:
		return signal(SignalMessages, 0)
	}

	reason := fmt.Sprintf("%.0f%% of commit messages match LLM-typical patterns", m.Ratio*100)
	// Formal wording alone is weak evidence when the code arrives slowly.
	if v.Intervals > 0 && v.Median < s.policy.LPM.HumanUpper {
		points *= rule.SlowDamping
		reason += " (weighted down: velocity is human-paced)"
	}
	return signal(SignalMessages, points, reason)
}

func (s *Scorer) bursts(b analyzer.BurstAnalysis, productivityTop bool) SignalResult {
	rule := s.policy.Bursts

	var points float64
	switch {
	case b.Total >= rule.ManyCount:
		points = rule.ManyPoints
	case b.Total >= rule.SomeCount:
		points = rule.SomePoints
	case b.Total >= 1:
		points = rule.OnePoints
	default:
		return signal(SignalBursts, 0)
	}

	noun := "sessions"
	if b.Total == 1 {
		noun = "session"
	}
	reason := fmt.Sprintf("%d burst %s detected (%d rapid, %d sustained high-velocity)", b.Total, noun, b.Rapid, b.Sustained)
	// The same sessions already drove the top productivity tier.
	if productivityTop {
		points *= rule.ProductivityDamping
		reason += " (weighted down: overlaps session productivity)"
	}
	return signal(SignalBursts, points, reason)
}

func (s *Scorer) authors(a analyzer.AuthorStats) SignalResult {
	rule := s.policy.Authors
	switch {
	case a.Distinct >= rule.ManyAuthors:
		return signal(SignalAuthors, rule.ManyPoints,
			fmt.Sprintf("%d distinct human contributors suggest an established multi-person project", a.Distinct))
	case a.Distinct >= rule.FewAuthors:
		return signal(SignalAuthors, rule.FewPoints,
			fmt.Sprintf("%d distinct human contributors", a.Distinct))
	case a.Distinct == 2:
		return signal(SignalAuthors, rule.PairPoints, "2 distinct human contributors")
	}
	return signal(SignalAuthors, 0)
}

func (s *Scorer) extreme(intervals []analyzer.VelocityInterval) SignalResult {
	rule := s.policy.Extreme
	n := analyzer.CountExtremeIntervals(intervals, rule.MinLines, rule.MinLPM)

	switch {
	case n >= rule.ManyCount:
		return signal(SignalExtreme, rule.ManyPoints,
			fmt.Sprintf("%d intervals added %d+ lines at %.0f+ lines/min", n, rule.MinLines, rule.MinLPM))
	case n >= 1:
		return signal(SignalExtreme, rule.AnyPoints,
			fmt.Sprintf("%d interval(s) added %d+ lines at %.0f+ lines/min", n, rule.MinLines, rule.MinLPM))
	}
	return signal(SignalExtreme, 0)
}

func (s *Scorer) offHours(t analyzer.TimeOfDay) SignalResult {
	rule := s.policy.OffHours
	if t.Commits < rule.MinCommits {
		return signal(SignalOffHours, 0)
	}

	switch {
	case t.OffHoursShare >= rule.HighShare:
		return signal(SignalOffHours, rule.HighPoints,
			fmt.Sprintf("%.0f%% of commits were made between 00:00 and %02d:00 local time", t.OffHoursShare*100, rule.EndHour))
	case t.OffHoursShare >= rule.MidShare:
		return signal(SignalOffHours, rule.MidPoints,
			fmt.Sprintf("%.0f%% of commits were made during off-hours", t.OffHoursShare*100))
	}
	return signal(SignalOffHours, 0)
}

func (s *Scorer) comments(c analyzer.CommentDensity) SignalResult {
	rule := s.policy.Comments
	if c.Total() < rule.MinLines {
		return signal(SignalComments, 0)
	}

	switch {
	case c.Ratio >= rule.HighRatio:
		return signal(SignalComments, rule.HighPoints,
			fmt.Sprintf("Added code is heavily commented (%.0f%% of lines)", c.Ratio*100))
	case c.Ratio >= rule.MidRatio:
		return signal(SignalComments, rule.MidPoints,
			fmt.Sprintf("Added code is well commented (%.0f%% of lines)", c.Ratio*100))
	case c.Ratio <= rule.SparseRatio:
		return signal(SignalComments, rule.SparsePoints,
			fmt.Sprintf("Added code is sparsely commented (%.1f%% of lines)", c.Ratio*100))
	}
	return signal(SignalComments, 0)
}

func (s *Scorer) entropy(e analyzer.DiffEntropy) SignalResult {
	rule := s.policy.Entropy
	if e.Qualifying < rule.MinCommits {
		return signal(SignalEntropy, 0)
	}

	switch {
	case e.Median < rule.LowBits:
		return signal(SignalEntropy, rule.LowPoints,
			fmt.Sprintf("Diffs are highly repetitive (median entropy %.2f bits/char)", e.Median))
	case e.Median < rule.MidBits:
		return signal(SignalEntropy, rule.MidPoints,
			fmt.Sprintf("Diffs are somewhat repetitive (median entropy %.2f bits/char)", e.Median))
	}
	return signal(SignalEntropy, 0)
}

func (s *Scorer) scale(p analyzer.ProjectScale) SignalResult {
	if !p.Sufficient || p.Commits < s.policy.Scale.MinCommits {
		return signal(SignalScale, 0)
	}

	th := s.policy.DailyOutput
	rule := s.policy.Scale
	rate := p.LinesPerActiveDay
	desc := fmt.Sprintf("%d lines over %d active days (%d calendar days)", p.TotalLines, p.ActiveDays, p.CalendarDays)

	switch {
	case rate >= th.Extreme:
		return signal(SignalScale, rule.ExtremePoints,
			fmt.Sprintf("Project output is implausible for one person: %.0f lines per active day, %s", rate, desc))
	case rate >= th.High:
		return signal(SignalScale, rule.HighPoints,
			fmt.Sprintf("Project output is very high: %.0f lines per active day, %s", rate, desc))
	case rate >= th.Elevated:
		return signal(SignalScale, rule.ElevatedPoints,
			fmt.Sprintf("Project output is elevated: %.0f lines per active day", rate))
	case rate <= th.Low:
		return signal(SignalScale, rule.LowPoints,
			fmt.Sprintf("Project output is modest: %.0f lines per active day", rate))
	}
	return signal(SignalScale, 0)
}

// generated never moves the score; it only explains what was excluded.
func (s *Scorer) generated(g analyzer.GeneratedShare) SignalResult {
	res := signal(SignalGenerated, 0)
	if g.GeneratedLines > 0 && g.Share >= s.policy.Generated.NoteShare {
		res.Reasons = []string{fmt.Sprintf(
			"Note: %.0f%% of changed lines (%d) were in generated or vendored files and were excluded",
			g.Share*100, g.GeneratedLines)}
	}
	return res
}
