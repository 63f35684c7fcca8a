// Package scoring combines analyzer outputs into one bounded, explainable
// score.
package scoring

import "github.com/blackwell-systems/commitprobe/internal/analyzer"

// Signal names, in evaluation order.
const (
	SignalVelocity     = "velocity"
	SignalProductivity = "session_productivity"
	SignalUniformity   = "size_uniformity"
	SignalMessages     = "message_patterns"
	SignalBursts       = "bursts"
	SignalAuthors      = "author_cardinality"
	SignalExtreme      = "extreme_intervals"
	SignalOffHours     = "time_of_day"
	SignalComments     = "comment_density"
	SignalEntropy      = "diff_entropy"
	SignalScale        = "project_scale"
	SignalGenerated    = "generated_share"
)

// SignalOrder lists every signal name in the order the Scorer applies them.
var SignalOrder = []string{
	SignalVelocity,
	SignalProductivity,
	SignalUniformity,
	SignalMessages,
	SignalBursts,
	SignalAuthors,
	SignalExtreme,
	SignalOffHours,
	SignalComments,
	SignalEntropy,
	SignalScale,
	SignalGenerated,
}

// Inputs carries every analyzer output the Scorer reads.
type Inputs struct {
	Velocity     analyzer.VelocitySummary
	Intervals    []analyzer.VelocityInterval
	Productivity analyzer.ProductivitySummary
	Uniformity   analyzer.SizeUniformity
	Messages     analyzer.MessageAnalysis
	Bursts       analyzer.BurstAnalysis
	Authors      analyzer.AuthorStats
	TimeOfDay    analyzer.TimeOfDay
	Comments     analyzer.CommentDensity
	Entropy      analyzer.DiffEntropy
	Scale        analyzer.ProjectScale
	Generated    analyzer.GeneratedShare
}

// SignalResult is one signal's contribution. Reasons is empty when Points
// is zero, except for informational notes.
type SignalResult struct {
	Name    string   `json:"name"`
	Points  float64  `json:"points"`
	Reasons []string `json:"reasons"`
}

// ScoreResult is the final, clamped score with its justification.
type ScoreResult struct {
	// Score is clamped to [0, 100] and rounded to one decimal.
	Score float64 `json:"score"`

	// Raw is the unclamped sum of signal points.
	Raw float64 `json:"raw"`

	Verdict Verdict `json:"verdict"`

	// Reasons lists every signal reason in evaluation order.
	Reasons []string `json:"reasons"`

	// Signals holds each signal's contribution in evaluation order.
	Signals []SignalResult `json:"signals"`
}

// Points returns the contribution of the named signal, or 0.
func (r ScoreResult) Points(name string) float64 {
	for _, s := range r.Signals {
		if s.Name == name {
			return s.Points
		}
	}
	return 0
}
