// Package detect runs the full scoring pipeline over a materialized set of
// raw commits: normalize, sort, analyze, score.
package detect

import (
	"errors"
	"fmt"
	"time"

	"github.com/blackwell-systems/commitprobe/internal/analyzer"
	"github.com/blackwell-systems/commitprobe/internal/classify"
	"github.com/blackwell-systems/commitprobe/internal/commits"
	"github.com/blackwell-systems/commitprobe/internal/scoring"
)

// ErrNoCommits is returned when there is nothing to analyze.
var ErrNoCommits = errors.New("no commits to analyze")

// Patterns holds the declarative classification tables.
type Patterns struct {
	GeneratedFiles []string
	BotSuffixes    []string
	Messages       []string
	Comments       []string
}

// Options configures a Detector.
type Options struct {
	Policy   scoring.Policy
	Patterns Patterns

	// TopAuthors and TopIntervals bound the report's ranked lists.
	TopAuthors   int
	TopIntervals int
}

// Input is one repository's complete commit set.
type Input struct {
	Repository string
	Source     string
	Raw        []commits.RawCommit

	// CreatedAt is the repository creation time when the source knows it.
	CreatedAt *time.Time
}

// SessionSummary counts sessions for reporting.
type SessionSummary struct {
	Total       int     `json:"total"`
	MultiCommit int     `json:"multi_commit"`
	GapMinutes  float64 `json:"gap_minutes"`
}

// Report is everything one analysis produced.
type Report struct {
	Repository string     `json:"repository"`
	Source     string     `json:"source"`
	Commits    int        `json:"commits"`
	First      time.Time  `json:"first_commit"`
	Last       time.Time  `json:"last_commit"`
	SpanDays   int        `json:"span_days"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`

	Authors      analyzer.AuthorStats         `json:"authors"`
	Velocity     analyzer.VelocitySummary     `json:"velocity"`
	Sessions     SessionSummary               `json:"sessions"`
	Productivity analyzer.ProductivitySummary `json:"productivity"`
	Uniformity   analyzer.SizeUniformity      `json:"size_uniformity"`
	Messages     analyzer.MessageAnalysis     `json:"messages"`
	Bursts       analyzer.BurstAnalysis       `json:"bursts"`
	TimeOfDay    analyzer.TimeOfDay           `json:"time_of_day"`
	Comments     analyzer.CommentDensity      `json:"comment_density"`
	Entropy      analyzer.DiffEntropy         `json:"diff_entropy"`
	Scale        analyzer.ProjectScale        `json:"project_scale"`
	Generated    analyzer.GeneratedShare      `json:"generated"`

	Result scoring.ScoreResult `json:"result"`
}

// Detector is safe for concurrent use; it holds only compiled patterns and
// the scoring policy.
type Detector struct {
	policy       scoring.Policy
	classifier   *classify.Classifier
	messages     *classify.PatternSet
	comments     *classify.PatternSet
	scorer       *scoring.Scorer
	topAuthors   int
	topIntervals int
}

// New compiles the pattern tables. An invalid pattern is a configuration
// error.
func New(opts Options) (*Detector, error) {
	cls, err := classify.New(opts.Patterns.GeneratedFiles, opts.Patterns.BotSuffixes)
	if err != nil {
		return nil, err
	}
	messages, err := classify.Compile(opts.Patterns.Messages)
	if err != nil {
		return nil, fmt.Errorf("message patterns: %w", err)
	}
	comments, err := classify.Compile(opts.Patterns.Comments)
	if err != nil {
		return nil, fmt.Errorf("comment patterns: %w", err)
	}

	d := &Detector{
		policy:       opts.Policy,
		classifier:   cls,
		messages:     messages,
		comments:     comments,
		scorer:       scoring.NewScorer(opts.Policy),
		topAuthors:   opts.TopAuthors,
		topIntervals: opts.TopIntervals,
	}
	if d.topAuthors <= 0 {
		d.topAuthors = 5
	}
	if d.topIntervals <= 0 {
		d.topIntervals = 5
	}
	return d, nil
}

// Run analyzes in. It never produces a partial report.
func (d *Detector) Run(in Input) (*Report, error) {
	if len(in.Raw) == 0 {
		return nil, ErrNoCommits
	}

	p := d.policy
	records := commits.NormalizeAll(in.Raw, d.classifier)

	intervals := analyzer.ComputeVelocity(records, p.MinCommitGapMinutes)
	sessions := analyzer.BuildSessions(records, p.SessionGapMinutes)
	productivity := analyzer.AnalyzeProductivity(sessions, p.MinSessionMinutes)

	report := &Report{
		Repository: in.Repository,
		Source:     in.Source,
		Commits:    len(records),
		First:      records[0].Timestamp,
		Last:       records[len(records)-1].Timestamp,
		CreatedAt:  in.CreatedAt,

		Authors:  analyzer.AnalyzeAuthors(records, d.topAuthors),
		Velocity: analyzer.SummarizeVelocity(intervals, p.LPM.Suspicious, p.LPM.VerySuspicious, d.topIntervals),
		Sessions: SessionSummary{
			Total:       productivity.Sessions,
			MultiCommit: productivity.MultiCommit,
			GapMinutes:  p.SessionGapMinutes,
		},
		Productivity: productivity,
		Uniformity:   analyzer.AnalyzeUniformity(records, p.Uniformity.MinCommits),
		Messages:     analyzer.AnalyzeMessages(records, d.messages, p.Messages.MaxSamples),
		Bursts: analyzer.AnalyzeBursts(sessions, analyzer.BurstThresholds{
			MaxMinutes:        p.Bursts.MaxMinutes,
			MinLines:          p.Bursts.MinLines,
			MinSessionMinutes: p.MinSessionMinutes,
			SustainedLPM:      p.LPM.VerySuspicious,
		}),
		TimeOfDay: analyzer.AnalyzeTimeOfDay(records, p.OffHours.EndHour),
		Comments:  analyzer.AnalyzeComments(records, d.comments),
		Entropy:   analyzer.AnalyzeEntropy(records, p.Entropy.MinAddedLines),
		Scale:     analyzer.AnalyzeScale(records, in.CreatedAt, p.Scale.MinCommits),
		Generated: analyzer.AnalyzeGenerated(records),
	}
	report.SpanDays = int(report.Last.Sub(report.First).Hours() / 24)

	report.Result = d.scorer.Score(scoring.Inputs{
		Velocity:     report.Velocity,
		Intervals:    intervals,
		Productivity: report.Productivity,
		Uniformity:   report.Uniformity,
		Messages:     report.Messages,
		Bursts:       report.Bursts,
		Authors:      report.Authors,
		TimeOfDay:    report.TimeOfDay,
		Comments:     report.Comments,
		Entropy:      report.Entropy,
		Scale:        report.Scale,
		Generated:    report.Generated,
	})

	return report, nil
}
