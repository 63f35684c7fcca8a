// Package analyzer extracts independent authorship signals from a sorted
// sequence of normalized commits. Every analyzer is a pure function of its
// inputs.
package analyzer

import "time"

// VelocityInterval is the rate between two temporally adjacent commits by
// the same author.
type VelocityInterval struct {
	FromSHA string `json:"from_sha"`
	ToSHA   string `json:"to_sha"`
	Author  string `json:"author"`

	// GapMinutes is the time between the two commits.
	GapMinutes float64 `json:"gap_minutes"`

	// LinesChanged is the authored total of the later commit.
	LinesChanged int `json:"lines_changed"`

	LinesPerMinute float64 `json:"lines_per_minute"`
}

// VelocitySummary aggregates all velocity intervals.
type VelocitySummary struct {
	Intervals int     `json:"intervals"`
	Median    float64 `json:"median_lpm"`
	Mean      float64 `json:"mean_lpm"`
	Max       float64 `json:"max_lpm"`

	// AboveSuspicious counts intervals at or above the suspicious rate.
	AboveSuspicious int `json:"above_suspicious"`

	// AboveVerySuspicious counts intervals at or above the very-suspicious rate.
	AboveVerySuspicious int `json:"above_very_suspicious"`

	// VerySuspiciousShare is AboveVerySuspicious / Intervals.
	VerySuspiciousShare float64 `json:"very_suspicious_share"`

	// Fastest holds the quickest intervals, fastest first.
	Fastest []VelocityInterval `json:"fastest"`
}

// ProductivitySummary aggregates authored throughput across sessions.
type ProductivitySummary struct {
	// Sessions is the total number of sessions, single-commit ones included.
	Sessions int `json:"sessions"`

	// MultiCommit is the number of sessions with two or more commits.
	MultiCommit int `json:"multi_commit"`

	// Rated is the number of sessions long enough to estimate a rate.
	Rated int `json:"rated"`

	Median      float64 `json:"median_lpm"`
	TrimmedMean float64 `json:"trimmed_mean_lpm"`
}

// SizeUniformity describes dispersion of authored commit sizes.
type SizeUniformity struct {
	Commits int     `json:"commits"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"stddev"`
	CV      float64 `json:"cv"`

	// Sufficient is false when too few sized commits exist to judge.
	Sufficient bool `json:"sufficient"`
}

// MessageAnalysis summarizes how many commit subjects read as formally
// generated.
type MessageAnalysis struct {
	Total   int      `json:"total"`
	Hits    int      `json:"hits"`
	Ratio   float64  `json:"ratio"`
	Samples []string `json:"samples"`
}

// BurstAnalysis counts short high-volume sessions and sustained fast ones.
type BurstAnalysis struct {
	Rapid     int `json:"rapid"`
	Sustained int `json:"sustained"`
	Total     int `json:"total"`
}

// TimeOfDay is the hour distribution of non-bot commits in each commit's
// own offset.
type TimeOfDay struct {
	Commits       int     `json:"commits"`
	Histogram     [24]int `json:"histogram"`
	OffHours      int     `json:"off_hours"`
	OffHoursShare float64 `json:"off_hours_share"`
}

// CommentDensity is the share of comment-like lines among added lines.
type CommentDensity struct {
	CommentLines int     `json:"comment_lines"`
	CodeLines    int     `json:"code_lines"`
	Ratio        float64 `json:"ratio"`
}

// Total is the number of non-blank added lines classified.
func (d CommentDensity) Total() int { return d.CommentLines + d.CodeLines }

// DiffEntropy aggregates per-commit Shannon entropy of added text.
type DiffEntropy struct {
	Qualifying int     `json:"qualifying"`
	Median     float64 `json:"median_bits"`
	Mean       float64 `json:"mean_bits"`
}

// ProjectScale relates total authored output to the project's lifespan.
type ProjectScale struct {
	Commits    int       `json:"commits"`
	TotalLines int       `json:"total_lines"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`

	// StartFromCreation is true when Start came from repository metadata.
	StartFromCreation bool `json:"start_from_creation"`

	CalendarDays        int     `json:"calendar_days"`
	ActiveDays          int     `json:"active_days"`
	LinesPerActiveDay   float64 `json:"lines_per_active_day"`
	LinesPerCalendarDay float64 `json:"lines_per_calendar_day"`

	Sufficient bool `json:"sufficient"`
}

// AuthorCount is one author's commit tally.
type AuthorCount struct {
	Author  string `json:"author"`
	Commits int    `json:"commits"`
	Bot     bool   `json:"bot"`
}

// AuthorStats counts contributors.
type AuthorStats struct {
	// Distinct is the number of distinct non-bot authors.
	Distinct int `json:"distinct"`

	// Bots is the number of distinct bot identities.
	Bots int `json:"bots"`

	// Top lists the most active identities, bots included.
	Top []AuthorCount `json:"top"`
}

// GeneratedShare is the fraction of all changed lines that landed in
// generated or vendored files.
type GeneratedShare struct {
	AuthoredLines  int     `json:"authored_lines"`
	GeneratedLines int     `json:"generated_lines"`
	Share          float64 `json:"share"`
}
