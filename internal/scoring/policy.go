package scoring

// Policy holds every threshold and point value the Scorer applies. It is
// plain data: swapping it never touches analyzer or scorer logic.
type Policy struct {
	SessionGapMinutes   float64 `mapstructure:"session_gap_minutes" json:"session_gap_minutes"`
	MinCommitGapMinutes float64 `mapstructure:"min_commit_gap_minutes" json:"min_commit_gap_minutes"`

	// MinSessionMinutes is the shortest session duration for which a rate
	// is estimated at all.
	MinSessionMinutes float64 `mapstructure:"min_session_minutes" json:"min_session_minutes"`

	LPM         LPMThresholds         `mapstructure:"lpm" json:"lpm"`
	DailyOutput DailyOutputThresholds `mapstructure:"daily_output" json:"daily_output"`

	Velocity     VelocityRule     `mapstructure:"velocity" json:"velocity"`
	Productivity ProductivityRule `mapstructure:"productivity" json:"productivity"`
	Uniformity   UniformityRule   `mapstructure:"uniformity" json:"uniformity"`
	Messages     MessageRule      `mapstructure:"messages" json:"messages"`
	Bursts       BurstRule        `mapstructure:"bursts" json:"bursts"`
	Authors      AuthorRule       `mapstructure:"authors" json:"authors"`
	Extreme      ExtremeRule      `mapstructure:"extreme" json:"extreme"`
	OffHours     OffHoursRule     `mapstructure:"off_hours" json:"off_hours"`
	Comments     CommentRule      `mapstructure:"comments" json:"comments"`
	Entropy      EntropyRule      `mapstructure:"entropy" json:"entropy"`
	Scale        ScaleRule        `mapstructure:"scale" json:"scale"`
	Generated    GeneratedRule    `mapstructure:"generated" json:"generated"`

	Verdicts VerdictBands `mapstructure:"verdicts" json:"verdicts"`
}

// LPMThresholds are the lines-per-minute cutoffs shared by velocity,
// productivity and burst rules.
type LPMThresholds struct {
	ClearlyHuman   float64 `mapstructure:"clearly_human" json:"clearly_human"`
	HumanUpper     float64 `mapstructure:"human_upper" json:"human_upper"`
	Suspicious     float64 `mapstructure:"suspicious" json:"suspicious"`
	VerySuspicious float64 `mapstructure:"very_suspicious" json:"very_suspicious"`
}

// DailyOutputThresholds are authored lines per active day.
type DailyOutputThresholds struct {
	Extreme  float64 `mapstructure:"extreme" json:"extreme"`
	High     float64 `mapstructure:"high" json:"high"`
	Elevated float64 `mapstructure:"elevated" json:"elevated"`
	Low      float64 `mapstructure:"low" json:"low"`
}

// VelocityRule scores the median velocity tier plus the share of very fast
// intervals.
type VelocityRule struct {
	VerySuspiciousPoints float64 `mapstructure:"very_suspicious_points" json:"very_suspicious_points"`
	SuspiciousPoints     float64 `mapstructure:"suspicious_points" json:"suspicious_points"`
	HumanUpperPoints     float64 `mapstructure:"human_upper_points" json:"human_upper_points"`
	ClearlyHumanPoints   float64 `mapstructure:"clearly_human_points" json:"clearly_human_points"`
	SlowPoints           float64 `mapstructure:"slow_points" json:"slow_points"`
	SlowMinIntervals     int     `mapstructure:"slow_min_intervals" json:"slow_min_intervals"`
	FastShare            float64 `mapstructure:"fast_share" json:"fast_share"`
	FastShareScale       float64 `mapstructure:"fast_share_scale" json:"fast_share_scale"`
	FastShareCap         float64 `mapstructure:"fast_share_cap" json:"fast_share_cap"`
}

// ProductivityRule scores the trimmed mean session throughput.
type ProductivityRule struct {
	VerySuspiciousPoints float64 `mapstructure:"very_suspicious_points" json:"very_suspicious_points"`
	SuspiciousPoints     float64 `mapstructure:"suspicious_points" json:"suspicious_points"`
	HumanUpperPoints     float64 `mapstructure:"human_upper_points" json:"human_upper_points"`
	SlowPoints           float64 `mapstructure:"slow_points" json:"slow_points"`
	SlowMinSessions      int     `mapstructure:"slow_min_sessions" json:"slow_min_sessions"`
}

// UniformityRule scores commit size dispersion.
type UniformityRule struct {
	MinCommits   int     `mapstructure:"min_commits" json:"min_commits"`
	StrictCV     float64 `mapstructure:"strict_cv" json:"strict_cv"`
	StrictMean   float64 `mapstructure:"strict_mean" json:"strict_mean"`
	StrictPoints float64 `mapstructure:"strict_points" json:"strict_points"`
	LooseCV      float64 `mapstructure:"loose_cv" json:"loose_cv"`
	LooseMean    float64 `mapstructure:"loose_mean" json:"loose_mean"`
	LoosePoints  float64 `mapstructure:"loose_points" json:"loose_points"`
	VariedCV     float64 `mapstructure:"varied_cv" json:"varied_cv"`
	VariedPoints float64 `mapstructure:"varied_points" json:"varied_points"`
}

// MessageRule scores the share of formally phrased commit subjects.
type MessageRule struct {
	HighRatio   float64 `mapstructure:"high_ratio" json:"high_ratio"`
	HighPoints  float64 `mapstructure:"high_points" json:"high_points"`
	MidRatio    float64 `mapstructure:"mid_ratio" json:"mid_ratio"`
	MidPoints   float64 `mapstructure:"mid_points" json:"mid_points"`
	LowRatio    float64 `mapstructure:"low_ratio" json:"low_ratio"`
	LowPoints   float64 `mapstructure:"low_points" json:"low_points"`
	SlowDamping float64 `mapstructure:"slow_damping" json:"slow_damping"`
	MaxSamples  int     `mapstructure:"max_samples" json:"max_samples"`
}

// BurstRule classifies sessions as rapid bursts and scores the combined
// burst count.
type BurstRule struct {
	MaxMinutes          float64 `mapstructure:"max_minutes" json:"max_minutes"`
	MinLines            int     `mapstructure:"min_lines" json:"min_lines"`
	ManyCount           int     `mapstructure:"many_count" json:"many_count"`
	ManyPoints          float64 `mapstructure:"many_points" json:"many_points"`
	SomeCount           int     `mapstructure:"some_count" json:"some_count"`
	SomePoints          float64 `mapstructure:"some_points" json:"some_points"`
	OnePoints           float64 `mapstructure:"one_points" json:"one_points"`
	ProductivityDamping float64 `mapstructure:"productivity_damping" json:"productivity_damping"`
}

// AuthorRule rewards multi-contributor histories with negative points.
type AuthorRule struct {
	ManyAuthors int     `mapstructure:"many_authors" json:"many_authors"`
	ManyPoints  float64 `mapstructure:"many_points" json:"many_points"`
	FewAuthors  int     `mapstructure:"few_authors" json:"few_authors"`
	FewPoints   float64 `mapstructure:"few_points" json:"few_points"`
	PairPoints  float64 `mapstructure:"pair_points" json:"pair_points"`
}

// ExtremeRule flags individual intervals that are both huge and fast.
type ExtremeRule struct {
	MinLines   int     `mapstructure:"min_lines" json:"min_lines"`
	MinLPM     float64 `mapstructure:"min_lpm" json:"min_lpm"`
	ManyCount  int     `mapstructure:"many_count" json:"many_count"`
	ManyPoints float64 `mapstructure:"many_points" json:"many_points"`
	AnyPoints  float64 `mapstructure:"any_points" json:"any_points"`
}

// OffHoursRule scores commits made between midnight and EndHour.
type OffHoursRule struct {
	MinCommits int     `mapstructure:"min_commits" json:"min_commits"`
	EndHour    int     `mapstructure:"end_hour" json:"end_hour"`
	HighShare  float64 `mapstructure:"high_share" json:"high_share"`
	HighPoints float64 `mapstructure:"high_points" json:"high_points"`
	MidShare   float64 `mapstructure:"mid_share" json:"mid_share"`
	MidPoints  float64 `mapstructure:"mid_points" json:"mid_points"`
}

// CommentRule scores the comment share of added lines.
type CommentRule struct {
	MinLines     int     `mapstructure:"min_lines" json:"min_lines"`
	HighRatio    float64 `mapstructure:"high_ratio" json:"high_ratio"`
	HighPoints   float64 `mapstructure:"high_points" json:"high_points"`
	MidRatio     float64 `mapstructure:"mid_ratio" json:"mid_ratio"`
	MidPoints    float64 `mapstructure:"mid_points" json:"mid_points"`
	SparseRatio  float64 `mapstructure:"sparse_ratio" json:"sparse_ratio"`
	SparsePoints float64 `mapstructure:"sparse_points" json:"sparse_points"`
}

// EntropyRule scores low median diff entropy.
type EntropyRule struct {
	MinAddedLines int     `mapstructure:"min_added_lines" json:"min_added_lines"`
	MinCommits    int     `mapstructure:"min_commits" json:"min_commits"`
	LowBits       float64 `mapstructure:"low_bits" json:"low_bits"`
	LowPoints     float64 `mapstructure:"low_points" json:"low_points"`
	MidBits       float64 `mapstructure:"mid_bits" json:"mid_bits"`
	MidPoints     float64 `mapstructure:"mid_points" json:"mid_points"`
}

// ScaleRule scores project output per active day against DailyOutput.
type ScaleRule struct {
	MinCommits     int     `mapstructure:"min_commits" json:"min_commits"`
	ExtremePoints  float64 `mapstructure:"extreme_points" json:"extreme_points"`
	HighPoints     float64 `mapstructure:"high_points" json:"high_points"`
	ElevatedPoints float64 `mapstructure:"elevated_points" json:"elevated_points"`
	LowPoints      float64 `mapstructure:"low_points" json:"low_points"`
}

// GeneratedRule controls the informational generated-file note.
type GeneratedRule struct {
	NoteShare float64 `mapstructure:"note_share" json:"note_share"`
}

// VerdictBands are the lower score bounds of the four upper verdicts.
type VerdictBands struct {
	VeryLikely  float64 `mapstructure:"very_likely" json:"very_likely"`
	Likely      float64 `mapstructure:"likely" json:"likely"`
	Possibly    float64 `mapstructure:"possibly" json:"possibly"`
	LikelyHuman float64 `mapstructure:"likely_human" json:"likely_human"`
}

// DefaultPolicy returns the built-in heuristic cutoffs. They were tuned by
// hand and carry no meaning beyond being reasonable.
func DefaultPolicy() Policy {
	return Policy{
		SessionGapMinutes:   120,
		MinCommitGapMinutes: 1.0,
		MinSessionMinutes:   5,
		LPM: LPMThresholds{
			ClearlyHuman:   0.5,
			HumanUpper:     2.0,
			Suspicious:     5.0,
			VerySuspicious: 10.0,
		},
		DailyOutput: DailyOutputThresholds{
			Extreme:  2000,
			High:     1000,
			Elevated: 500,
			Low:      100,
		},
		Velocity: VelocityRule{
			VerySuspiciousPoints: 30,
			SuspiciousPoints:     20,
			HumanUpperPoints:     10,
			ClearlyHumanPoints:   3,
			SlowPoints:           -10,
			SlowMinIntervals:     5,
			FastShare:            0.3,
			FastShareScale:       15,
			FastShareCap:         10,
		},
		Productivity: ProductivityRule{
			VerySuspiciousPoints: 20,
			SuspiciousPoints:     12,
			HumanUpperPoints:     5,
			SlowPoints:           -5,
			SlowMinSessions:      3,
		},
		Uniformity: UniformityRule{
			MinCommits:   5,
			StrictCV:     0.3,
			StrictMean:   150,
			StrictPoints: 15,
			LooseCV:      0.5,
			LooseMean:    100,
			LoosePoints:  8,
			VariedCV:     1.5,
			VariedPoints: -5,
		},
		Messages: MessageRule{
			HighRatio:   0.7,
			HighPoints:  15,
			MidRatio:    0.4,
			MidPoints:   8,
			LowRatio:    0.2,
			LowPoints:   3,
			SlowDamping: 0.5,
			MaxSamples:  10,
		},
		Bursts: BurstRule{
			MaxMinutes:          30,
			MinLines:            300,
			ManyCount:           5,
			ManyPoints:          15,
			SomeCount:           2,
			SomePoints:          8,
			OnePoints:           3,
			ProductivityDamping: 0.5,
		},
		Authors: AuthorRule{
			ManyAuthors: 5,
			ManyPoints:  -15,
			FewAuthors:  3,
			FewPoints:   -8,
			PairPoints:  -3,
		},
		Extreme: ExtremeRule{
			MinLines:   1000,
			MinLPM:     50,
			ManyCount:  3,
			ManyPoints: 10,
			AnyPoints:  5,
		},
		OffHours: OffHoursRule{
			MinCommits: 10,
			EndHour:    6,
			HighShare:  0.5,
			HighPoints: 5,
			MidShare:   0.3,
			MidPoints:  2,
		},
		Comments: CommentRule{
			MinLines:     100,
			HighRatio:    0.30,
			HighPoints:   8,
			MidRatio:     0.20,
			MidPoints:    4,
			SparseRatio:  0.03,
			SparsePoints: -3,
		},
		Entropy: EntropyRule{
			MinAddedLines: 5,
			MinCommits:    10,
			LowBits:       4.0,
			LowPoints:     5,
			MidBits:       4.3,
			MidPoints:     2,
		},
		Scale: ScaleRule{
			MinCommits:     5,
			ExtremePoints:  15,
			HighPoints:     10,
			ElevatedPoints: 5,
			LowPoints:      -5,
		},
		Generated: GeneratedRule{
			NoteShare: 0.25,
		},
		Verdicts: VerdictBands{
			VeryLikely:  75,
			Likely:      50,
			Possibly:    30,
			LikelyHuman: 15,
		},
	}
}
