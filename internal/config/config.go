package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/blackwell-systems/commitprobe/internal/scoring"
)

// Config is the top-level commitprobe configuration.
type Config struct {
	GitHub   GitHub         `mapstructure:"github"`
	Policy   scoring.Policy `mapstructure:"policy"`
	Patterns Patterns       `mapstructure:"patterns"`
	Output   Output         `mapstructure:"output"`
	History  History        `mapstructure:"history"`
	LogLevel string         `mapstructure:"log_level"`
}

// GitHub defines how commits are fetched from the hosting API.
type GitHub struct {
	Token      string `mapstructure:"token"`
	APIURL     string `mapstructure:"api_url"`
	Workers    int    `mapstructure:"workers"`
	MaxCommits int    `mapstructure:"max_commits"`
	Branch     string `mapstructure:"branch"`
}

// Patterns holds the declarative classification tables.
type Patterns struct {
	GeneratedFiles []string `mapstructure:"generated_files" json:"generated_files"`
	BotSuffixes    []string `mapstructure:"bot_suffixes" json:"bot_suffixes"`
	Messages       []string `mapstructure:"messages" json:"messages"`
	Comments       []string `mapstructure:"comments" json:"comments"`
}

// Output defines output preferences.
type Output struct {
	Color   bool `mapstructure:"color"`
	Width   int  `mapstructure:"width"`
	Samples int  `mapstructure:"samples"`
	Top     int  `mapstructure:"top"`
}

// History controls the run history database.
type History struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied. A .env file in the
// working directory is loaded first; variables already set in the
// environment win.
func Load(cfgFile string) (*Config, error) {
	if err := loadDotEnv(DefaultEnvFile); err != nil {
		return nil, err
	}

	v := viper.New()

	v.SetDefault("github.token", "")
	v.SetDefault("github.api_url", DefaultGitHub.APIURL)
	v.SetDefault("github.workers", DefaultGitHub.Workers)
	v.SetDefault("github.max_commits", DefaultGitHub.MaxCommits)
	v.SetDefault("github.branch", DefaultGitHub.Branch)
	v.SetDefault("patterns.generated_files", DefaultGeneratedFilePatterns)
	v.SetDefault("patterns.bot_suffixes", DefaultBotSuffixes)
	v.SetDefault("patterns.messages", DefaultMessagePatterns)
	v.SetDefault("patterns.comments", DefaultCommentPatterns)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)
	v.SetDefault("output.samples", DefaultOutput.Samples)
	v.SetDefault("output.top", DefaultOutput.Top)
	v.SetDefault("history.enabled", DefaultHistory.Enabled)
	v.SetDefault("history.path", DBPath())
	// Empty defers to LOG_LEVEL, then warn.
	v.SetDefault("log_level", "")
	setPolicyDefaults(v, scoring.DefaultPolicy())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The bare GITHUB_TOKEN is what every other GitHub tool reads.
	if err := v.BindEnv("github.token", EnvPrefix+"_GITHUB_TOKEN", "GITHUB_TOKEN"); err != nil {
		return nil, err
	}

	if cfgFile == "" {
		cfgFile = ConfigPath()
	}
	v.SetConfigFile(expandPath(cfgFile))

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.History.Path = expandPath(cfg.History.Path)

	return &cfg, nil
}

// loadDotEnv loads path into the process environment when it exists.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// setPolicyDefaults registers every policy key so that partial config files
// and environment overrides merge with the built-in values.
func setPolicyDefaults(v *viper.Viper, p scoring.Policy) {
	v.SetDefault("policy.session_gap_minutes", p.SessionGapMinutes)
	v.SetDefault("policy.min_commit_gap_minutes", p.MinCommitGapMinutes)
	v.SetDefault("policy.min_session_minutes", p.MinSessionMinutes)

	v.SetDefault("policy.lpm.clearly_human", p.LPM.ClearlyHuman)
	v.SetDefault("policy.lpm.human_upper", p.LPM.HumanUpper)
	v.SetDefault("policy.lpm.suspicious", p.LPM.Suspicious)
	v.SetDefault("policy.lpm.very_suspicious", p.LPM.VerySuspicious)

	v.SetDefault("policy.daily_output.extreme", p.DailyOutput.Extreme)
	v.SetDefault("policy.daily_output.high", p.DailyOutput.High)
	v.SetDefault("policy.daily_output.elevated", p.DailyOutput.Elevated)
	v.SetDefault("policy.daily_output.low", p.DailyOutput.Low)

	v.SetDefault("policy.velocity.very_suspicious_points", p.Velocity.VerySuspiciousPoints)
	v.SetDefault("policy.velocity.suspicious_points", p.Velocity.SuspiciousPoints)
	v.SetDefault("policy.velocity.human_upper_points", p.Velocity.HumanUpperPoints)
	v.SetDefault("policy.velocity.clearly_human_points", p.Velocity.ClearlyHumanPoints)
	v.SetDefault("policy.velocity.slow_points", p.Velocity.SlowPoints)
	v.SetDefault("policy.velocity.slow_min_intervals", p.Velocity.SlowMinIntervals)
	v.SetDefault("policy.velocity.fast_share", p.Velocity.FastShare)
	v.SetDefault("policy.velocity.fast_share_scale", p.Velocity.FastShareScale)
	v.SetDefault("policy.velocity.fast_share_cap", p.Velocity.FastShareCap)

	v.SetDefault("policy.productivity.very_suspicious_points", p.Productivity.VerySuspiciousPoints)
	v.SetDefault("policy.productivity.suspicious_points", p.Productivity.SuspiciousPoints)
	v.SetDefault("policy.productivity.human_upper_points", p.Productivity.HumanUpperPoints)
	v.SetDefault("policy.productivity.slow_points", p.Productivity.SlowPoints)
	v.SetDefault("policy.productivity.slow_min_sessions", p.Productivity.SlowMinSessions)

	v.SetDefault("policy.uniformity.min_commits", p.Uniformity.MinCommits)
	v.SetDefault("policy.uniformity.strict_cv", p.Uniformity.StrictCV)
	v.SetDefault("policy.uniformity.strict_mean", p.Uniformity.StrictMean)
	v.SetDefault("policy.uniformity.strict_points", p.Uniformity.StrictPoints)
	v.SetDefault("policy.uniformity.loose_cv", p.Uniformity.LooseCV)
	v.SetDefault("policy.uniformity.loose_mean", p.Uniformity.LooseMean)
	v.SetDefault("policy.uniformity.loose_points", p.Uniformity.LoosePoints)
	v.SetDefault("policy.uniformity.varied_cv", p.Uniformity.VariedCV)
	v.SetDefault("policy.uniformity.varied_points", p.Uniformity.VariedPoints)

	v.SetDefault("policy.messages.high_ratio", p.Messages.HighRatio)
	v.SetDefault("policy.messages.high_points", p.Messages.HighPoints)
	v.SetDefault("policy.messages.mid_ratio", p.Messages.MidRatio)
	v.SetDefault("policy.messages.mid_points", p.Messages.MidPoints)
	v.SetDefault("policy.messages.low_ratio", p.Messages.LowRatio)
	v.SetDefault("policy.messages.low_points", p.Messages.LowPoints)
	v.SetDefault("policy.messages.slow_damping", p.Messages.SlowDamping)
	v.SetDefault("policy.messages.max_samples", p.Messages.MaxSamples)

	v.SetDefault("policy.bursts.max_minutes", p.Bursts.MaxMinutes)
	v.SetDefault("policy.bursts.min_lines", p.Bursts.MinLines)
	v.SetDefault("policy.bursts.many_count", p.Bursts.ManyCount)
	v.SetDefault("policy.bursts.many_points", p.Bursts.ManyPoints)
	v.SetDefault("policy.bursts.some_count", p.Bursts.SomeCount)
	v.SetDefault("policy.bursts.some_points", p.Bursts.SomePoints)
	v.SetDefault("policy.bursts.one_points", p.Bursts.OnePoints)
	v.SetDefault("policy.bursts.productivity_damping", p.Bursts.ProductivityDamping)

	v.SetDefault("policy.authors.many_authors", p.Authors.ManyAuthors)
	v.SetDefault("policy.authors.many_points", p.Authors.ManyPoints)
	v.SetDefault("policy.authors.few_authors", p.Authors.FewAuthors)
	v.SetDefault("policy.authors.few_points", p.Authors.FewPoints)
	v.SetDefault("policy.authors.pair_points", p.Authors.PairPoints)

	v.SetDefault("policy.extreme.min_lines", p.Extreme.MinLines)
	v.SetDefault("policy.extreme.min_lpm", p.Extreme.MinLPM)
	v.SetDefault("policy.extreme.many_count", p.Extreme.ManyCount)
	v.SetDefault("policy.extreme.many_points", p.Extreme.ManyPoints)
	v.SetDefault("policy.extreme.any_points", p.Extreme.AnyPoints)

	v.SetDefault("policy.off_hours.min_commits", p.OffHours.MinCommits)
	v.SetDefault("policy.off_hours.end_hour", p.OffHours.EndHour)
	v.SetDefault("policy.off_hours.high_share", p.OffHours.HighShare)
	v.SetDefault("policy.off_hours.high_points", p.OffHours.HighPoints)
	v.SetDefault("policy.off_hours.mid_share", p.OffHours.MidShare)
	v.SetDefault("policy.off_hours.mid_points", p.OffHours.MidPoints)

	v.SetDefault("policy.comments.min_lines", p.Comments.MinLines)
	v.SetDefault("policy.comments.high_ratio", p.Comments.HighRatio)
	v.SetDefault("policy.comments.high_points", p.Comments.HighPoints)
	v.SetDefault("policy.comments.mid_ratio", p.Comments.MidRatio)
	v.SetDefault("policy.comments.mid_points", p.Comments.MidPoints)
	v.SetDefault("policy.comments.sparse_ratio", p.Comments.SparseRatio)
	v.SetDefault("policy.comments.sparse_points", p.Comments.SparsePoints)

	v.SetDefault("policy.entropy.min_added_lines", p.Entropy.MinAddedLines)
	v.SetDefault("policy.entropy.min_commits", p.Entropy.MinCommits)
	v.SetDefault("policy.entropy.low_bits", p.Entropy.LowBits)
	v.SetDefault("policy.entropy.low_points", p.Entropy.LowPoints)
	v.SetDefault("policy.entropy.mid_bits", p.Entropy.MidBits)
	v.SetDefault("policy.entropy.mid_points", p.Entropy.MidPoints)

	v.SetDefault("policy.scale.min_commits", p.Scale.MinCommits)
	v.SetDefault("policy.scale.extreme_points", p.Scale.ExtremePoints)
	v.SetDefault("policy.scale.high_points", p.Scale.HighPoints)
	v.SetDefault("policy.scale.elevated_points", p.Scale.ElevatedPoints)
	v.SetDefault("policy.scale.low_points", p.Scale.LowPoints)

	v.SetDefault("policy.generated.note_share", p.Generated.NoteShare)

	v.SetDefault("policy.verdicts.very_likely", p.Verdicts.VeryLikely)
	v.SetDefault("policy.verdicts.likely", p.Verdicts.Likely)
	v.SetDefault("policy.verdicts.possibly", p.Verdicts.Possibly)
	v.SetDefault("policy.verdicts.likely_human", p.Verdicts.LikelyHuman)
}

// DBPath returns the full path to the SQLite database.
func DBPath() string {
	return filepath.Join(ConfigDir(), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}

// ConfigPath returns the config file read when --config is not given.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), DefaultConfigFile)
}
