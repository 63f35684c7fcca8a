// Package app contains the Cobra command tree for commitprobe.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/commitprobe/internal/config"
	"github.com/blackwell-systems/commitprobe/internal/logger"
	"github.com/blackwell-systems/commitprobe/internal/output"
	ghsource "github.com/blackwell-systems/commitprobe/internal/source/github"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagDebug   bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "commitprobe",
	Short: "Estimate how likely a commit history was LLM-assisted",
	Long: `commitprobe reads a repository's commit history and scores how likely it
is that the code was produced with heavy LLM assistance. It looks at coding
velocity, session throughput, commit size uniformity, message phrasing,
bursts, author counts, time of day, comment density, diff entropy and
overall project scale.

The score is a heuristic, not proof.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "commitprobe", appVersion)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Use a subcommand:")
		fmt.Fprintln(w, "  analyze   Score a repository's commit history")
		fmt.Fprintln(w, "  history   Show tracked scores for a repository over time")
		fmt.Fprintln(w, "  patterns  Print the active pattern tables and scoring policy")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, "error:", err)
	if hint := ghsource.Suggestion(err); hint != "" {
		fmt.Fprintln(w, "hint: ", hint)
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(w, "interrupted")
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/commitprobe/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Log progress to stderr")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log debug detail to stderr")
}

// loadConfig reads configuration and applies the persistent flags to the
// logger and color settings.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.LogLevel
	switch {
	case flagDebug:
		level = "debug"
	case flagVerbose:
		level = "info"
	}
	logger.Init(level, os.Stderr)

	output.AutoColor(os.Stdout, cfg.Output.Color && !flagNoColor)
	return cfg, nil
}
