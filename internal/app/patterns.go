package app

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/commitprobe/internal/config"
	"github.com/blackwell-systems/commitprobe/internal/output"
	"github.com/blackwell-systems/commitprobe/internal/scoring"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Print the active pattern tables and scoring policy",
	Long: `Print the generated-file, bot, commit message and comment patterns and the
scoring policy after configuration and environment overrides are applied.`,
	Args: cobra.NoArgs,
	RunE: runPatterns,
}

func init() {
	rootCmd.AddCommand(patternsCmd)
}

type patternsJSON struct {
	Patterns config.Patterns `json:"patterns"`
	Policy   scoring.Policy  `json:"policy"`
}

func runPatterns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Fail on bad patterns the same way analyze would.
	if _, err := newDetector(cfg); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		return output.RenderJSON(w, patternsJSON{Patterns: cfg.Patterns, Policy: cfg.Policy})
	}

	printPatterns(w, "Generated and vendored files", cfg.Patterns.GeneratedFiles)
	printPatterns(w, "Bot author suffixes", cfg.Patterns.BotSuffixes)
	printPatterns(w, "LLM-style commit messages", cfg.Patterns.Messages)
	printPatterns(w, "Comment lines", cfg.Patterns.Comments)

	fmt.Fprintln(w, output.Section("Scoring policy", 0))
	return output.RenderJSON(w, cfg.Policy)
}

func printPatterns(w io.Writer, title string, patterns []string) {
	fmt.Fprintln(w, output.Section(fmt.Sprintf("%s (%d)", title, len(patterns)), 0))
	for _, p := range patterns {
		fmt.Fprintf(w, "   %s\n", p)
	}
}
