package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/commitprobe/internal/output"
	"github.com/blackwell-systems/commitprobe/internal/store"
)

var (
	historyLimit   int
	historyCompare bool
)

var historyCmd = &cobra.Command{
	Use:   "history [repository]",
	Short: "Show tracked scores for a repository over time",
	Long: `List runs recorded with 'analyze --track', newest first, with a trend arrow
against the run before each one. With --compare, show per-signal changes
between the two most recent runs. Without a repository, list every tracked
repository.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Number of runs to show")
	historyCmd.Flags().BoolVar(&historyCompare, "compare", false, "Show per-signal deltas between the latest two runs")
	rootCmd.AddCommand(historyCmd)
}

type historyJSON struct {
	Repository string              `json:"repository"`
	Runs       []store.Run         `json:"runs"`
	Deltas     []store.SignalDelta `json:"deltas,omitempty"`
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer func() { _ = db.Close() }()

	w := cmd.OutOrStdout()

	if len(args) == 0 {
		repos, err := db.Repositories()
		if err != nil {
			return fmt.Errorf("listing repositories: %w", err)
		}
		if flagJSON {
			return output.RenderJSON(w, repos)
		}
		if len(repos) == 0 {
			fmt.Fprintln(w, "No runs recorded yet. Use 'commitprobe analyze --track'.")
			return nil
		}
		for _, r := range repos {
			fmt.Fprintln(w, r)
		}
		return nil
	}

	repo := args[0]
	limit := historyLimit
	if historyCompare && limit < 2 {
		limit = 2
	}
	// One extra run gives the oldest shown row a trend.
	runs, err := db.ListRuns(repo, limit+1)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}

	var deltas []store.SignalDelta
	if historyCompare && len(runs) >= 2 {
		deltas = store.Compare(runs[1], runs[0])
	}
	shown := runs[:min(len(runs), limit)]

	if flagJSON {
		return output.RenderJSON(w, historyJSON{Repository: repo, Runs: shown, Deltas: deltas})
	}

	if len(runs) == 0 {
		fmt.Fprintf(w, "No runs recorded for %s.\n", repo)
		return nil
	}

	fmt.Fprintln(w, output.Section("History: "+repo, 0))
	renderRuns(w, runs, len(shown))

	if historyCompare {
		fmt.Fprintln(w, output.Section("Signal changes since previous run", 0))
		if len(runs) < 2 {
			fmt.Fprintln(w, " Only one run recorded; nothing to compare.")
			return nil
		}
		renderDeltas(w, deltas)
	}
	return nil
}

// renderRuns prints the first n runs; runs[i+1] is the run before runs[i].
func renderRuns(w io.Writer, runs []store.Run, n int) {
	t := output.NewTable("Taken", "Score", "Trend", "Verdict", "Commits", "Source")
	for i := 0; i < n; i++ {
		r := runs[i]
		trend := ""
		if i+1 < len(runs) {
			trend = output.TrendArrow(r.Score-runs[i+1].Score, false)
		}
		t.AddRow(
			r.TakenAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%.1f", r.Score),
			trend,
			r.Verdict,
			fmt.Sprint(r.Commits),
			r.Source,
		)
	}
	fmt.Fprint(w, indentBlock(t.Render()))
}

func renderDeltas(w io.Writer, deltas []store.SignalDelta) {
	t := output.NewTable("Signal", "Previous", "Current", "Change")
	for _, d := range deltas {
		t.AddRow(d.Name,
			fmt.Sprintf("%+.1f", d.Previous),
			fmt.Sprintf("%+.1f", d.Current),
			output.TrendArrow(d.Delta, false),
		)
	}
	fmt.Fprint(w, indentBlock(t.Render()))
}

func indentBlock(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = " " + l
	}
	return strings.Join(lines, "\n") + "\n"
}
