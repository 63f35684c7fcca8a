package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/commitprobe/internal/config"
	"github.com/blackwell-systems/commitprobe/internal/detect"
	"github.com/blackwell-systems/commitprobe/internal/logger"
	"github.com/blackwell-systems/commitprobe/internal/output"
	ghsource "github.com/blackwell-systems/commitprobe/internal/source/github"
	"github.com/blackwell-systems/commitprobe/internal/source/jsonfile"
	"github.com/blackwell-systems/commitprobe/internal/source/local"
	"github.com/blackwell-systems/commitprobe/internal/store"
)

// Source labels recorded in reports and run history.
const (
	sourceGitHub = "github"
	sourceLocal  = "local"
	sourceFile   = "file"
)

var (
	analyzeLocal      bool
	analyzeFromFile   string
	analyzeToken      string
	analyzeAPIURL     string
	analyzeBranch     string
	analyzeMaxCommits int
	analyzeWorkers    int
	analyzeExport     string
	analyzeTrack      bool
	analyzeSamples    int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [owner/repo | url | path]",
	Short: "Score a repository's commit history",
	Long: `Fetch a repository's commit history and score how likely it is that the
code was produced with heavy LLM assistance.

The argument is a GitHub repository (owner/repo or a github.com URL), or with
--local a path to a git checkout. With --from-file the history is read from a
previous --export instead and no argument is needed.`,
	Example: `  commitprobe analyze octocat/hello-world
  commitprobe analyze https://github.com/octocat/hello-world --max-commits 500
  commitprobe analyze --local . --branch main
  commitprobe analyze octocat/hello-world --export history.json
  commitprobe analyze --from-file history.json --config strict.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.BoolVar(&analyzeLocal, "local", false, "Treat the argument as a path to a local git repository")
	f.StringVar(&analyzeFromFile, "from-file", "", "Read commits from an exported JSON file or directory")
	f.StringVar(&analyzeToken, "token", "", "GitHub token (default: $GITHUB_TOKEN)")
	f.StringVar(&analyzeAPIURL, "api-url", "", "GitHub Enterprise API base URL")
	f.StringVar(&analyzeBranch, "branch", "", "Branch, tag or SHA to analyze (default: default branch / HEAD)")
	f.IntVar(&analyzeMaxCommits, "max-commits", config.DefaultGitHub.MaxCommits, "Maximum number of recent commits to analyze")
	f.IntVar(&analyzeWorkers, "workers", config.DefaultGitHub.Workers, "Concurrent commit detail requests")
	f.StringVar(&analyzeExport, "export", "", "Write the fetched commits to this JSON file")
	f.BoolVar(&analyzeTrack, "track", false, "Record the result in the run history")
	f.IntVar(&analyzeSamples, "samples", config.DefaultOutput.Samples, "Flagged commit messages to show")
	analyzeCmd.MarkFlagsMutuallyExclusive("local", "from-file")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeFromFile == "" && len(args) == 0 {
		return errors.New("a repository argument is required unless --from-file is given")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyAnalyzeFlags(cmd, cfg)

	det, err := newDetector(cfg)
	if err != nil {
		return err
	}

	in, err := collect(cmd.Context(), cfg, args)
	if err != nil {
		return err
	}

	if analyzeExport != "" {
		doc := &jsonfile.Document{
			Repository: in.Repository,
			Source:     in.Source,
			CreatedAt:  in.CreatedAt,
			Commits:    in.Raw,
		}
		if err := jsonfile.Write(analyzeExport, doc); err != nil {
			return fmt.Errorf("exporting commits: %w", err)
		}
		logger.Infof("exported %d commits to %s", len(in.Raw), analyzeExport)
	}

	report, err := det.Run(in)
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", in.Repository, err)
	}

	if analyzeTrack || cfg.History.Enabled {
		if err := recordRun(cfg.History.Path, report); err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		return output.RenderJSON(w, report)
	}
	return output.RenderReport(w, report, output.ReportOptions{
		Width:         cfg.Output.Width,
		Samples:       cfg.Output.Samples,
		SuspiciousLPM: cfg.Policy.LPM.Suspicious,
	})
}

// applyAnalyzeFlags lets explicitly set flags override configuration.
func applyAnalyzeFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("token") {
		cfg.GitHub.Token = analyzeToken
	}
	if f.Changed("api-url") {
		cfg.GitHub.APIURL = analyzeAPIURL
	}
	if f.Changed("branch") {
		cfg.GitHub.Branch = analyzeBranch
	}
	if f.Changed("max-commits") {
		cfg.GitHub.MaxCommits = analyzeMaxCommits
	}
	if f.Changed("workers") {
		cfg.GitHub.Workers = analyzeWorkers
	}
	if f.Changed("samples") {
		cfg.Output.Samples = analyzeSamples
	}
}

func newDetector(cfg *config.Config) (*detect.Detector, error) {
	det, err := detect.New(detectOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return det, nil
}

func detectOptions(cfg *config.Config) detect.Options {
	return detect.Options{
		Policy: cfg.Policy,
		Patterns: detect.Patterns{
			GeneratedFiles: cfg.Patterns.GeneratedFiles,
			BotSuffixes:    cfg.Patterns.BotSuffixes,
			Messages:       cfg.Patterns.Messages,
			Comments:       cfg.Patterns.Comments,
		},
		TopAuthors:   cfg.Output.Top,
		TopIntervals: cfg.Output.Top,
	}
}

// collect materializes the complete commit set from the selected source.
func collect(ctx context.Context, cfg *config.Config, args []string) (detect.Input, error) {
	switch {
	case analyzeFromFile != "":
		return collectFile(analyzeFromFile, args)
	case analyzeLocal:
		return collectLocal(ctx, cfg, args[0])
	default:
		return collectGitHub(ctx, cfg, args[0])
	}
}

func collectFile(path string, args []string) (detect.Input, error) {
	doc, err := jsonfile.Read(path)
	if err != nil {
		return detect.Input{}, fmt.Errorf("reading %s: %w", path, err)
	}
	name := doc.Repository
	switch {
	case len(args) > 0:
		name = args[0]
	case name == "":
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return detect.Input{
		Repository: name,
		Source:     sourceFile,
		Raw:        doc.Commits,
		CreatedAt:  doc.CreatedAt,
	}, nil
}

func collectLocal(ctx context.Context, cfg *config.Config, path string) (detect.Input, error) {
	r, err := local.Open(path)
	if err != nil {
		return detect.Input{}, err
	}
	raws, err := r.Read(ctx, local.Options{
		Branch:     cfg.GitHub.Branch,
		MaxCommits: cfg.GitHub.MaxCommits,
	})
	if err != nil {
		return detect.Input{}, fmt.Errorf("reading history of %s: %w", path, err)
	}
	return detect.Input{Repository: r.Name(), Source: sourceLocal, Raw: raws}, nil
}

func collectGitHub(ctx context.Context, cfg *config.Config, arg string) (detect.Input, error) {
	owner, repo, err := ghsource.ParseRepo(arg)
	if err != nil {
		return detect.Input{}, err
	}

	client, err := ghsource.NewClient(ctx, cfg.GitHub.Token, cfg.GitHub.APIURL)
	if err != nil {
		return detect.Input{}, err
	}

	opts := ghsource.FetchOptions{
		Branch:     cfg.GitHub.Branch,
		MaxCommits: cfg.GitHub.MaxCommits,
		Workers:    cfg.GitHub.Workers,
	}
	if !flagJSON && output.IsTerminal(os.Stderr) {
		opts.Progress = output.NewProgress(os.Stderr, "fetching "+owner+"/"+repo).Update
	}

	res, err := client.Fetch(ctx, owner, repo, opts)
	if err != nil {
		return detect.Input{}, err
	}
	return detect.Input{
		Repository: owner + "/" + repo,
		Source:     sourceGitHub,
		Raw:        res.Commits,
		CreatedAt:  res.CreatedAt,
	}, nil
}

func recordRun(path string, report *detect.Report) error {
	db, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer func() { _ = db.Close() }()

	run := runFromReport(report)
	if _, err := db.SaveRun(&run); err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	logger.WithField("repo", report.Repository).Infof("recorded run %d", run.ID)
	return nil
}

func runFromReport(report *detect.Report) store.Run {
	run := store.Run{
		Repository: report.Repository,
		Source:     report.Source,
		Score:      report.Result.Score,
		Raw:        report.Result.Raw,
		Verdict:    string(report.Result.Verdict),
		Commits:    report.Commits,
		Version:    appVersion,
	}
	for _, s := range report.Result.Signals {
		run.Signals = append(run.Signals, store.SignalPoints{Name: s.Name, Points: s.Points})
	}
	return run
}
