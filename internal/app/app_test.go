package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/commitprobe/internal/commits"
	"github.com/blackwell-systems/commitprobe/internal/output"
	ghsource "github.com/blackwell-systems/commitprobe/internal/source/github"
	"github.com/blackwell-systems/commitprobe/internal/source/jsonfile"
	"github.com/blackwell-systems/commitprobe/internal/store"
)

// execute runs the command tree in an isolated environment and returns
// stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	output.SetNoColor(true)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default so state does not leak
// between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("LOG_LEVEL", "error")
	dbPath := filepath.Join(home, "history.db")
	t.Setenv("COMMITPROBE_HISTORY_PATH", dbPath)
	return dbPath
}

func fastHistory(n int) []commits.RawCommit {
	start := time.Date(2025, 2, 3, 1, 0, 0, 0, time.UTC)
	out := make([]commits.RawCommit, n)
	for i := range out {
		out[i] = commits.RawCommit{
			SHA:         fmt.Sprintf("%040x", i+1),
			Message:     fmt.Sprintf("Implement feature %d with comprehensive error handling", i),
			AuthorLogin: "solo",
			Timestamp:   start.Add(time.Duration(i*5) * time.Minute),
			Files: []commits.RawFile{{
				Path:      fmt.Sprintf("pkg/f%d.go", i),
				Additions: 500,
				Patch:     "+// Package handles the feature.\n+func f() error {\n+\treturn nil\n+}",
			}},
		}
	}
	return out
}

func writeExport(t *testing.T, repo string, raws []commits.RawCommit) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, jsonfile.Write(path, &jsonfile.Document{Repository: repo, Source: "github", Commits: raws}))
	return path
}

type analyzeOutput struct {
	Repository string `json:"repository"`
	Source     string `json:"source"`
	Commits    int    `json:"commits"`
	Result     struct {
		Score   float64 `json:"score"`
		Verdict string  `json:"verdict"`
		Signals []struct {
			Name   string  `json:"name"`
			Points float64 `json:"points"`
		} `json:"signals"`
	} `json:"result"`
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{"analyze": false, "history": false, "patterns": false}
	for _, cmd := range rootCmd.Commands() {
		name := strings.Fields(cmd.Use)[0]
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		assert.True(t, found, "%s subcommand not registered", name)
	}
}

func TestAnalyze_RequiresArgument(t *testing.T) {
	isolate(t)
	_, err := execute(t, "analyze")
	assert.ErrorContains(t, err, "repository argument is required")
}

func TestAnalyze_FromFileJSON(t *testing.T) {
	isolate(t)
	path := writeExport(t, "octo/fast", fastHistory(12))

	out, err := execute(t, "analyze", "--from-file", path, "--json")
	require.NoError(t, err)

	var got analyzeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "octo/fast", got.Repository)
	assert.Equal(t, sourceFile, got.Source)
	assert.Equal(t, 12, got.Commits)
	assert.GreaterOrEqual(t, got.Result.Score, 75.0)
	assert.LessOrEqual(t, got.Result.Score, 100.0)
	assert.Equal(t, "very_likely", got.Result.Verdict)
	assert.Len(t, got.Result.Signals, 12)
}

func TestAnalyze_FromFileHumanReport(t *testing.T) {
	isolate(t)
	path := writeExport(t, "octo/fast", fastHistory(12))

	out, err := execute(t, "analyze", "--from-file", path, "--samples", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "octo/fast")
	assert.Contains(t, out, "LLM likelihood score")
	assert.Contains(t, out, "NOT definitive proof")
	assert.Equal(t, 1, strings.Count(out, `"Implement feature`))
}

func TestAnalyze_TrackThenHistory(t *testing.T) {
	dbPath := isolate(t)
	path := writeExport(t, "octo/fast", fastHistory(12))

	_, err := execute(t, "analyze", "--from-file", path, "--track", "--json")
	require.NoError(t, err)
	_, err = execute(t, "analyze", "--from-file", writeExport(t, "octo/fast", fastHistory(6)), "--track", "--json")
	require.NoError(t, err)

	out, err := execute(t, "history", "octo/fast", "--compare", "--json")
	require.NoError(t, err)

	var got historyJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Runs, 2)
	assert.Equal(t, 6, got.Runs[0].Commits)
	assert.Equal(t, 12, got.Runs[1].Commits)
	assert.Len(t, got.Deltas, 12)

	out, err = execute(t, "history", "octo/fast", "--compare")
	require.NoError(t, err)
	assert.Contains(t, out, "History: octo/fast")
	assert.Contains(t, out, "Signal changes since previous run")

	out, err = execute(t, "history")
	require.NoError(t, err)
	assert.Equal(t, "octo/fast\n", out)

	db, err := store.Open(dbPath)
	require.NoError(t, err)
	defer db.Close()
	runs, err := db.ListRuns("octo/fast", 0)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
	assert.Equal(t, appVersion, runs[0].Version)
}

func TestHistory_Empty(t *testing.T) {
	isolate(t)
	out, err := execute(t, "history", "nobody/nothing")
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded for nobody/nothing")
}

func TestAnalyze_LocalExportRescoresIdentically(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	start := time.Date(2025, 1, 6, 14, 0, 0, 0, time.UTC)
	for i := range 6 {
		name := fmt.Sprintf("file%d.go", i)
		body := strings.Repeat(fmt.Sprintf("var v%d = %d\n", i, i), 40+i*10)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
		_, err := wt.Add(name)
		require.NoError(t, err)
		_, err = wt.Commit(fmt.Sprintf("Add file %d", i), &git.CommitOptions{
			Author: &object.Signature{Name: "Dev", Email: "dev@example.com", When: start.Add(time.Duration(i*20) * time.Minute)},
		})
		require.NoError(t, err)
	}

	exportPath := filepath.Join(t.TempDir(), "local.json")
	out, err := execute(t, "analyze", "--local", dir, "--json", "--export", exportPath)
	require.NoError(t, err)
	var direct analyzeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &direct))
	assert.Equal(t, sourceLocal, direct.Source)
	assert.Equal(t, 6, direct.Commits)

	out, err = execute(t, "analyze", "--from-file", exportPath, "--json")
	require.NoError(t, err)
	var rescored analyzeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &rescored))

	assert.Equal(t, direct.Repository, rescored.Repository)
	assert.Equal(t, direct.Result, rescored.Result)
}

func TestAnalyze_InvalidRepository(t *testing.T) {
	isolate(t)
	_, err := execute(t, "analyze", "not-a-repo")
	assert.ErrorIs(t, err, ghsource.ErrInvalidRepo)
}

func TestPatterns_JSON(t *testing.T) {
	isolate(t)
	out, err := execute(t, "patterns", "--json")
	require.NoError(t, err)

	var got map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Contains(t, got["patterns"], "generated_files")
	assert.Equal(t, 120.0, got["policy"]["session_gap_minutes"])
}

func TestPatterns_InvalidPatternFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("COMMITPROBE_PATTERNS_MESSAGES", "(")
	_, err := execute(t, "patterns")
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	_, _, err := ghsource.ParseRepo("nope")
	printError(&buf, fmt.Errorf("analyze: %w", err))
	assert.Contains(t, buf.String(), "error: analyze:")
	assert.Contains(t, buf.String(), "hint:")

	buf.Reset()
	printError(&buf, errors.New("plain"))
	assert.Equal(t, "error: plain\n", buf.String())
}
