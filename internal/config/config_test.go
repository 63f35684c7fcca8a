package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/commitprobe/internal/classify"
	"github.com/blackwell-systems/commitprobe/internal/scoring"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, scoring.DefaultPolicy(), cfg.Policy)
	assert.Equal(t, DefaultGitHub.Workers, cfg.GitHub.Workers)
	assert.Equal(t, DefaultGitHub.MaxCommits, cfg.GitHub.MaxCommits)
	assert.Equal(t, DefaultMessagePatterns, cfg.Patterns.Messages)
	assert.Equal(t, DefaultBotSuffixes, cfg.Patterns.BotSuffixes)
	assert.Equal(t, DBPath(), cfg.History.Path)
	assert.False(t, cfg.History.Enabled)
}

func TestLoad_ReadsDefaultLocation(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GITHUB_TOKEN", "")

	require.NoError(t, os.MkdirAll(ConfigDir(), 0o755))
	require.NoError(t, os.WriteFile(ConfigPath(), []byte("github:\n  max_commits: 42\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.GitHub.MaxCommits)
	assert.Equal(t, filepath.Join(ConfigDir(), DefaultDBName), cfg.History.Path)
}

func TestLoad_NoDefaultFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GITHUB_TOKEN", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultGitHub.MaxCommits, cfg.GitHub.MaxCommits)
}

func TestLoad_PartialOverrideKeepsOtherDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
policy:
  session_gap_minutes: 90
  lpm:
    suspicious: 6
patterns:
  bot_suffixes: ["-automation"]
github:
  max_commits: 50
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	def := scoring.DefaultPolicy()
	assert.Equal(t, 90.0, cfg.Policy.SessionGapMinutes)
	assert.Equal(t, 6.0, cfg.Policy.LPM.Suspicious)
	assert.Equal(t, def.LPM.VerySuspicious, cfg.Policy.LPM.VerySuspicious)
	assert.Equal(t, def.Velocity, cfg.Policy.Velocity)
	assert.Equal(t, []string{"-automation"}, cfg.Patterns.BotSuffixes)
	assert.Equal(t, DefaultCommentPatterns, cfg.Patterns.Comments)
	assert.Equal(t, 50, cfg.GitHub.MaxCommits)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("COMMITPROBE_GITHUB_WORKERS", "3")
	t.Setenv("GITHUB_TOKEN", "ghp_from_env")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.GitHub.Workers)
	assert.Equal(t, "ghp_from_env", cfg.GitHub.Token)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("policy: [unterminated"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("COMMITPROBE_TEST_DOTENV=loaded\n"), 0o644))
	t.Setenv("COMMITPROBE_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("COMMITPROBE_TEST_DOTENV"))

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("COMMITPROBE_TEST_DOTENV"))

	assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestDefaultPatternsCompile(t *testing.T) {
	for name, list := range map[string][]string{
		"generated": DefaultGeneratedFilePatterns,
		"messages":  DefaultMessagePatterns,
		"comments":  DefaultCommentPatterns,
	} {
		_, err := classify.Compile(list)
		assert.NoError(t, err, name)
	}
}

func TestDefaultMessagePatterns_ImplementOpener(t *testing.T) {
	ps := classify.MustCompile(DefaultMessagePatterns)

	idx, ok := ps.First("implement user authentication module")
	require.True(t, ok)
	assert.Equal(t, `^implement\s+\w+`, ps.Sources()[idx])

	assert.False(t, ps.Match("fix typo in readme"))
	assert.False(t, ps.Match("wip"))
}

func TestDefaultCommentPatterns(t *testing.T) {
	ps := classify.MustCompile(DefaultCommentPatterns)

	for _, line := range []string{"// note", "  # comment", "#", "/* block", " * continued", " */", "<!-- html -->", "-- sql", `"""doc`} {
		assert.True(t, ps.Match(line), line)
	}
	for _, line := range []string{"#!/bin/sh", "x := 1", "*ptr = 2", "a--", "return nil"} {
		assert.False(t, ps.Match(line), line)
	}
}

func TestDefaultGeneratedFilePatterns(t *testing.T) {
	c, err := classify.New(DefaultGeneratedFilePatterns, DefaultBotSuffixes)
	require.NoError(t, err)

	for _, p := range []string{"package-lock.json", "web/yarn.lock", "Cargo.lock", "vendor/a/b.go", "dist/app.js", "logo.png", "api/v1/service.pb.go", "proto/x_pb2.py"} {
		assert.True(t, c.IsGeneratedFile(p), p)
	}
	for _, p := range []string{"main.go", "src/app.ts", "README.md"} {
		assert.False(t, c.IsGeneratedFile(p), p)
	}
	assert.True(t, c.IsBotAuthor("dependabot[bot]"))
	assert.True(t, c.IsBotAuthor("github-actions"))
	assert.False(t, c.IsBotAuthor("octocat"))
}
