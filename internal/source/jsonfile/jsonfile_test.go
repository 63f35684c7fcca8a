package jsonfile

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/commitprobe/internal/commits"
	"github.com/blackwell-systems/commitprobe/internal/config"
	"github.com/blackwell-systems/commitprobe/internal/detect"
	"github.com/blackwell-systems/commitprobe/internal/scoring"
)

var start = time.Date(2025, 5, 1, 23, 30, 0, 0, time.FixedZone("", -7*3600))

func sampleCommits(n int) []commits.RawCommit {
	out := make([]commits.RawCommit, n)
	for i := range out {
		out[i] = commits.RawCommit{
			SHA:         fmt.Sprintf("%040x", i+1),
			Message:     fmt.Sprintf("Implement module %d with comprehensive tests", i),
			AuthorLogin: "solo",
			Timestamp:   start.Add(time.Duration(i*7) * time.Minute),
			Files: []commits.RawFile{
				{Path: fmt.Sprintf("pkg/m%d.go", i), Additions: 300 + i, Deletions: 2, Patch: "+// handles the request\n+func run() error {\n+\treturn nil\n+}\n+var x = 1"},
				{Path: "go.sum", Additions: 12},
			},
		}
	}
	return out
}

func detector(t *testing.T) *detect.Detector {
	t.Helper()
	d, err := detect.New(detect.Options{
		Policy: scoring.DefaultPolicy(),
		Patterns: detect.Patterns{
			GeneratedFiles: config.DefaultGeneratedFilePatterns,
			BotSuffixes:    config.DefaultBotSuffixes,
			Messages:       config.DefaultMessagePatterns,
			Comments:       config.DefaultCommentPatterns,
		},
	})
	require.NoError(t, err)
	return d
}

func TestWriteRead_RoundTripScoresIdentically(t *testing.T) {
	created := start.Add(-48 * time.Hour).UTC()
	doc := &Document{
		Repository: "octo/demo",
		Source:     "github",
		CreatedAt:  &created,
		Commits:    sampleCommits(12),
	}
	path := filepath.Join(t.TempDir(), "exports", "demo.json")
	require.NoError(t, Write(path, doc))
	assert.False(t, doc.ExportedAt.IsZero())

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "octo/demo", got.Repository)
	assert.Equal(t, "github", got.Source)
	require.NotNil(t, got.CreatedAt)
	assert.True(t, created.Equal(*got.CreatedAt))
	require.Len(t, got.Commits, 12)
	assert.Equal(t, doc.Commits[3].Files[0].Patch, got.Commits[3].Files[0].Patch)

	_, offset := got.Commits[0].Timestamp.Zone()
	assert.Equal(t, -7*3600, offset)

	d := detector(t)
	before, err := d.Run(detect.Input{Raw: doc.Commits, CreatedAt: doc.CreatedAt})
	require.NoError(t, err)
	after, err := d.Run(detect.Input{Raw: got.Commits, CreatedAt: got.CreatedAt})
	require.NoError(t, err)

	assert.Equal(t, before.Result, after.Result)
	assert.Equal(t, before.TimeOfDay, after.TimeOfDay)
}

func TestRead_BareArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"sha":"abc","message":"m","timestamp":"2025-01-01T10:00:00Z","files":[]}]`), 0o644))

	doc, err := Read(path)
	require.NoError(t, err)
	require.Len(t, doc.Commits, 1)
	assert.Equal(t, "abc", doc.Commits[0].SHA)
	assert.Empty(t, doc.Repository)
	assert.Nil(t, doc.CreatedAt)
}

func TestRead_DropsUndatedCommits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"sha":"dated","message":"m","timestamp":"2025-01-01T10:00:00Z","files":[]},
		{"sha":"undated","message":"m","files":[]}
	]`), 0o644))

	doc, err := Read(path)
	require.NoError(t, err)
	require.Len(t, doc.Commits, 1)
	assert.Equal(t, "dated", doc.Commits[0].SHA)
}

func TestRead_DirectoryMergesAndSkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	all := sampleCommits(4)
	early := start.Add(-72 * time.Hour)
	late := start.Add(-24 * time.Hour)

	require.NoError(t, Write(filepath.Join(dir, "a.json"), &Document{Repository: "o/r", CreatedAt: &late, Commits: all[:3]}))
	require.NoError(t, Write(filepath.Join(dir, "b.json"), &Document{Repository: "o/other", CreatedAt: &early, Commits: all[2:]}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore"), 0o644))

	doc, err := Read(dir)
	require.NoError(t, err)
	assert.Equal(t, "o/r", doc.Repository)
	assert.Len(t, doc.Commits, 4)
	require.NotNil(t, doc.CreatedAt)
	assert.True(t, early.Equal(*doc.CreatedAt))
}

func TestRead_Errors(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, os.IsNotExist(err))

	_, err = Read(t.TempDir())
	assert.ErrorContains(t, err, "no readable exports")

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"commits": 3}`), 0o644))
	_, err = Read(path)
	assert.ErrorContains(t, err, "parsing export")
}
