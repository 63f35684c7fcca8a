package analyzer

import (
	"testing"

	"github.com/blackwell-systems/commitprobe/internal/commits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shas(s Session) []string {
	out := make([]string, 0, s.Len())
	for _, c := range s.Commits {
		out = append(out, c.SHA)
	}
	return out
}

func TestBuildSessions_KnownStructure(t *testing.T) {
	records := []commits.CommitRecord{
		rec("a1", "alice", 0, 10),
		rec("b1", "bob", 10, 5),
		rec("a2", "alice", 60, 10),
		rec("a3", "alice", 180, 10), // exactly 120 after a2: same session
		rec("b2", "bob", 200, 5),    // 190 after b1: new session
		rec("a4", "alice", 301, 10), // 121 after a3: new session
		rec("a5", "alice", 310, 10),
	}

	sessions := BuildSessions(records, 120)

	require.Len(t, sessions, 4)
	assert.Equal(t, "alice", sessions[0].Author)
	assert.Equal(t, []string{"a1", "a2", "a3"}, shas(sessions[0]))
	assert.Equal(t, []string{"a4", "a5"}, shas(sessions[1]))
	assert.Equal(t, "bob", sessions[2].Author)
	assert.Equal(t, []string{"b1"}, shas(sessions[2]))
	assert.Equal(t, []string{"b2"}, shas(sessions[3]))

	assert.InDelta(t, 180.0, sessions[0].DurationMinutes(), 1e-9)
	assert.Equal(t, 30, sessions[0].TotalLines())
	assert.Zero(t, sessions[2].DurationMinutes())
}

func TestBuildSessions_PartitionProperty(t *testing.T) {
	var records []commits.CommitRecord
	offsets := []float64{0, 30, 200, 210, 500, 505, 506, 900, 1030, 1200}
	for i, m := range offsets {
		author := "x"
		if i%3 == 0 {
			author = "y"
		}
		records = append(records, rec(string(rune('a'+i)), author, m, i+1))
	}
	records = append(records, botRec("bot", "ci[bot]", 50, 10))
	commits.SortChronological(records)

	const gap = 120.0
	sessions := BuildSessions(records, gap)

	seen := make(map[string]int)
	lastEnd := make(map[string]Session)
	for _, s := range sessions {
		require.NotZero(t, s.Len())
		for i, c := range s.Commits {
			assert.Equal(t, s.Author, c.Author)
			seen[c.SHA]++
			if i > 0 {
				d := c.Timestamp.Sub(s.Commits[i-1].Timestamp).Minutes()
				assert.LessOrEqual(t, d, gap)
			}
		}
		if prev, ok := lastEnd[s.Author]; ok {
			d := s.Start().Sub(prev.End()).Minutes()
			assert.Greater(t, d, gap)
		}
		lastEnd[s.Author] = s
	}

	for _, c := range records {
		if c.Bot {
			assert.Zero(t, seen[c.SHA], "bot commit %s must not be sessioned", c.SHA)
			continue
		}
		assert.Equal(t, 1, seen[c.SHA], "commit %s", c.SHA)
	}
}

func TestBuildSessions_Empty(t *testing.T) {
	assert.Empty(t, BuildSessions(nil, 120))
}

func TestAnalyzeProductivity(t *testing.T) {
	sessions := []Session{
		{Author: "a", Commits: []commits.CommitRecord{rec("1", "a", 0, 100), rec("2", "a", 10, 100)}}, // 20 lpm
		{Author: "a", Commits: []commits.CommitRecord{rec("3", "a", 0, 10), rec("4", "a", 3, 10)}},    // too short
		{Author: "a", Commits: []commits.CommitRecord{rec("5", "a", 0, 50)}},                          // single
		{Author: "b", Commits: []commits.CommitRecord{rec("6", "b", 0, 30), rec("7", "b", 60, 30)}},   // 1 lpm
	}

	p := AnalyzeProductivity(sessions, 5)

	assert.Equal(t, 4, p.Sessions)
	assert.Equal(t, 3, p.MultiCommit)
	assert.Equal(t, 2, p.Rated)
	assert.InDelta(t, 10.5, p.Median, 1e-9)
	assert.InDelta(t, 10.5, p.TrimmedMean, 1e-9)
}

func TestAnalyzeBursts(t *testing.T) {
	th := BurstThresholds{MaxMinutes: 30, MinLines: 300, MinSessionMinutes: 5, SustainedLPM: 10}
	sessions := []Session{
		// Rapid: 20 minutes, 400 lines. Also fast enough to be sustained,
		// but counted once.
		{Commits: []commits.CommitRecord{rec("1", "a", 0, 200), rec("2", "a", 20, 200)}},
		// Sustained: 60 minutes, 900 lines = 15 lpm.
		{Commits: []commits.CommitRecord{rec("3", "a", 0, 450), rec("4", "a", 60, 450)}},
		// Neither: 60 minutes, 120 lines.
		{Commits: []commits.CommitRecord{rec("5", "a", 0, 60), rec("6", "a", 60, 60)}},
		// Single commit sessions never count.
		{Commits: []commits.CommitRecord{rec("7", "a", 0, 5000)}},
	}

	b := AnalyzeBursts(sessions, th)

	assert.Equal(t, 1, b.Rapid)
	assert.Equal(t, 1, b.Sustained)
	assert.Equal(t, 2, b.Total)
}
