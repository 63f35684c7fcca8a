package analyzer

import (
	"time"

	"github.com/blackwell-systems/commitprobe/internal/commits"
)

// Session is a maximal run of one author's commits with no gap larger than
// the session gap.
type Session struct {
	Author  string                 `json:"author"`
	Commits []commits.CommitRecord `json:"commits"`
}

// Start is the timestamp of the first commit.
func (s Session) Start() time.Time {
	if len(s.Commits) == 0 {
		return time.Time{}
	}
	return s.Commits[0].Timestamp
}

// End is the timestamp of the last commit.
func (s Session) End() time.Time {
	if len(s.Commits) == 0 {
		return time.Time{}
	}
	return s.Commits[len(s.Commits)-1].Timestamp
}

// DurationMinutes is zero for a single-commit session.
func (s Session) DurationMinutes() float64 {
	return s.End().Sub(s.Start()).Minutes()
}

// TotalLines sums authored lines across the session.
func (s Session) TotalLines() int {
	total := 0
	for _, c := range s.Commits {
		total += c.AuthoredTotal
	}
	return total
}

// Len is the number of commits in the session.
func (s Session) Len() int { return len(s.Commits) }

// BuildSessions partitions each non-bot author's commits into sessions.
// A new session starts whenever the gap to the author's previous commit
// exceeds gapMinutes. records must be sorted ascending by timestamp.
//
// Sessions are returned grouped by author in order of each author's first
// commit, and chronologically within an author.
func BuildSessions(records []commits.CommitRecord, gapMinutes float64) []Session {
	var order []string
	byAuthor := make(map[string][]commits.CommitRecord)

	for _, c := range records {
		if c.Bot {
			continue
		}
		if _, seen := byAuthor[c.Author]; !seen {
			order = append(order, c.Author)
		}
		byAuthor[c.Author] = append(byAuthor[c.Author], c)
	}

	var sessions []Session
	for _, author := range order {
		list := byAuthor[author]
		current := Session{Author: author, Commits: []commits.CommitRecord{list[0]}}

		for _, c := range list[1:] {
			gap := c.Timestamp.Sub(current.End()).Minutes()
			if gap > gapMinutes {
				sessions = append(sessions, current)
				current = Session{Author: author}
			}
			current.Commits = append(current.Commits, c)
		}
		sessions = append(sessions, current)
	}

	return sessions
}
