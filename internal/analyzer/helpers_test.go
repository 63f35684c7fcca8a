package analyzer

import (
	"time"

	"github.com/blackwell-systems/commitprobe/internal/commits"
)

var base = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

// rec builds a human commit minutes after base.
func rec(sha, author string, minutes float64, lines int) commits.CommitRecord {
	return commits.CommitRecord{
		SHA:               sha,
		Author:            author,
		Timestamp:         base.Add(time.Duration(minutes * float64(time.Minute))),
		AuthoredAdditions: lines,
		AuthoredTotal:     lines,
		FilesChanged:      1,
	}
}

func botRec(sha, author string, minutes float64, lines int) commits.CommitRecord {
	r := rec(sha, author, minutes, lines)
	r.Bot = true
	return r
}

// matchFunc adapts a function to Matcher.
type matchFunc func(string) bool

func (f matchFunc) Match(s string) bool { return f(s) }
