package commits

import (
	"sort"
	"strings"
)

// Classifier is the labelling contract the normalizer depends on.
type Classifier interface {
	IsGeneratedFile(path string) bool
	IsBotAuthor(identity string) bool
}

// Normalize converts a raw commit into a CommitRecord. Each file's change
// is attributed wholly to the authored or the generated side; negative
// counts from a malformed source are treated as zero.
func Normalize(raw RawCommit, cls Classifier) CommitRecord {
	author := ResolveAuthor(raw.AuthorLogin, raw.AuthorName)

	rec := CommitRecord{
		SHA:          raw.SHA,
		Message:      raw.Message,
		Author:       author,
		Bot:          cls.IsBotAuthor(author),
		Timestamp:    raw.Timestamp,
		FilesChanged: len(raw.Files),
	}

	for _, f := range raw.Files {
		add := max(f.Additions, 0)
		del := max(f.Deletions, 0)

		if cls.IsGeneratedFile(f.Path) {
			rec.GeneratedTotal += add + del
			continue
		}

		rec.AuthoredAdditions += add
		rec.AuthoredDeletions += del
		if f.Patch != "" {
			rec.Patches = append(rec.Patches, f.Patch)
		}
	}
	rec.AuthoredTotal = rec.AuthoredAdditions + rec.AuthoredDeletions

	return rec
}

// NormalizeAll normalizes every raw commit and returns them sorted
// ascending by timestamp.
func NormalizeAll(raws []RawCommit, cls Classifier) []CommitRecord {
	records := make([]CommitRecord, 0, len(raws))
	for _, r := range raws {
		records = append(records, Normalize(r, cls))
	}
	SortChronological(records)
	return records
}

// Dated returns the commits that carry a timestamp, in their original
// order, and the number dropped. An undated commit cannot be placed on the
// timeline.
func Dated(raws []RawCommit) ([]RawCommit, int) {
	out := make([]RawCommit, 0, len(raws))
	for _, r := range raws {
		if !r.Timestamp.IsZero() {
			out = append(out, r)
		}
	}
	return out, len(raws) - len(out)
}

// SortChronological sorts records ascending by timestamp in place. Equal
// timestamps are ordered by SHA so the result does not depend on the order
// a concurrent source delivered them in.
func SortChronological(records []CommitRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		ti, tj := records[i].Timestamp, records[j].Timestamp
		if ti.Equal(tj) {
			return records[i].SHA < records[j].SHA
		}
		return ti.Before(tj)
	})
}

// ResolveAuthor picks the platform login, then the display name, then
// UnknownAuthor.
func ResolveAuthor(login, name string) string {
	if l := strings.TrimSpace(login); l != "" {
		return l
	}
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return UnknownAuthor
}

// FirstLine returns the first line of a commit message with surrounding
// whitespace removed.
func FirstLine(message string) string {
	msg := strings.TrimSpace(message)
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return strings.TrimSpace(msg)
}
