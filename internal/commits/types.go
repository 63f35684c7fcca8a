// Package commits defines the raw commit input contract and the
// normalized CommitRecord consumed by every analyzer.
package commits

import "time"

// UnknownAuthor is the identity assigned when a commit carries neither a
// platform login nor a display name.
const UnknownAuthor = "unknown"

// RawCommit is a commit as delivered by a source, before normalization.
type RawCommit struct {
	SHA         string    `json:"sha"`
	Message     string    `json:"message"`
	AuthorName  string    `json:"author_name,omitempty"`
	AuthorLogin string    `json:"author_login,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Files       []RawFile `json:"files"`
}

// RawFile is one changed file within a raw commit. Patch holds the raw
// unified diff text when the source provides it.
type RawFile struct {
	Path      string `json:"path"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Patch     string `json:"patch,omitempty"`
}

// CommitRecord is the normalized, immutable view of a commit. Authored
// totals never include changes to generated or vendored files.
type CommitRecord struct {
	SHA               string    `json:"sha"`
	Message           string    `json:"message"`
	Author            string    `json:"author"`
	Bot               bool      `json:"bot"`
	Timestamp         time.Time `json:"timestamp"`
	AuthoredAdditions int       `json:"authored_additions"`
	AuthoredDeletions int       `json:"authored_deletions"`
	AuthoredTotal     int       `json:"authored_total"`
	GeneratedTotal    int       `json:"generated_total"`
	FilesChanged      int       `json:"files_changed"`

	// Patches holds raw patch text for authored files only, in input order.
	Patches []string `json:"-"`
}

// ShortSHA returns the first eight characters of the commit SHA.
func (c CommitRecord) ShortSHA() string {
	if len(c.SHA) > 8 {
		return c.SHA[:8]
	}
	return c.SHA
}
