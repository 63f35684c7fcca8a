// Package jsonfile reads and writes commit-history exports so a fetched
// history can be re-scored offline.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/blackwell-systems/commitprobe/internal/commits"
	"github.com/blackwell-systems/commitprobe/internal/logger"
)

// Document is the export format.
type Document struct {
	Repository string              `json:"repository"`
	Source     string              `json:"source,omitempty"`
	ExportedAt time.Time           `json:"exported_at"`
	CreatedAt  *time.Time          `json:"created_at,omitempty"`
	Commits    []commits.RawCommit `json:"commits"`
}

// Read loads an export. path may be a single file or a directory of .json
// files, in which case every parsable file is merged and the rest skipped.
// A file holding a bare commit array is accepted too.
// Commits without a timestamp are dropped with a warning.
func Read(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var doc *Document
	if info.IsDir() {
		docs, err := parseJSONDir(path)
		if err != nil {
			return nil, err
		}
		if len(docs) == 0 {
			return nil, fmt.Errorf("%s: no readable exports", path)
		}
		doc = merge(docs)
	} else {
		doc, err = parseFile(path)
		if err != nil {
			return nil, err
		}
	}

	var dropped int
	doc.Commits, dropped = commits.Dated(doc.Commits)
	if dropped > 0 {
		logger.WithField("file", path).Warnf("dropped %d commits with no timestamp", dropped)
	}
	return doc, nil
}

func parseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

func parse(data []byte) (*Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var raws []commits.RawCommit
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, fmt.Errorf("parsing commit array: %w", err)
		}
		return &Document{Commits: raws}, nil
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing export: %w", err)
	}
	return &doc, nil
}

// parseJSONDir reads every .json file in dir. Files that fail to read or
// parse are skipped.
func parseJSONDir(dir string) ([]*Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var docs []*Document
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		doc, err := parseFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			logger.WithError(err).WithField("file", entry.Name()).Debug("skipping export")
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// merge combines documents in directory order. Commits are de-duplicated by
// SHA and the earliest creation time wins.
func merge(docs []*Document) *Document {
	out := &Document{}
	seen := make(map[string]bool)
	for _, d := range docs {
		if out.Repository == "" {
			out.Repository = d.Repository
			out.Source = d.Source
		}
		if d.ExportedAt.After(out.ExportedAt) {
			out.ExportedAt = d.ExportedAt
		}
		if d.CreatedAt != nil && (out.CreatedAt == nil || d.CreatedAt.Before(*out.CreatedAt)) {
			c := *d.CreatedAt
			out.CreatedAt = &c
		}
		for _, c := range d.Commits {
			if c.SHA != "" && seen[c.SHA] {
				continue
			}
			seen[c.SHA] = true
			out.Commits = append(out.Commits, c)
		}
	}
	return out
}

// Write saves doc to path as indented JSON, stamping ExportedAt when unset.
func Write(path string, doc *Document) error {
	if doc.ExportedAt.IsZero() {
		doc.ExportedAt = time.Now().UTC()
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
