// Package local reads commit history straight from a git repository on
// disk, producing the same raw records the GitHub source does.
package local

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/sirupsen/logrus"

	"github.com/blackwell-systems/commitprobe/internal/commits"
	"github.com/blackwell-systems/commitprobe/internal/logger"
)

// ErrNotRepository is returned when the path holds no git repository.
var ErrNotRepository = errors.New("not a git repository")

// Reader walks a repository's history.
type Reader struct {
	repo *git.Repository
	name string
	log  *logrus.Entry
}

// Open opens the repository at path, searching parent directories for .git.
func Open(path string) (*Reader, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotRepository)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return NewReader(repo, filepath.Base(abs)), nil
}

// NewReader wraps an already opened repository.
func NewReader(repo *git.Repository, name string) *Reader {
	return &Reader{
		repo: repo,
		name: name,
		log:  logger.WithField("source", "local"),
	}
}

// Name is the label used for the repository in reports.
func (r *Reader) Name() string { return r.name }

// Options bounds a history walk.
type Options struct {
	// Branch is any revision git understands; empty means HEAD.
	Branch string

	// MaxCommits caps the number of most recent commits read. Zero reads
	// the whole history.
	MaxCommits int
}

// Read returns up to MaxCommits commits reachable from the start revision,
// newest first. Each commit is diffed against its first parent; root
// commits are diffed against the empty tree.
func (r *Reader) Read(ctx context.Context, opts Options) ([]commits.RawCommit, error) {
	from, err := r.resolve(opts.Branch)
	if err != nil {
		return nil, err
	}

	iter, err := r.repo.Log(&git.LogOptions{From: from, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("walking history: %w", err)
	}
	defer iter.Close()

	var raws []commits.RawCommit
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		raw, err := convertCommit(ctx, c)
		if err != nil {
			return err
		}
		raws = append(raws, raw)
		if opts.MaxCommits > 0 && len(raws) >= opts.MaxCommits {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.log.WithField("repo", r.name).Infof("read %d commits", len(raws))
	return raws, nil
}

func (r *Reader) resolve(branch string) (plumbing.Hash, error) {
	if branch == "" {
		head, err := r.repo.Head()
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("resolving HEAD: %w", err)
		}
		return head.Hash(), nil
	}
	h, err := r.repo.ResolveRevision(plumbing.Revision(branch))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving %q: %w", branch, err)
	}
	return *h, nil
}

func convertCommit(ctx context.Context, c *object.Commit) (commits.RawCommit, error) {
	raw := commits.RawCommit{
		SHA:        c.Hash.String(),
		Message:    c.Message,
		AuthorName: c.Author.Name,
		Timestamp:  c.Author.When,
	}

	to, err := c.Tree()
	if err != nil {
		return raw, fmt.Errorf("tree of %s: %w", short(c.Hash), err)
	}
	from := &object.Tree{}
	if c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return raw, fmt.Errorf("parent of %s: %w", short(c.Hash), err)
		}
		if from, err = parent.Tree(); err != nil {
			return raw, fmt.Errorf("tree of %s: %w", short(parent.Hash), err)
		}
	}

	patch, err := from.PatchContext(ctx, to)
	if err != nil {
		return raw, fmt.Errorf("diffing %s: %w", short(c.Hash), err)
	}
	for _, fp := range patch.FilePatches() {
		raw.Files = append(raw.Files, convertFile(fp))
	}
	return raw, nil
}

func short(h plumbing.Hash) string {
	return h.String()[:8]
}

// convertFile renders one file's changes as +/- prefixed lines and counts
// them. Binary files carry a path and nothing else.
func convertFile(fp fdiff.FilePatch) commits.RawFile {
	src, dst := fp.Files()
	var f commits.RawFile
	switch {
	case dst != nil:
		f.Path = dst.Path()
	case src != nil:
		f.Path = src.Path()
	}
	if fp.IsBinary() {
		return f
	}

	var b strings.Builder
	for _, chunk := range fp.Chunks() {
		var prefix byte
		switch chunk.Type() {
		case fdiff.Add:
			prefix = '+'
		case fdiff.Delete:
			prefix = '-'
		default:
			continue
		}
		content := strings.TrimSuffix(chunk.Content(), "\n")
		if content == "" && chunk.Content() == "" {
			continue
		}
		for _, line := range strings.Split(content, "\n") {
			b.WriteByte(prefix)
			b.WriteString(line)
			b.WriteByte('\n')
			if prefix == '+' {
				f.Additions++
			} else {
				f.Deletions++
			}
		}
	}
	f.Patch = b.String()
	return f
}
