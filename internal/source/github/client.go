// Package github fetches a repository's commit history, with per-commit
// file statistics and patches, from the GitHub REST API.
package github

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	gh "github.com/google/go-github/v57/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/commitprobe/internal/commits"
	"github.com/blackwell-systems/commitprobe/internal/logger"
)

// RepositoriesService is the subset of the go-github repositories API the
// fetcher uses.
type RepositoriesService interface {
	Get(ctx context.Context, owner, repo string) (*gh.Repository, *gh.Response, error)
	ListCommits(ctx context.Context, owner, repo string, opts *gh.CommitsListOptions) ([]*gh.RepositoryCommit, *gh.Response, error)
	GetCommit(ctx context.Context, owner, repo, sha string, opts *gh.ListOptions) (*gh.RepositoryCommit, *gh.Response, error)
}

// Client fetches commit histories.
type Client struct {
	repos RepositoriesService
	log   *logrus.Entry
}

// NewClient builds a client authenticated with token. An empty token makes
// unauthenticated requests; a non-empty baseURL targets GitHub Enterprise.
func NewClient(ctx context.Context, token, baseURL string) (*Client, error) {
	var client *gh.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		client = gh.NewClient(oauth2.NewClient(ctx, ts))
	} else {
		client = gh.NewClient(nil)
	}

	if baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("api url %q: %w", baseURL, err)
		}
	}

	return NewClientWithServices(client.Repositories), nil
}

// NewClientWithServices builds a client over an existing service, typically
// a test double.
func NewClientWithServices(repos RepositoriesService) *Client {
	return &Client{
		repos: repos,
		log:   logger.WithField("source", "github"),
	}
}

// FetchOptions bounds a fetch.
type FetchOptions struct {
	// Branch is a branch, tag or SHA; empty means the default branch.
	Branch string

	// MaxCommits caps the number of most recent commits fetched.
	MaxCommits int

	// Workers bounds concurrent per-commit detail requests.
	Workers int

	// Progress, when set, is called after each detail fetch completes.
	Progress func(done, total int)
}

// Result is a complete fetch.
type Result struct {
	Owner     string
	Repo      string
	CreatedAt *time.Time
	Commits   []commits.RawCommit
}

const maxPerPage = 100

// Fetch retrieves repository metadata, lists up to MaxCommits commits and
// fetches every commit's detail concurrently. It returns either the complete
// set or an error; any failed request cancels the rest.
func (c *Client) Fetch(ctx context.Context, owner, repo string, opts FetchOptions) (*Result, error) {
	if opts.MaxCommits <= 0 {
		opts.MaxCommits = 200
	}
	if opts.Workers <= 0 {
		opts.Workers = 8
	}

	log := c.log.WithField("repo", owner+"/"+repo)

	meta, _, err := c.repos.Get(ctx, owner, repo)
	if err != nil {
		return nil, mapError("get repository "+owner+"/"+repo, err)
	}

	result := &Result{Owner: owner, Repo: repo}
	if meta.CreatedAt != nil {
		created := meta.GetCreatedAt().Time
		result.CreatedAt = &created
	}

	shas, err := c.listSHAs(ctx, owner, repo, opts)
	if err != nil {
		return nil, err
	}
	log.Debugf("listed %d commits", len(shas))

	raws := make([]commits.RawCommit, len(shas))
	var mu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, sha := range shas {
		g.Go(func() error {
			rc, _, err := c.repos.GetCommit(gctx, owner, repo, sha, nil)
			if err != nil {
				return mapError("get commit "+shortSHA(sha), err)
			}
			raws[i] = convertCommit(rc)

			if opts.Progress != nil {
				mu.Lock()
				done++
				opts.Progress(done, len(shas))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	raws, dropped := commits.Dated(raws)
	if dropped > 0 {
		log.Warnf("dropped %d commits with no author or committer date", dropped)
	}

	log.Infof("fetched %d commits", len(raws))
	result.Commits = raws
	return result, nil
}

// listSHAs pages through the commit list, newest first, until MaxCommits
// SHAs are collected or the history ends.
func (c *Client) listSHAs(ctx context.Context, owner, repo string, opts FetchOptions) ([]string, error) {
	listOpts := &gh.CommitsListOptions{
		SHA:         opts.Branch,
		ListOptions: gh.ListOptions{PerPage: min(opts.MaxCommits, maxPerPage)},
	}

	var shas []string
	for {
		pageOpts := *listOpts
		batch, resp, err := c.repos.ListCommits(ctx, owner, repo, &pageOpts)
		if err != nil {
			return nil, mapError("list commits", err)
		}
		for _, rc := range batch {
			shas = append(shas, rc.GetSHA())
		}
		c.log.Debugf("page %d: %d commits", pageOpts.Page, len(batch))

		if len(shas) >= opts.MaxCommits || resp == nil || resp.NextPage == 0 || len(batch) == 0 {
			break
		}
		listOpts.Page = resp.NextPage
	}

	if len(shas) > opts.MaxCommits {
		shas = shas[:opts.MaxCommits]
	}
	return shas, nil
}

// convertCommit maps an API commit to the raw input contract. The platform
// login is preferred over the git author name, and the author date over the
// committer date.
func convertCommit(rc *gh.RepositoryCommit) commits.RawCommit {
	gc := rc.GetCommit()

	ts := gc.GetAuthor().GetDate().Time
	if ts.IsZero() {
		ts = gc.GetCommitter().GetDate().Time
	}

	raw := commits.RawCommit{
		SHA:         rc.GetSHA(),
		Message:     gc.GetMessage(),
		AuthorName:  gc.GetAuthor().GetName(),
		AuthorLogin: rc.GetAuthor().GetLogin(),
		Timestamp:   ts,
		Files:       make([]commits.RawFile, 0, len(rc.Files)),
	}
	for _, f := range rc.Files {
		raw.Files = append(raw.Files, commits.RawFile{
			Path:      f.GetFilename(),
			Additions: f.GetAdditions(),
			Deletions: f.GetDeletions(),
			Patch:     f.GetPatch(),
		})
	}
	return raw
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}

var ownerRepoRe = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

// ParseRepo accepts owner/repo, github.com/owner/repo or a full https or
// ssh URL (with or without .git) and returns owner and repository name.
func ParseRepo(arg string) (owner, repo string, err error) {
	s := strings.TrimSpace(arg)
	s = strings.TrimPrefix(s, "git@github.com:")

	if strings.Contains(s, "://") {
		u, perr := url.Parse(s)
		if perr != nil {
			return "", "", wrap(ErrInvalidRepo, arg, perr)
		}
		s = u.Host + u.Path
	}
	s = strings.TrimPrefix(s, "www.")
	s = strings.TrimPrefix(s, "github.com/")
	s = strings.TrimSuffix(strings.TrimSuffix(s, "/"), ".git")

	if !ownerRepoRe.MatchString(s) {
		return "", "", wrap(ErrInvalidRepo, arg, nil)
	}
	owner, repo, _ = strings.Cut(s, "/")
	return owner, repo, nil
}
