// Package adapters implements the repos ports against GitHub: the git trees
// REST endpoint through go-github and the raw content host over plain HTTP.
package adapters

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gogithub "github.com/google/go-github/v75/github"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tilsley/repoview/apps/gateway/internal/repos"
)

// OpReadTree names tree lookups in spans and the "operation" metric attribute.
const OpReadTree = "github.read_tree"

// Compile-time check: *GitHubTreeReader implements repos.TreeReader.
var _ repos.TreeReader = (*GitHubTreeReader)(nil)

// GitHubTreeReader reads recursive git trees with a go-github client. Wire it
// up with a client from platform/github so the base URL and transport are set.
type GitHubTreeReader struct {
	gh   *gogithub.Client
	inst instruments
}

// NewGitHubTreeReader creates a GitHubTreeReader.
func NewGitHubTreeReader(gh *gogithub.Client, opts ...Option) (*GitHubTreeReader, error) {
	inst, err := newInstruments(opts)
	if err != nil {
		return nil, err
	}
	return &GitHubTreeReader{gh: gh, inst: inst}, nil
}

// ReadTree calls GET /repos/{owner}/{repo}/git/trees/{branch}?recursive=1.
// go-github sends Accept: application/vnd.github.v3+json on every request.
func (r *GitHubTreeReader) ReadTree(ctx context.Context, ref repos.TreeRef) (tree *repos.Tree, err error) {
	started := time.Now()
	ctx, span := r.inst.start(ctx, OpReadTree,
		attribute.String("github.owner", ref.Owner),
		attribute.String("github.repo", ref.Repo),
		attribute.String("github.branch", ref.Branch),
	)
	defer func() { r.inst.finish(ctx, span, OpReadTree, started, err) }()

	// go-github remembers rate limits per client and would otherwise answer
	// later calls locally; every lookup must reach upstream.
	callCtx := context.WithValue(ctx, gogithub.BypassRateLimitCheck, true)
	gt, resp, err := r.gh.Git.GetTree(callCtx, ref.Owner, ref.Repo, ref.Branch, true)
	if resp == nil && err != nil {
		return nil, repos.UpstreamUnavailableError{Operation: "get tree", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, repos.RepositoryNotFoundError{
			Owner:  ref.Owner,
			Repo:   ref.Repo,
			Branch: ref.Branch,
			Status: resp.StatusCode,
		}
	}
	if err != nil {
		return nil, fmt.Errorf("decode tree response: %w", err)
	}

	return convertTree(gt), nil
}

func convertTree(gt *gogithub.Tree) *repos.Tree {
	if gt == nil {
		return &repos.Tree{}
	}
	entries := make([]repos.TreeEntry, 0, len(gt.Entries))
	for _, e := range gt.Entries {
		if e == nil {
			continue
		}
		entries = append(entries, repos.TreeEntry{
			Path: e.GetPath(),
			Mode: e.GetMode(),
			Type: e.GetType(),
			SHA:  e.GetSHA(),
			Size: e.Size,
			URL:  e.GetURL(),
		})
	}
	return &repos.Tree{Entries: entries, Truncated: gt.GetTruncated()}
}
