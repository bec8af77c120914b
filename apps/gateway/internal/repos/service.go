package repos

import (
	"context"
	"fmt"
	"log/slog"
)

// Service implements the two gateway operations on top of the upstream ports.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	trees    TreeReader
	contents ContentReader
	log      *slog.Logger
}

// NewService creates a new Service. A nil logger falls back to slog.Default.
func NewService(trees TreeReader, contents ContentReader, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{trees: trees, contents: contents, log: log}
}

// ListTree returns the file (blob) entries of owner/repo at branch, in
// upstream order. An empty branch means DefaultBranch.
func (s *Service) ListTree(ctx context.Context, owner, repo, branch string) (*TreeListing, error) {
	ref := TreeRef{Owner: owner, Repo: repo, Branch: orDefaultBranch(branch)}

	tree, err := s.trees.ReadTree(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("list tree %s/%s@%s: %w", ref.Owner, ref.Repo, ref.Branch, err)
	}
	if tree.Truncated {
		s.log.Warn("upstream tree truncated, listing is incomplete",
			"owner", ref.Owner, "repo", ref.Repo, "branch", ref.Branch, "entries", len(tree.Entries))
	}

	return &TreeListing{Files: filterBlobs(tree.Entries)}, nil
}

// GetFile returns the raw text of filePath in owner/repo at branch.
// An empty branch means DefaultBranch.
func (s *Service) GetFile(ctx context.Context, owner, repo, filePath, branch string) (*FileContent, error) {
	ref := FileRef{Owner: owner, Repo: repo, Branch: orDefaultBranch(branch), Path: filePath}

	content, err := s.contents.ReadFile(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("get file %s from %s/%s@%s: %w", ref.Path, ref.Owner, ref.Repo, ref.Branch, err)
	}
	return &FileContent{Content: content}, nil
}

// filterBlobs keeps blob entries in order. The result is never nil so the
// listing always serialises as a JSON array.
func filterBlobs(entries []TreeEntry) []TreeEntry {
	files := make([]TreeEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsBlob() {
			files = append(files, e)
		}
	}
	return files
}

func orDefaultBranch(branch string) string {
	if branch == "" {
		return DefaultBranch
	}
	return branch
}
