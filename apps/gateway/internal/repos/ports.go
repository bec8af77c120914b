package repos

import "context"

// TreeReader fetches a recursive git tree from the upstream provider.
// Implementations return RepositoryNotFoundError for any non-200 upstream
// status and UpstreamUnavailableError when no response was received.
type TreeReader interface {
	ReadTree(ctx context.Context, ref TreeRef) (*Tree, error)
}

// ContentReader fetches a file's raw body from the upstream content host.
// Implementations return FileNotFoundError for any non-200 upstream status
// and UpstreamUnavailableError when no response was received.
type ContentReader interface {
	ReadFile(ctx context.Context, ref FileRef) (string, error)
}
