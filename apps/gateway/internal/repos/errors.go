package repos

import "fmt"

// Client-facing messages. They do not vary with the upstream status.
const (
	MsgRepositoryNotFound  = "Repository not found"
	MsgFileNotFound        = "File not found"
	MsgUpstreamUnavailable = "Upstream unavailable"
)

// RepositoryNotFoundError is returned when the tree API answers with anything
// other than 200. Status keeps the upstream code for logs; a 403 rate limit
// and a genuine 404 both end up here.
type RepositoryNotFoundError struct {
	Owner  string
	Repo   string
	Branch string
	Status int
}

// Error implements the error interface.
func (e RepositoryNotFoundError) Error() string {
	return fmt.Sprintf("repository %s/%s@%s not found (upstream status %d)", e.Owner, e.Repo, e.Branch, e.Status)
}

// FileNotFoundError is returned when the raw content host answers with
// anything other than 200.
type FileNotFoundError struct {
	Owner  string
	Repo   string
	Branch string
	Path   string
	Status int
}

// Error implements the error interface.
func (e FileNotFoundError) Error() string {
	return fmt.Sprintf("file %s not found in %s/%s@%s (upstream status %d)", e.Path, e.Owner, e.Repo, e.Branch, e.Status)
}

// UpstreamUnavailableError is returned when the outbound call produced no
// HTTP response at all: DNS failure, refused connection, timeout, cancellation.
type UpstreamUnavailableError struct {
	Operation string
	Err       error
}

// Error implements the error interface.
func (e UpstreamUnavailableError) Error() string {
	return fmt.Sprintf("%s: upstream unavailable: %v", e.Operation, e.Err)
}

// Unwrap exposes the transport error.
func (e UpstreamUnavailableError) Unwrap() error {
	return e.Err
}
