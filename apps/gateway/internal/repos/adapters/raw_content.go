package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/tilsley/repoview/apps/gateway/internal/repos"
)

// OpReadFile names raw file fetches in spans and the "operation" metric attribute.
const OpReadFile = "github.read_raw_file"

// Compile-time check: *RawContentReader implements repos.ContentReader.
var _ repos.ContentReader = (*RawContentReader)(nil)

// RawContentReader fetches file bodies from the raw content host
// (raw.githubusercontent.com or a mock).
type RawContentReader struct {
	baseURL    string
	httpClient *http.Client
	inst       instruments
}

// NewRawContentReader creates a RawContentReader. A nil httpClient uses
// http.DefaultClient.
func NewRawContentReader(baseURL string, httpClient *http.Client, opts ...Option) (*RawContentReader, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	inst, err := newInstruments(opts)
	if err != nil {
		return nil, err
	}
	return &RawContentReader{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		inst:       inst,
	}, nil
}

// ReadFile calls GET {base}/{owner}/{repo}/{branch}/{path} with no extra
// headers and returns the body unmodified.
func (r *RawContentReader) ReadFile(ctx context.Context, ref repos.FileRef) (content string, err error) {
	started := time.Now()
	ctx, span := r.inst.start(ctx, OpReadFile,
		attribute.String("github.owner", ref.Owner),
		attribute.String("github.repo", ref.Repo),
		attribute.String("github.branch", ref.Branch),
		attribute.String("github.path", ref.Path),
	)
	defer func() { r.inst.finish(ctx, span, OpReadFile, started, err) }()

	// The path is concatenated as given; callers pass it already percent-safe.
	url := fmt.Sprintf("%s/%s/%s/%s/%s", r.baseURL, ref.Owner, ref.Repo, ref.Branch, ref.Path)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return "", repos.UpstreamUnavailableError{Operation: "get file", Err: err}
	}
	defer func() { //nolint:errcheck // response body close errors are non-actionable after reading
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", repos.FileNotFoundError{
			Owner:  ref.Owner,
			Repo:   ref.Repo,
			Branch: ref.Branch,
			Path:   ref.Path,
			Status: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", repos.UpstreamUnavailableError{Operation: "read file body", Err: err}
	}
	return string(body), nil
}
