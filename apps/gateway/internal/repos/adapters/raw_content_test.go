package adapters_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilsley/repoview/apps/gateway/internal/repos"
	"github.com/tilsley/repoview/apps/gateway/internal/repos/adapters"
)

var readmeRef = repos.FileRef{Owner: "acme", Repo: "widgets", Branch: "main", Path: "docs/README.md"}

func newRawReader(t *testing.T, baseURL string, opts ...adapters.Option) *adapters.RawContentReader {
	t.Helper()
	r, err := adapters.NewRawContentReader(baseURL, nil, opts...)
	require.NoError(t, err)
	return r
}

func TestReadFile_RequestsRawPathWithoutExtraHeaders(t *testing.T) {
	var gotPath, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte("# readme"))
	}))
	defer srv.Close()

	_, err := newRawReader(t, srv.URL+"/").ReadFile(context.Background(), readmeRef)

	require.NoError(t, err)
	assert.Equal(t, "/acme/widgets/main/docs/README.md", gotPath)
	assert.Empty(t, gotAccept)
}

func TestReadFile_ReturnsBodyVerbatim(t *testing.T) {
	body := "line one\r\n\tline two\né\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	content, err := newRawReader(t, srv.URL).ReadFile(context.Background(), readmeRef)

	require.NoError(t, err)
	assert.Equal(t, body, content)
}

func TestReadFile_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	content, err := newRawReader(t, srv.URL).ReadFile(context.Background(), readmeRef)

	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestReadFile_NonOKStatusIsFileNotFound(t *testing.T) {
	for _, status := range []int{
		http.StatusNoContent,
		http.StatusBadRequest,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusTooManyRequests,
		http.StatusServiceUnavailable,
	} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			}))
			defer srv.Close()

			_, err := newRawReader(t, srv.URL).ReadFile(context.Background(), readmeRef)

			var notFound repos.FileNotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, status, notFound.Status)
			assert.Equal(t, "docs/README.md", notFound.Path)
		})
	}
}

func TestReadFile_ConnectionFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	_, err := newRawReader(t, baseURL).ReadFile(context.Background(), readmeRef)

	var unavailable repos.UpstreamUnavailableError
	require.ErrorAs(t, err, &unavailable)
}

func TestReadFile_CancelledContextIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("late"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRawReader(t, srv.URL).ReadFile(ctx, readmeRef)

	var unavailable repos.UpstreamUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.ErrorIs(t, err, context.Canceled)
}
