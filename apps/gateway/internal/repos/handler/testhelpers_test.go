package handler_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/tilsley/repoview/apps/gateway/internal/platform/github"
	"github.com/tilsley/repoview/apps/gateway/internal/platform/validation"
	"github.com/tilsley/repoview/apps/gateway/internal/repos"
	"github.com/tilsley/repoview/apps/gateway/internal/repos/adapters"
	"github.com/tilsley/repoview/apps/gateway/internal/repos/handler"
	"github.com/tilsley/repoview/schemas"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ─── Upstream stub ────────────────────────────────────────────────────────────

// upstream stands in for both api.github.com and raw.githubusercontent.com.
// Tree requests are served under /api, raw content under /raw.
type upstream struct {
	srv *httptest.Server

	treeStatus int
	treeBody   string
	rawStatus  int
	rawBody    string

	lastTreePath string
	lastRawPath  string
	calls        atomic.Int32
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	u := &upstream{treeStatus: http.StatusOK, treeBody: `{"tree":[]}`, rawStatus: http.StatusOK}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		u.calls.Add(1)
		u.lastTreePath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(u.treeStatus)
		_, _ = w.Write([]byte(u.treeBody))
	})
	mux.HandleFunc("/raw/", func(w http.ResponseWriter, r *http.Request) {
		u.calls.Add(1)
		u.lastRawPath = r.URL.Path
		w.WriteHeader(u.rawStatus)
		_, _ = w.Write([]byte(u.rawBody))
	})
	u.srv = httptest.NewServer(mux)
	t.Cleanup(u.srv.Close)
	return u
}

// ─── Test server builder ──────────────────────────────────────────────────────

type testServer struct {
	router   *gin.Engine
	upstream *upstream
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	up := newUpstream(t)
	return &testServer{router: buildRouter(t, up.srv.URL+"/api", up.srv.URL+"/raw", false), upstream: up}
}

func newTestServerWithValidation(t *testing.T) *testServer {
	t.Helper()
	up := newUpstream(t)
	return &testServer{router: buildRouter(t, up.srv.URL+"/api", up.srv.URL+"/raw", true), upstream: up}
}

func buildRouter(t *testing.T, apiURL, rawURL string, validate bool) *gin.Engine {
	t.Helper()
	httpClient := github.NewHTTPClient(0)
	gh, err := github.NewClient(httpClient, apiURL)
	require.NoError(t, err)

	trees, err := adapters.NewGitHubTreeReader(gh)
	require.NoError(t, err)
	contents, err := adapters.NewRawContentReader(rawURL, httpClient)
	require.NoError(t, err)

	svc := repos.NewService(trees, contents, slog.Default())

	r := gin.New()
	if validate {
		mw, err := validation.New(schemas.OpenAPISpec)
		require.NoError(t, err)
		r.Use(mw)
	}
	handler.RegisterRoutes(r, svc, slog.Default())
	return r
}

func (ts *testServer) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}
