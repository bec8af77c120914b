// Package github builds the outbound HTTP plumbing for the upstream provider:
// a traced *http.Client and an unauthenticated *github.Client that may point
// at a mock server instead of api.github.com.
package github

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gogithub "github.com/google/go-github/v75/github"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// DefaultAPIURL is the public GitHub REST API.
	DefaultAPIURL = "https://api.github.com"
	// DefaultRawURL is the public raw content host.
	DefaultRawURL = "https://raw.githubusercontent.com"
)

// NewHTTPClient returns an http.Client whose requests are traced with
// otelhttp. A zero timeout means no timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   timeout,
	}
}

// NewClient creates an unauthenticated *github.Client on top of httpClient.
// Pass baseURL="" for the real GitHub API, or a custom URL
// (e.g. "http://localhost:9090") for a mock server.
func NewClient(httpClient *http.Client, baseURL string) (*gogithub.Client, error) {
	c := gogithub.NewClient(httpClient)
	if baseURL == "" || baseURL == DefaultAPIURL {
		return c, nil
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse github api url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("github api url %q must be absolute", baseURL)
	}
	c.BaseURL = u
	return c, nil
}
