package main

import (
	_ "embed"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// seedFile is the YAML fixture layout: repo ("owner/name") → branch → path → content.
type seedFile struct {
	Repos map[string]map[string]map[string]string `yaml:"repos"`
}

// loadSeed reads fixtures from path, or the embedded defaults when path is empty.
func loadSeed(path string) (*store, error) {
	data := defaultSeed
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		data = b
	}
	return parseSeed(data)
}

func parseSeed(data []byte) (*store, error) {
	var sf seedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("yaml parse: %w", err)
	}

	s := newStore()
	for _, repoKey := range slices.Sorted(maps.Keys(sf.Repos)) {
		owner, repo, ok := strings.Cut(repoKey, "/")
		if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
			return nil, fmt.Errorf("seed repo %q: want owner/name", repoKey)
		}
		branches := sf.Repos[repoKey]
		for _, branch := range slices.Sorted(maps.Keys(branches)) {
			files := branches[branch]
			if err := checkPaths(files); err != nil {
				return nil, fmt.Errorf("seed %s@%s: %w", repoKey, branch, err)
			}
			s.put(owner, repo, branch, files)
		}
	}
	return s, nil
}

// checkPaths rejects paths that cannot form a git tree, including a file
// that is also used as a directory ("a" next to "a/b").
func checkPaths(files map[string]string) error {
	for _, path := range slices.Sorted(maps.Keys(files)) {
		if path == "" || strings.HasPrefix(path, "/") || strings.HasSuffix(path, "/") {
			return fmt.Errorf("invalid path %q", path)
		}
		for i := range len(path) {
			if path[i] != '/' {
				continue
			}
			if _, ok := files[path[:i]]; ok {
				return fmt.Errorf("path %q conflicts with file %q", path, path[:i])
			}
		}
	}
	return nil
}
