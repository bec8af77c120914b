// Command mock-github serves the two GitHub endpoints the gateway depends on
// (git trees and raw content) from YAML fixtures, for local development
// without network access. Point the gateway at it with
// GITHUB_API_URL=http://localhost:9090 and GITHUB_RAW_URL=http://localhost:9090/raw.
package main

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tilsley/repoview/pkg/logging"
)

// store holds file content keyed by "owner/repo" then branch. It is filled
// once at startup and only read afterwards.
type store struct {
	files map[string]map[string]map[string]string
}

func newStore() *store {
	return &store{files: make(map[string]map[string]map[string]string)}
}

func (s *store) put(owner, repo, branch string, files map[string]string) {
	key := owner + "/" + repo
	if s.files[key] == nil {
		s.files[key] = make(map[string]map[string]string)
	}
	if files == nil {
		files = map[string]string{}
	}
	s.files[key][branch] = files
}

// branch returns the snapshot of owner/repo at branch.
func (s *store) branch(owner, repo, branch string) (map[string]string, bool) {
	files, ok := s.files[owner+"/"+repo][branch]
	return files, ok
}

func (s *store) getFile(owner, repo, branch, path string) (string, bool) {
	files, ok := s.branch(owner, repo, branch)
	if !ok {
		return "", false
	}
	content, ok := files[path]
	return content, ok
}

func main() {
	log := logging.New("mock-github")

	s, err := loadSeed(os.Getenv("SEED_FILE"))
	if err != nil {
		log.Error("seed failed", "error", err)
		os.Exit(1)
	}
	log.Info("seeded repos", "repos", len(s.files))

	r := gin.New()
	r.Use(gin.Recovery())
	registerRoutes(r, s, log)

	port := os.Getenv("PORT")
	if port == "" {
		port = "9090"
	}

	log.Info("mock-github starting", "port", port)
	if err := r.Run(":" + port); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func registerRoutes(r *gin.Engine, s *store, log *slog.Logger) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Mirrors GitHub's GET /repos/:owner/:repo/git/trees/:ref. Only branch
	// names are accepted as :ref.
	r.GET("/repos/:owner/:repo/git/trees/:ref", func(c *gin.Context) {
		owner, repo, ref := c.Param("owner"), c.Param("repo"), c.Param("ref")
		files, ok := s.branch(owner, repo, ref)
		if !ok {
			log.Info("tree not found", "owner", owner, "repo", repo, "ref", ref)
			c.JSON(http.StatusNotFound, gin.H{
				"message":           "Not Found",
				"documentation_url": "https://docs.github.com/rest/git/trees#get-a-tree",
				"status":            "404",
			})
			return
		}
		recursive := c.Query("recursive") != "" && c.Query("recursive") != "0" && c.Query("recursive") != "false"
		c.JSON(http.StatusOK, listTree(files, requestBase(c), owner, repo, recursive))
	})

	// Mirrors raw.githubusercontent.com/:owner/:repo/:ref/*path.
	r.GET("/raw/:owner/:repo/:ref/*path", func(c *gin.Context) {
		owner, repo, ref := c.Param("owner"), c.Param("repo"), c.Param("ref")
		path := strings.TrimPrefix(c.Param("path"), "/")
		content, ok := s.getFile(owner, repo, ref, path)
		if !ok {
			c.String(http.StatusNotFound, "404: Not Found")
			return
		}
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))
	})
}

func requestBase(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
