package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tilsley/repoview/apps/gateway/internal/repos"
)

type treeQuery struct {
	Owner  string `form:"owner"  binding:"required"`
	Repo   string `form:"repo"   binding:"required"`
	Branch string `form:"branch"`
}

type fileQuery struct {
	Owner    string `form:"owner"     binding:"required"`
	Repo     string `form:"repo"      binding:"required"`
	FilePath string `form:"file_path" binding:"required"`
	Branch   string `form:"branch"`
}

// ListTree handles GET /repo/tree and lists the blob entries of a repository tree.
func (h *Handler) ListTree(c *gin.Context) {
	var q treeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	listing, err := h.svc.ListTree(c.Request.Context(), q.Owner, q.Repo, q.Branch)
	if err != nil {
		var notFound repos.RepositoryNotFoundError
		if errors.As(err, &notFound) {
			h.log.Warn("repository not found upstream",
				"owner", q.Owner, "repo", q.Repo, "branch", notFound.Branch, "upstreamStatus", notFound.Status)
			c.JSON(http.StatusNotFound, gin.H{"detail": repos.MsgRepositoryNotFound})
			return
		}
		h.writeError(c, err, "owner", q.Owner, "repo", q.Repo)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// GetFile handles GET /repo/file and returns the raw text of a single file.
func (h *Handler) GetFile(c *gin.Context) {
	var q fileQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	fc, err := h.svc.GetFile(c.Request.Context(), q.Owner, q.Repo, q.FilePath, q.Branch)
	if err != nil {
		var notFound repos.FileNotFoundError
		if errors.As(err, &notFound) {
			h.log.Warn("file not found upstream",
				"owner", q.Owner, "repo", q.Repo, "branch", notFound.Branch, "path", q.FilePath,
				"upstreamStatus", notFound.Status)
			c.JSON(http.StatusNotFound, gin.H{"detail": repos.MsgFileNotFound})
			return
		}
		h.writeError(c, err, "owner", q.Owner, "repo", q.Repo, "path", q.FilePath)
		return
	}

	c.JSON(http.StatusOK, fc)
}

// writeError answers failures that are not upstream not-found responses.
func (h *Handler) writeError(c *gin.Context, err error, attrs ...any) {
	var unavailable repos.UpstreamUnavailableError
	if errors.As(err, &unavailable) {
		h.log.Error("upstream unavailable", append(attrs, "error", err)...)
		c.JSON(http.StatusBadGateway, gin.H{"detail": repos.MsgUpstreamUnavailable})
		return
	}
	h.log.Error("request failed", append(attrs, "error", err)...)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
}
