package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tilsley/repoview/apps/gateway/internal/repos"
)

// Handler translates HTTP requests into calls on the repos.Service.
type Handler struct {
	svc *repos.Service
	log *slog.Logger
}

// RegisterRoutes mounts the gateway API onto the given Gin engine.
func RegisterRoutes(r *gin.Engine, svc *repos.Service, log *slog.Logger) {
	h := &Handler{svc: svc, log: log}

	r.GET("/repo/tree", h.ListTree)
	r.GET("/repo/file", h.GetFile)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
