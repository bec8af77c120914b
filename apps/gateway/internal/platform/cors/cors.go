// Package cors configures the gateway's cross-origin policy: any origin, any
// method, any header, credentials allowed. Only suitable for demo deployments.
package cors

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Config returns the permissive policy. The request origin is echoed back
// instead of "*" because browsers reject a wildcard with credentials.
// AllowHeaders stays empty: Middleware echoes the requested headers.
func Config() cors.Config {
	return cors.Config{
		AllowOriginFunc: func(string) bool { return true },
		AllowMethods: []string{
			"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS",
		},
		AllowCredentials: true,
		MaxAge:           10 * time.Minute,
	}
}

// Middleware returns the gin handler enforcing Config. Preflights get their
// Access-Control-Request-Headers echoed as Access-Control-Allow-Headers,
// since "*" is taken literally on credentialed requests.
func Middleware() gin.HandlerFunc {
	next := cors.New(Config())
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions && c.GetHeader("Origin") != "" {
			if h := c.GetHeader("Access-Control-Request-Headers"); h != "" {
				c.Header("Access-Control-Allow-Headers", h)
			}
		}
		next(c)
	}
}
