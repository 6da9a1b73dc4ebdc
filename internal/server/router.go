// Package server is the HTTP editing API: a small Gin application that
// loads files on request and exposes query, update and save operations
// plus a single-page web interface.
package server

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"

	"xqr/internal/config"
	"xqr/internal/server/middleware"
	"xqr/internal/server/respond"
)

//go:embed ui.html
var uiHTML []byte

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	h := NewHandler(NewRegistry())

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", uiHTML)
	})

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	h.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
