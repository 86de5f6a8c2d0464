package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tadreeb/academy/internal/app/models/dto"
	"github.com/tadreeb/academy/internal/bootstrap"
	"github.com/tadreeb/academy/internal/middleware"
	"github.com/tadreeb/academy/internal/pkg/i18n"
)

// setupStaticFileServing serves uploads and the built SPA. Unknown API paths
// get a JSON 404; other GETs fall back to index.html for client-side routes.
func setupStaticFileServing(router *gin.Engine, uploadDir, staticDir string, lgr zerolog.Logger) {
	router.Static(bootstrap.UploadsPath, uploadDir)
	lgr.Info().Str("path", uploadDir).Msg("Static file serving configured for uploads directory")

	if staticDir != "" {
		if info, err := os.Stat(staticDir); err != nil || !info.IsDir() {
			lgr.Warn().Str("path", staticDir).Msg("SPA directory not found, serving API only")
			staticDir = ""
		} else {
			lgr.Info().Str("path", staticDir).Msg("Serving SPA assets")
		}
	}

	router.NoRoute(spaHandler(staticDir))
}

func spaHandler(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if p == "/api" || strings.HasPrefix(p, "/api/") || staticDir == "" ||
			(c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			notFound(c)
			return
		}

		rel := strings.TrimPrefix(path.Clean("/"+p), "/")
		if rel != "" {
			file := filepath.Join(staticDir, filepath.FromSlash(rel))
			if info, err := os.Stat(file); err == nil && !info.IsDir() {
				c.File(file)
				return
			}
			// missing assets are real 404s, only routes fall back
			if path.Ext(rel) != "" {
				notFound(c)
				return
			}
		}

		index := filepath.Join(staticDir, "index.html")
		if _, err := os.Stat(index); err != nil {
			notFound(c)
			return
		}
		c.Header("Cache-Control", "no-cache")
		c.File(index)
	}
}

func notFound(c *gin.Context) {
	msg := i18n.Default().T(middleware.LangFrom(c), "errors.not_found")
	c.AbortWithStatusJSON(http.StatusNotFound, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, msg)))
}
