package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tadreeb/academy/internal/app/models/dto"
	"github.com/tadreeb/academy/internal/middleware"
)

func newStaticRouter(t *testing.T, staticDir string) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	uploads := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(uploads, "programs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(uploads, "programs", "cover.png"), []byte("png"), 0o644))

	r := gin.New()
	r.Use(middleware.Language())
	r.GET("/api/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	setupStaticFileServing(r, uploads, staticDir, zerolog.Nop())
	return r, uploads
}

func writeSPA(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>spa</html>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o644))
	return dir
}

func get(r http.Handler, target string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSPA_ServesAssetsAndFallsBackToIndex(t *testing.T) {
	r, _ := newStaticRouter(t, writeSPA(t))

	w := get(r, "/assets/app.js")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())

	for _, route := range []string{"/", "/programs/strategic-leadership", "/en/contact"} {
		w = get(r, route)
		assert.Equal(t, http.StatusOK, w.Code, route)
		assert.Equal(t, "<html>spa</html>", w.Body.String(), route)
	}

	w = get(r, "/assets/missing.js")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSPA_UnknownAPIPathIsJSON404(t *testing.T) {
	r, _ := newStaticRouter(t, writeSPA(t))

	w := get(r, "/api/nope", "Accept-Language", "en")
	require.Equal(t, http.StatusNotFound, w.Code)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, body.Error.Code)
	assert.Equal(t, "The requested resource was not found.", body.Error.Message)

	assert.Equal(t, http.StatusOK, get(r, "/api/health").Code)
}

func TestSPA_TraversalStaysInsideStaticDir(t *testing.T) {
	spa := writeSPA(t)
	secret := filepath.Join(filepath.Dir(spa), "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("nope"), 0o644))

	r, _ := newStaticRouter(t, spa)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.URL.Path = "/../secret.txt"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NotEqual(t, "nope", w.Body.String())
}

func TestSPA_DisabledWithoutStaticDir(t *testing.T) {
	r, _ := newStaticRouter(t, "")

	w := get(r, "/programs")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
}

func TestUploadsAreServed(t *testing.T) {
	r, _ := newStaticRouter(t, "")

	w := get(r, "/uploads/programs/cover.png")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png", w.Body.String())
}
