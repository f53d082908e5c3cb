package httpx

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func TestRequestIDEchoesCallerHeader(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "rid-42")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, "rid-42", w.Header().Get("X-Request-ID"))
}

func TestRequestIDMintsWhenAbsent(t *testing.T) {
	r := newTestRouter()
	w := httptest.NewRecorder()

	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestLoggerIncludesQueryAndStatus(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	r := newTestRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping?n=1", nil))

	line := buf.String()
	assert.Contains(t, line, "[mockapi]")
	assert.Contains(t, line, "GET /ping?n=1")
	assert.Contains(t, line, "status=200")
}
