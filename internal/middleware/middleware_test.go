package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(rate.Limit(1), 2)
	defer limiter.Stop()

	r := gin.New()
	r.Use(limiter.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ping", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ping", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "/ping", nil).Code)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS("https://loja.example.com"))
	r.GET("/v1/products", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodOptions, "/v1/products", map[string]string{
		"Origin":                         "https://loja.example.com",
		"Access-Control-Request-Method":  "GET",
		"Access-Control-Request-Headers": SessionHeader,
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://loja.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodGet, "/v1/products", map[string]string{"Origin": "https://evil.example.com"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCORSWithoutOrigins(t *testing.T) {
	r := gin.New()
	r.Use(CORS(""))
	r.GET("/v1/products", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/v1/products", map[string]string{"Origin": "https://any.example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLoggerLevels(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()
	level := logrus.GetLevel()
	logrus.SetLevel(logrus.DebugLevel)
	defer logrus.SetLevel(level)

	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusServiceUnavailable) })

	serve(r, http.MethodGet, "/health", nil)
	serve(r, http.MethodGet, "/boom", nil)
	serve(r, http.MethodGet, "/missing", nil)

	entries := hook.AllEntries()
	if assert.Len(t, entries, 3) {
		assert.Equal(t, logrus.DebugLevel, entries[0].Level)
		assert.Equal(t, logrus.ErrorLevel, entries[1].Level)
		assert.Equal(t, http.StatusServiceUnavailable, entries[1].Data["status"])
		assert.Equal(t, logrus.WarnLevel, entries[2].Level)
	}
}

func TestI18nMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(I18nMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("lang")) })

	w := serve(r, http.MethodGet, "/", nil)
	assert.Equal(t, "pt_BR", w.Body.String())
	assert.Equal(t, "pt-BR", w.Header().Get("Content-Language"))
}
