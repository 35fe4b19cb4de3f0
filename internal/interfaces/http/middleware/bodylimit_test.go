package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func bodyLimitRouter(maxBytes int64) *gin.Engine {
	router := gin.New()
	router.Use(BodyLimit(maxBytes))
	router.POST("/api/v1/products/create", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestBodyLimit(t *testing.T) {
	t.Run("passes a body under the limit", func(t *testing.T) {
		router := bodyLimitRouter(1024)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/products/create",
			strings.NewReader(`{"name":"Chair"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects an oversized declared body with 413", func(t *testing.T) {
		router := bodyLimitRouter(64)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/products/create",
			strings.NewReader(strings.Repeat("x", 200)))
		req.ContentLength = 200
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_BAD_REQUEST")
	})

	t.Run("caps streamed bodies without Content-Length", func(t *testing.T) {
		router := gin.New()
		router.Use(BodyLimit(32))
		router.POST("/api/v1/products/create", func(c *gin.Context) {
			buf := make([]byte, 256)
			if _, err := c.Request.Body.Read(buf); err != nil {
				c.String(http.StatusBadRequest, "body too large")
				return
			}
			c.String(http.StatusOK, "ok")
		})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/products/create",
			strings.NewReader(strings.Repeat("x", 128)))
		req.ContentLength = -1 // simulate chunked transfer
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
