package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping() error { return s.err }

func TestHealthHandler_Check(t *testing.T) {
	t.Run("healthy when the database responds", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/health", NewHealthHandler(stubPinger{}).Check)

		w := serveJSON(router, http.MethodGet, "/health", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"ok"`)
	})

	t.Run("503 when the database is down", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/health", NewHealthHandler(stubPinger{err: errors.New("connection refused")}).Check)

		w := serveJSON(router, http.MethodGet, "/health", nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "unhealthy")
	})
}
