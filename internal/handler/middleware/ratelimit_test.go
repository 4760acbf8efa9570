//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	limiter := middleware.NewRateLimiter(config.RateLimitConfig{RPS: 0.001, Burst: 2})

	assert.True(t, limiter.Allow("user:a"))
	assert.True(t, limiter.Allow("user:a"))
	assert.False(t, limiter.Allow("user:a"))

	// buckets are independent per key
	assert.True(t, limiter.Allow("user:b"))
}

func TestRateLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(userID *uuid.UUID) *gin.Engine {
		limiter := middleware.NewRateLimiter(config.RateLimitConfig{RPS: 0.001, Burst: 1})
		r := gin.New()
		r.Use(func(c *gin.Context) {
			if userID != nil {
				c.Set("user_id", *userID)
			}
			c.Next()
		})
		r.Use(limiter.Middleware())
		r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })
		return r
	}

	do := func(r *gin.Engine) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		return rec
	}

	t.Run("anonymous callers are limited by IP", func(t *testing.T) {
		r := newRouter(nil)

		assert.Equal(t, http.StatusNoContent, do(r).Code)
		rec := do(r)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "1", rec.Header().Get("Retry-After"))
		assert.Contains(t, rec.Body.String(), "TOO_MANY_REQUESTS")
	})

	t.Run("authenticated callers are limited by user", func(t *testing.T) {
		id := uuid.New()
		r := newRouter(&id)

		assert.Equal(t, http.StatusNoContent, do(r).Code)
		assert.Equal(t, http.StatusTooManyRequests, do(r).Code)
	})
}
