//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	base := config.CORSConfig{
		AllowMethods:     []string{"GET", "POST", "PATCH"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Idempotency-Key"},
		ExposeHeaders:    []string{"Location", "Idempotent-Replayed"},
		AllowCredentials: true,
		MaxAge:           time.Hour,
	}

	tests := []struct {
		name            string
		origins         []string
		requestOrigin   string
		wantOrigin      string
		wantCredentials string
	}{
		{name: "listed origin", origins: []string{"http://app.example.com"}, requestOrigin: "http://app.example.com", wantOrigin: "http://app.example.com", wantCredentials: "true"},
		{name: "wildcard drops credentials", origins: []string{"*"}, requestOrigin: "http://any.example.com", wantOrigin: "*", wantCredentials: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.AllowOrigins = tt.origins

			r := gin.New()
			r.Use(middleware.NewCORSMiddleware(cfg))
			r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set("Origin", tt.requestOrigin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCredentials, w.Header().Get("Access-Control-Allow-Credentials"))
			assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Idempotent-Replayed")
		})
	}
}
