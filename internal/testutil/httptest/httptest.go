//go:build unit || e2e

package httptest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// Request describes one call against a router. Zero fields are omitted.
type Request struct {
	Method    string
	Path      string
	Body      any
	AuthToken string
	Headers   map[string]string
	Cookies   []*http.Cookie
}

func Perform(t *testing.T, router *gin.Engine, r Request) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody bytes.Buffer
	if r.Body != nil {
		jsonBody, err := json.Marshal(r.Body)
		require.NoError(t, err, "Failed to encode request body to JSON")
		reqBody.Write(jsonBody)
	}

	req := httptest.NewRequest(r.Method, r.Path, &reqBody)
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+r.AuthToken)
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	for _, c := range r.Cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// executes HTTP request with optional authorization
func PerformRequest(t *testing.T, router *gin.Engine, method, path string, body any, authToken string) *httptest.ResponseRecorder {
	t.Helper()
	return Perform(t, router, Request{Method: method, Path: path, Body: body, AuthToken: authToken})
}

// extracts specific cookie by name from response
func ExtractCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
