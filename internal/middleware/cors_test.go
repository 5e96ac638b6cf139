package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func corsTestHandler() http.Handler {
	return Cors()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCors_AllowedOrigin(t *testing.T) {
	handler := corsTestHandler()

	for _, origin := range []string{
		"https://vaad-horim.online",
		"https://www.vaad-horim.online",
		"http://localhost:3000",
	} {
		req := httptest.NewRequest("GET", "/events/upcoming", nil)
		req.Header.Set("Origin", origin)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, origin)
		assert.Equal(t, origin, rr.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
	}
}

func TestCors_UnknownOrigin(t *testing.T) {
	handler := corsTestHandler()

	req := httptest.NewRequest("GET", "/events/upcoming", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("User-Agent", "Mozilla/5.0")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestCors_NoOrigin(t *testing.T) {
	handler := corsTestHandler()

	// curl and server-to-server calls send no Origin header
	req := httptest.NewRequest("GET", "/version", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}
