package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func corsRouter(origins []string) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/ips/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet, http.MethodPut)
	return CORS(origins)(r)
}

func preflight(h http.Handler, origin, method string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodOptions, "/api/ips/1", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", method)
	req.Header.Set("Access-Control-Request-Headers", "authorization,content-type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCORS_PreflightAnyOrigin(t *testing.T) {
	rec := preflight(corsRouter([]string{"*"}), "http://localhost:3000", http.MethodPut)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.MethodPut, rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestCORS_ListedOrigin(t *testing.T) {
	h := corsRouter([]string{"http://localhost:3000", "https://ipam.example.org"})

	rec := preflight(h, "http://localhost:3000", http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = preflight(h, "http://evil.test", http.MethodPut)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_SimpleRequestGetsOriginHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/ips/1", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	corsRouter([]string{"*"}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Disabled(t *testing.T) {
	rec := preflight(corsRouter(nil), "http://localhost:3000", http.MethodPut)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
