package perfcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/locations", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{})
	})
	mux.HandleFunc("GET /api/database", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"totalLocations": 0})
	})
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["password"] != "good-pw" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "tok123", "role": "admin"})
	})
	mux.HandleFunc("POST /api/locations", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "tok123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"id": "loc_0badc0de", "name": "perfcheck probe"})
	})
	mux.HandleFunc("PUT /api/locations/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"message": "ok"})
	})
	mux.HandleFunc("DELETE /api/locations/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": "loc_0badc0de"})
	})

	return httptest.NewServer(mux)
}

func TestChecker_AnonymousRun(t *testing.T) {
	srv := newFakeServer(t)
	defer srv.Close()

	c := New(srv.URL, false)
	results := c.Run(context.Background())

	require.Len(t, results, 2, "anonymous run probes the read endpoints only")
	for _, r := range results {
		assert.NoError(t, r.Err)
		assert.True(t, r.Success, "%s %s", r.Method, r.Endpoint)
		assert.Equal(t, http.StatusOK, r.StatusCode)
	}
}

func TestChecker_AuthenticatedRun(t *testing.T) {
	srv := newFakeServer(t)
	defer srv.Close()

	c := New(srv.URL, false)
	require.NoError(t, c.Login(context.Background(), "admin", "good-pw"))

	results := c.Run(context.Background())
	require.Len(t, results, 6)

	var methods []string
	for _, r := range results {
		require.NoError(t, r.Err)
		assert.True(t, r.Success, "%s %s -> %d", r.Method, r.Endpoint, r.StatusCode)
		methods = append(methods, r.Method+" "+r.Endpoint)
	}
	assert.Contains(t, methods, "POST /api/locations")
	assert.Contains(t, methods, "PUT /api/locations/loc_0badc0de")
	assert.Contains(t, methods, "PUT /api/locations/bulk")
	assert.Contains(t, methods, "DELETE /api/locations/loc_0badc0de")
}

func TestChecker_LoginFailure(t *testing.T) {
	srv := newFakeServer(t)
	defer srv.Close()

	c := New(srv.URL, false)
	err := c.Login(context.Background(), "admin", "bad-pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestPrint_Table(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, []Result{
		{Endpoint: "/api/locations", Method: "GET", StatusCode: 200, Success: true},
	})

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "METHOD"))
	assert.Contains(t, out, "/api/locations")
	assert.Contains(t, out, "200")
}
