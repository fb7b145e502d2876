package command

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// validToken has the shape of an issued token.
var validToken = "lnk_" + strings.Repeat("A", 43)

// mockServer is a test HTTP server with per-path handlers.
type mockServer struct {
	*httptest.Server
	handlers map[string]http.HandlerFunc
}

func newMockServer(t *testing.T) *mockServer {
	t.Helper()
	m := &mockServer{handlers: make(map[string]http.HandlerFunc)}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := m.handlers[r.Method+" "+r.URL.Path]; ok {
			h(w, r)
			return
		}
		errorResponse(w, http.StatusNotFound, "HL-SYS-4040", "not found")
	}))
	t.Cleanup(m.Close)
	return m
}

// handle registers a handler for "METHOD /path".
func (m *mockServer) handle(pattern string, handler http.HandlerFunc) {
	m.handlers[pattern] = handler
}

// jsonResponse writes a success envelope around data.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"code":       "OK",
		"message":    "Success",
		"request_id": "01TESTREQUEST",
		"data":       data,
	})
}

// errorResponse writes an error envelope.
func errorResponse(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"code":    code,
		"message": message,
	})
}

// runApp runs the CLI against server and returns what it printed.
func runApp(t *testing.T, server *mockServer, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := App()
	app.Writer = &out
	app.ErrWriter = &out

	full := []string{"hublink-cli"}
	if server != nil {
		full = append(full, "--server", server.URL)
	}
	full = append(full, args...)
	err := app.Run(full)
	return out.String(), err
}
