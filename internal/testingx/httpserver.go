package testingx

import (
	"net/http"
	"net/http/httptest"
)

// MustNewHTTPServer creates a new [*httptest.Server] using the given handler.
// The caller is responsible for calling Close.
func MustNewHTTPServer(handler http.Handler) *httptest.Server {
	return httptest.NewServer(handler)
}

// HTTPHandlerReset returns a handler that resets the connection by hijacking
// it and closing the underlying socket without writing a response.
func HTTPHandlerReset() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hijacker, ok := w.(http.Hijacker)
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		conn, _, err := hijacker.Hijack()
		if err != nil {
			return
		}
		conn.Close()
	})
}

// HTTPHandlerStatus returns a handler that responds with the given status,
// content type, and body.
func HTTPHandlerStatus(status int, contentType string, body []byte) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		w.Write(body)
	})
}
