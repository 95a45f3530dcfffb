// Package testutil provides shared helpers for handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Browser drives an http.Handler directly while carrying cookies between
// requests, so a sequence of calls lands in one server-side session.
type Browser struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

// NewBrowser returns a Browser with an empty cookie jar.
func NewBrowser(t *testing.T, handler http.Handler) *Browser {
	return &Browser{t: t, handler: handler}
}

// Do issues one request against the handler. A non-nil body is sent as JSON.
// Cookies set by the response are kept for subsequent requests.
func (b *Browser) Do(method, path string, body interface{}) *httptest.ResponseRecorder {
	b.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			b.t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	b.handler.ServeHTTP(w, req)
	b.cookies = append(b.cookies, w.Result().Cookies()...)
	return w
}

// DecodeJSON unmarshals a recorded response body into out.
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response body %q: %v", w.Body.String(), err)
	}
}
