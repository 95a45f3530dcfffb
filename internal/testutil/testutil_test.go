package testutil

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserCarriesCookies(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("visit"); err != nil {
			http.SetCookie(w, &http.Cookie{Name: "visit", Value: "1"})
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	})

	b := NewBrowser(t, handler)
	assert.Equal(t, http.StatusOK, b.Do(http.MethodGet, "/", nil).Code)
	assert.Equal(t, http.StatusAccepted, b.Do(http.MethodGet, "/", nil).Code)
}

func TestBrowserSendsJSONBody(t *testing.T) {
	var gotContentType string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"echo": "hi"}`))
	})

	b := NewBrowser(t, handler)
	w := b.Do(http.MethodPost, "/", map[string]string{"msg": "hi"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", gotContentType)

	var out struct {
		Echo string `json:"echo"`
	}
	DecodeJSON(t, w, &out)
	assert.Equal(t, "hi", out.Echo)
}
