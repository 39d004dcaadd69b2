package browser

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Fetch_MissingCookies(t *testing.T) {
	s := NewSession(SessionConfig{
		CookiesPath: filepath.Join(t.TempDir(), "missing.json"),
		SearchURL:   "http://127.0.0.1:1/never",
	}, nil)

	html, err := s.Fetch(context.Background())
	assert.Empty(t, html)
	assert.True(t, errors.Is(err, ErrCredentials))
	assert.False(t, errors.Is(err, ErrFetch))
}

func TestSession_Fetch_CancelledContext(t *testing.T) {
	path := writeCookies(t, `[{"name": "a", "value": "b", "domain": "127.0.0.1"}]`)
	s := NewSession(SessionConfig{CookiesPath: path, SearchURL: "http://127.0.0.1:1/never"}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsChallenge(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{title: "Just a moment...", want: true},
		{title: "Attention Required! | Cloudflare", want: true},
		{title: "Qt Jobs | Upwork", want: false},
		{title: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, isChallenge(tt.title))
		})
	}
}

// integration test: needs the playwright driver and chromium installed
func TestSession_Fetch_Real(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping browser test in short mode")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("session"); err != nil {
			http.Error(w, "login required", http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`<html><body><article><h4>Qt job</h4><a href="/jobs/1">x</a></article></body></html>`))
	}))
	defer srv.Close()

	path := writeCookies(t, `[{"name": "session", "value": "ok", "domain": "127.0.0.1"}]`)
	s := NewSession(SessionConfig{
		CookiesPath:       path,
		SearchURL:         srv.URL,
		Headless:          true,
		NavigationTimeout: 10 * time.Second,
		RenderWait:        100 * time.Millisecond,
	}, nil)

	html, err := s.Fetch(context.Background())
	require.NoError(t, err)
	assert.Contains(t, html, "Qt job")
}
