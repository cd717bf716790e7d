package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><form></form></body></html>"))
	}))
	defer srv.Close()

	result, err := URL(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.HTML, "<form>")
	assert.Contains(t, result.ContentType, "text/html")
}

func TestURL_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	result, err := URL(context.Background(), srv.URL, nil)
	require.Error(t, err)
	require.NotNil(t, result, "the body is still returned alongside the status error")
	assert.Equal(t, http.StatusNotFound, result.StatusCode)

	var fe *Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, srv.URL, fe.URL)
}

func TestURL_Invalid(t *testing.T) {
	_, err := URL(context.Background(), "not-a-url", nil)
	assert.Error(t, err)

	_, err = URL(context.Background(), "", nil)
	assert.Error(t, err)
}

func TestURL_CustomHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "abc", r.Header.Get("X-Custom"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	opts := DefaultOptions()
	opts.Headers = map[string]string{"X-Custom": "abc"}
	_, err := URL(context.Background(), srv.URL, opts)
	require.NoError(t, err)
}

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url  string
		want Platform
	}{
		{"https://boards.greenhouse.io/acme/jobs/1", PlatformGreenhouse},
		{"https://jobs.lever.co/acme/abc", PlatformLever},
		{"https://acme.wd5.myworkdayjobs.com/careers", PlatformWorkday},
		{"https://careers.acme.icims.com/jobs/123", PlatformICIMS},
		{"https://acme.taleo.net/careersection/1", PlatformTaleo},
		{"https://jobs.example.com/apply", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			assert.Equal(t, tt.want, DetectPlatform(tt.url))
		})
	}
}

func TestRequiresBrowser(t *testing.T) {
	assert.True(t, RequiresBrowser(PlatformWorkday))
	assert.True(t, RequiresBrowser(PlatformICIMS))
	assert.True(t, RequiresBrowser(PlatformTaleo))
	assert.False(t, RequiresBrowser(PlatformGreenhouse))
	assert.False(t, RequiresBrowser(PlatformLever))
	assert.False(t, RequiresBrowser(PlatformUnknown))
}
