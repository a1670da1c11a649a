package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher() *HTTPFetcher {
	return NewHTTPFetcher(HTTPOptions{
		UserAgent: "test-agent",
		Timeout:   5 * time.Second,
	})
}

func TestFetchHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Write([]byte("<p>Телефон: 8(912)345-67-89</p>"))
	}))
	defer srv.Close()

	f := newTestFetcher()
	html, err := f.FetchHTML(context.Background(), srv.URL+"/item/1")
	require.NoError(t, err)
	assert.Equal(t, "<p>Телефон: 8(912)345-67-89</p>", html)
}

func TestFetchHTML_DefaultOptions(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(HTTPOptions{})
	assert.Equal(t, DefaultTimeout, f.client.Timeout)

	_, err := f.FetchHTML(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestFetchHTML_DropsInvalidUTF8(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("+7\xff\xfe9123456789"))
	}))
	defer srv.Close()

	html, err := newTestFetcher().FetchHTML(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "+79123456789", html)
}

func TestFetchHTML_ErrorStatus(t *testing.T) {
	for _, code := range []int{http.StatusForbidden, http.StatusNotFound, http.StatusTooManyRequests, http.StatusBadGateway} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
			w.Write([]byte("+7 (912) 345-67-89"))
		}))

		_, err := newTestFetcher().FetchHTML(context.Background(), srv.URL)
		require.Error(t, err)
		assert.True(t, IsTransport(err), "status %d", code)

		var te *TransportError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, code, te.StatusCode)
		srv.Close()
	}
}

func TestFetchHTML_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	f := NewHTTPFetcher(HTTPOptions{Timeout: 50 * time.Millisecond})
	_, err := f.FetchHTML(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, IsTransport(err))
}

func TestFetchHTML_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	_, err := newTestFetcher().FetchHTML(context.Background(), addr)
	require.Error(t, err)
	assert.True(t, IsTransport(err))
}

func TestFetchHTML_BadRequestURL(t *testing.T) {
	_, err := newTestFetcher().FetchHTML(context.Background(), "http://[::1")
	require.Error(t, err)
	assert.False(t, IsTransport(err))
}
