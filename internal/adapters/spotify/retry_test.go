package spotify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRetryClient(srv *httptest.Server) *Client {
	c := NewClientWithHTTP(srv.Client(), srv.URL, zerolog.Nop())
	c.maxRetries = 3
	c.baseBackoff = time.Millisecond
	return c
}

func TestRetryRecoversFromRateLimit(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"tracks":{"items":[],"total":0}}`))
	}))
	defer srv.Close()

	c := newRetryClient(srv)

	var resp wireSearchResponse
	err := c.getJSON(context.Background(), "/search", &resp)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newRetryClient(srv)

	err := c.getJSON(context.Background(), "/search", &wireSearchResponse{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, 3, attempts)
}

func TestRetryDoesNotRetryClientErrors(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newRetryClient(srv)

	err := c.getJSON(context.Background(), "/search", &wireSearchResponse{})
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetryHonorsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClientWithHTTP(srv.Client(), srv.URL, zerolog.Nop())
	c.baseBackoff = time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.getJSON(ctx, "/search", &wireSearchResponse{})
	assert.Error(t, err)
}

func TestParseRetryAfterSeconds(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set("Retry-After", "2")
	assert.Equal(t, 2*time.Second, parseRetryAfter(resp))

	resp.Header.Set("Retry-After", "garbage")
	assert.Equal(t, time.Duration(0), parseRetryAfter(resp))

	resp.Header.Del("Retry-After")
	assert.Equal(t, time.Duration(0), parseRetryAfter(resp))
}
