package icu

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icu-tools/intervals-mcp/internal/config"
)

func testConfig(baseURL string) config.Config {
	return config.Config{
		AthleteID:         "i12345",
		APIKey:            "test-key",
		BaseURL:           baseURL,
		Timeout:           5 * time.Second,
		RequestsPerMinute: 6000, // effectively unlimited for tests
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(testConfig(srv.URL)), srv
}

func apiErr(t *testing.T, err error) *APIError {
	t.Helper()
	require.Error(t, err)
	var e *APIError
	require.ErrorAs(t, err, &e)
	return e
}

func TestClassifiesDocumentedStatuses(t *testing.T) {
	cases := []struct {
		status int
		kind   ErrorKind
	}{
		{http.StatusUnauthorized, KindUnauthorized},
		{http.StatusForbidden, KindUnauthorized},
		{http.StatusNotFound, KindNotFound},
		{http.StatusTooManyRequests, KindRateLimited},
		{http.StatusInternalServerError, KindUpstream},
		{http.StatusBadGateway, KindUpstream},
		{http.StatusServiceUnavailable, KindUpstream},
	}

	for _, tc := range cases {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		})

		_, err := c.Activity(context.Background(), "a1")
		e := apiErr(t, err)
		assert.Equal(t, tc.kind, e.Kind, "status %d", tc.status)
		assert.Equal(t, tc.status, e.StatusCode)
	}
}

func TestErrorMessagesAreKindSpecific(t *testing.T) {
	seen := map[string]bool{}
	for _, status := range []int{401, 403, 404, 429, 500} {
		e := &APIError{Kind: classify(status), StatusCode: status}
		msg := e.Message()
		assert.NotEmpty(t, msg)
		assert.False(t, seen[msg], "message for %d duplicates another kind: %q", status, msg)
		seen[msg] = true
	}
}

func TestNoRetryOnFailure(t *testing.T) {
	var calls atomic.Int64
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Activity(context.Background(), "a1")
	require.Error(t, err)
	assert.Equal(t, int64(1), calls.Load())
}

func TestMalformedSuccessBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html>not json</html>"))
	})

	_, err := c.Activity(context.Background(), "a1")
	e := apiErr(t, err)
	assert.Equal(t, KindMalformed, e.Kind)
}

func TestEmptySuccessBodyDecodesAsNull(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	raw, err := c.Activity(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage("null"), raw)
}

func TestRequestCarriesAuthAndQuery(t *testing.T) {
	var gotUser, gotPass, gotAccept string
	var gotQuery map[string]string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		gotAccept = r.Header.Get("Accept")
		gotQuery = map[string]string{
			"oldest": r.URL.Query().Get("oldest"),
			"newest": r.URL.Query().Get("newest"),
			"limit":  r.URL.Query().Get("limit"),
		}
		w.Write([]byte("[]"))
	})

	_, err := c.Activities(context.Background(), "i12345", "2024-01-01", "2024-01-31", 10)
	require.NoError(t, err)

	assert.Equal(t, "API_KEY", gotUser)
	assert.Equal(t, "test-key", gotPass)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "2024-01-01", gotQuery["oldest"])
	assert.Equal(t, "2024-01-31", gotQuery["newest"])
	assert.Equal(t, "10", gotQuery["limit"])
}

func TestNetworkErrorClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(testConfig(srv.URL))
	_, err := c.Activity(context.Background(), "a1")
	e := apiErr(t, err)
	assert.Equal(t, KindNetwork, e.Kind)
	assert.Zero(t, e.StatusCode)
}

func TestCancellationAbandonsRequest(t *testing.T) {
	started := make(chan struct{})
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := c.Activity(ctx, "a1")
	e := apiErr(t, err)
	assert.Equal(t, KindNetwork, e.Kind)
}

func TestMissingIDFailsBeforeDispatch(t *testing.T) {
	var calls atomic.Int64
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	_, err := c.Activity(context.Background(), "")
	e := apiErr(t, err)
	assert.Equal(t, KindInvalidParameter, e.Kind)

	_, err = c.Event(context.Background(), "i12345", "")
	e = apiErr(t, err)
	assert.Equal(t, KindInvalidParameter, e.Kind)

	assert.Equal(t, int64(0), calls.Load(), "no network call may happen for caller errors")
}

func TestPathsAreEscaped(t *testing.T) {
	var gotPath string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte("{}"))
	})

	_, err := c.Activity(context.Background(), "a/../1")
	require.NoError(t, err)
	assert.Equal(t, "/activity/a%2F..%2F1", gotPath)
}
