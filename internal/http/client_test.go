package http_test

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalhttp "github.com/huwise-io/huwise-client/internal/http"
	"github.com/huwise-io/huwise-client/pkg/huwise"
)

func testConfig() *huwise.Config {
	return &huwise.Config{
		APIKey:  "test-key",
		Domain:  "data.example.org",
		APIType: "automation/v1.0",
	}
}

func newTestClient(serverURL string) *internalhttp.Client {
	return internalhttp.NewClient(testConfig(),
		internalhttp.WithBaseURL(serverURL),
		internalhttp.WithRetryConfig(2, time.Millisecond, 5*time.Millisecond))
}

func TestClient_AuthorizationHeader(t *testing.T) {
	t.Parallel()

	var gotAuth string

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Get(context.Background(), "/datasets/", nil)
	require.NoError(t, err)
	assert.Equal(t, "apikey test-key", gotAuth)
}

func TestClient_CallerHeadersCannotOverrideAuth(t *testing.T) {
	t.Parallel()

	var gotAuth string

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Do(context.Background(), &internalhttp.Request{
		Method:  nethttp.MethodGet,
		Path:    "/datasets/",
		Headers: map[string]string{"Authorization": "apikey forged"},
	})
	require.NoError(t, err)
	assert.Equal(t, "apikey test-key", gotAuth)
}

func TestClient_QueryAndBody(t *testing.T) {
	t.Parallel()

	var (
		gotQuery       url.Values
		gotContentType string
		gotBody        map[string]any
	)

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotQuery = r.URL.Query()
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	query := url.Values{}
	query.Set("limit", "10")

	resp, err := client.Do(context.Background(), &internalhttp.Request{
		Method: nethttp.MethodPut,
		Path:   "/datasets/uid-1/metadata/",
		Query:  query,
		Body:   map[string]any{"title": "New"},
	})
	require.NoError(t, err)

	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
	assert.Equal(t, "10", gotQuery.Get("limit"))
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, map[string]any{"title": "New"}, gotBody)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(nethttp.StatusServiceUnavailable)

			return
		}

		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	resp, err := client.Get(context.Background(), "/datasets/uid-1/status", nil)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		calls.Add(1)
		w.WriteHeader(nethttp.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"no such dataset"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	resp, err := client.Get(context.Background(), "/datasets/uid-missing", nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())

	// The response is still returned alongside the error
	require.NotNil(t, resp)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)

	apiErr := &huwise.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, nethttp.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "no such dataset", apiErr.Message)
}

func TestClient_RetryBudgetExhausted(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		calls.Add(1)
		w.WriteHeader(nethttp.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Get(context.Background(), "/datasets/", nil)
	require.Error(t, err)

	// Initial attempt plus RetryMax retries
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_ErrorBodyParsing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "message key",
			body: `{"message":"bad input"}`,
			want: "bad input",
		},
		{
			name: "detail key",
			body: `{"detail":"not permitted"}`,
			want: "not permitted",
		},
		{
			name: "error key",
			body: `{"error":"broken"}`,
			want: "broken",
		},
		{
			name: "plain text fallback",
			body: "upstream exploded\n",
			want: "upstream exploded",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
				w.WriteHeader(nethttp.StatusBadRequest)
				_, _ = w.Write([]byte(test.body))
			}))
			defer server.Close()

			client := newTestClient(server.URL)

			_, err := client.Get(context.Background(), "/datasets/", nil)
			require.Error(t, err)

			apiErr := &huwise.APIError{}
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, test.want, apiErr.Message)
		})
	}
}

func TestClient_UserAgent(t *testing.T) {
	t.Parallel()

	var gotUserAgent string

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := internalhttp.NewClient(testConfig(),
		internalhttp.WithBaseURL(server.URL),
		internalhttp.WithUserAgent("huwise-test/1.0"))

	_, err := client.Get(context.Background(), "/datasets/", nil)
	require.NoError(t, err)
	assert.Equal(t, "huwise-test/1.0", gotUserAgent)
}

func TestClient_ContextCancellation(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Get(ctx, "/datasets/", nil)
	require.Error(t, err)
}
