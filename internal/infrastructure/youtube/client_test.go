package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ChannelSnapshot/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New("test-key", Options{BaseURL: server.URL, HTTPClient: server.Client()})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return client
}

func TestNewRequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := New("  ", Options{})
	var cfgErr *domain.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if cfgErr.Field != "youtube.apiKey" {
		t.Fatalf("unexpected field: %s", cfgErr.Field)
	}
}

func TestRequestAppendsKeyAndDecodes(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/channels" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("key") != "test-key" {
			t.Errorf("expected key=test-key, got %q", q.Get("key"))
		}
		if q.Get("id") != "UC123" {
			t.Errorf("expected id=UC123, got %q", q.Get("id"))
		}
		_, _ = w.Write([]byte(`{"items":[{"id":"UC123"}]}`))
	}))

	params := map[string][]string{"id": {"UC123"}}
	var resp Page[channelResource]
	if err := client.request(context.Background(), "channels", params, &resp); err != nil {
		t.Fatalf("request error: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].ID != "UC123" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestRequestForbiddenIsTransportError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"quotaExceeded"}}`))
	}))

	var out map[string]any
	err := client.request(context.Background(), "search", nil, &out)

	var transportErr *domain.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if transportErr.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", transportErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "Forbidden") {
		t.Fatalf("message should contain status text: %s", err.Error())
	}
	if !strings.Contains(transportErr.Body, "quotaExceeded") {
		t.Fatalf("body not captured: %q", transportErr.Body)
	}
}

func TestRequestDoesNotLeakKeyOnNetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client, err := New("secret-key", Options{BaseURL: baseURL})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	var out map[string]any
	err = client.request(context.Background(), "videos", nil, &out)
	if err == nil {
		t.Fatal("expected error from closed server")
	}
	if strings.Contains(err.Error(), "secret-key") {
		t.Fatalf("error leaks api key: %v", err)
	}
}
