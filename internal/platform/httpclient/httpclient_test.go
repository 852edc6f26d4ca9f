package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealth(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			_, _ = w.Write([]byte("ok\n"))
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}))
	defer ts.Close()

	c, err := New(ts.URL+"/", 0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := c.Health(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}

	var out map[string]any
	err = c.GetJSON(context.Background(), "api/v1/nope", &out)
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected HTTPError 404, got %v", err)
	}
}

func TestGetJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"1","name":"Firulais"}]`))
	}))
	defer ts.Close()

	c, err := New(ts.URL, 0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	var out []map[string]string
	if err := c.GetJSON(context.Background(), "/api/v1/pets", &out); err != nil {
		t.Fatalf("get json: %v", err)
	}
	if len(out) != 1 || out[0]["name"] != "Firulais" {
		t.Fatalf("unexpected body: %v", out)
	}
}

func TestNewRejectsBadURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8080", "ftp://host"} {
		if _, err := New(raw, 0); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
