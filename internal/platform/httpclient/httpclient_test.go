package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestGetJSON_QueryAndBearer(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/things" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("expected limit=5, got %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("expected bearer header, got %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("expected json accept header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"x"}`))
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL, 0)
	if err != nil {
		t.Fatalf("client: %v", err)
	}

	var out struct {
		Name string `json:"name"`
	}
	q := url.Values{"limit": {"5"}}
	if err := c.GetJSON(context.Background(), "/v1/things", q, "tok", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.Name != "x" {
		t.Fatalf("decode failed: %+v", out)
	}
}

func TestGetJSON_NoTokenOmitsHeader(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("expected no Authorization header")
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL, 0)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	if err := c.GetJSON(context.Background(), "/v1/things", nil, "", nil); err != nil {
		t.Fatalf("get: %v", err)
	}
}

func TestDoJSON_Non2xxIsHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL, 0)
	if err != nil {
		t.Fatalf("client: %v", err)
	}

	err = c.DoJSON(context.Background(), http.MethodGet, "/v1/things", nil, nil, nil)

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusForbidden || httpErr.Body != "nope" {
		t.Fatalf("unexpected error payload: %+v", httpErr)
	}
}

func TestResolveURL_RelativeNeedsBaseURL(t *testing.T) {
	c := New(0)
	if err := c.GetJSON(context.Background(), "/v1/things", nil, "", nil); err == nil {
		t.Fatalf("expected error for relative path without BaseURL")
	}
}

func TestNewWithBaseURL_Invalid(t *testing.T) {
	if _, err := NewWithBaseURL("://bad", 0); err == nil {
		t.Fatalf("expected error for malformed base url")
	}
}
