package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key-123" {
			t.Errorf("missing auth header, got %q", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "gpt-5-mini" || len(req.Messages) != 1 {
			t.Errorf("unexpected request: %+v", req)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": `{"ai_overview":"text"}`}},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "key-123", "gpt-5-mini")
	out, err := c.Complete(context.Background(), "explain F28")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !strings.Contains(out, "ai_overview") {
		t.Fatalf("unexpected content %q", out)
	}
}

func TestComplete_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{"error": map[string]string{"message": "rate limit"}})
	}))
	defer srv.Close()

	c := New(srv.URL, "", "gpt-5-mini")
	_, err := c.Complete(context.Background(), "x")
	if err == nil || !strings.Contains(err.Error(), "rate limit") {
		t.Fatalf("expected rate limit error, got %v", err)
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	c := New(srv.URL, "", "gpt-5-mini")
	if _, err := c.Complete(context.Background(), "x"); err == nil {
		t.Fatal("expected error on empty choices")
	}
}
