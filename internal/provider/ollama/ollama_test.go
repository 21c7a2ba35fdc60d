package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"maestro/internal/provider"
)

func TestName(t *testing.T) {
	c := New("http://localhost:11434", "")
	if c.Name() != "ollama" {
		t.Errorf("expected name 'ollama', got %q", c.Name())
	}
}

func TestComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/chat" {
			t.Errorf("expected /api/chat, got %s", r.URL.Path)
		}

		var body chatRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if body.Model != "llama3:instruct" {
			t.Errorf("expected model 'llama3:instruct', got %q", body.Model)
		}
		if body.Stream {
			t.Error("expected stream=false")
		}
		if len(body.Messages) != 1 || body.Messages[0].Content != "Hello" {
			t.Errorf("unexpected messages: %+v", body.Messages)
		}

		resp := chatResponse{
			Model:   "llama3:instruct",
			Message: chatMessage{Role: "assistant", Content: "Hi there!"},
			Done:    true,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	text, err := c.Complete(context.Background(), "llama3:instruct", provider.UserMessage("Hello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Hi there!" {
		t.Errorf("expected 'Hi there!', got %q", text)
	}
}

func TestComplete_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "model not found"})
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	_, err := c.Complete(context.Background(), "missing:model", provider.UserMessage("hi"))
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !strings.Contains(err.Error(), "model not found") {
		t.Errorf("error should carry the server message, got %v", err)
	}
}

func TestComplete_BearerAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q, want Bearer secret", got)
		}
		json.NewEncoder(w).Encode(chatResponse{Message: chatMessage{Content: "ok"}, Done: true})
	}))
	defer srv.Close()

	c := New(srv.URL, "secret")
	if _, err := c.Complete(context.Background(), "m", provider.UserMessage("hi")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("expected /api/tags, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(tagsResponse{Models: []modelInfo{
			{Name: "llama3:instruct"},
			{Name: "llama3:70b-instruct"},
		}})
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	names, err := c.ListModels(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 || names[0] != "llama3:instruct" {
		t.Errorf("unexpected models: %v", names)
	}
}

func TestEnsureModel(t *testing.T) {
	var pulled bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			json.NewEncoder(w).Encode(tagsResponse{Models: []modelInfo{{Name: "present:model"}}})
		case "/api/pull":
			var req pullRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.Model != "absent:model" {
				t.Errorf("pull requested for %q", req.Model)
			}
			pulled = true
			json.NewEncoder(w).Encode(pullResponse{Status: "success"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "")

	didPull, err := c.EnsureModel(context.Background(), "present:model")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if didPull {
		t.Error("present model should not be pulled")
	}

	didPull, err = c.EnsureModel(context.Background(), "absent:model")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !didPull || !pulled {
		t.Error("absent model should be pulled")
	}
}
