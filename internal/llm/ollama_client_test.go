package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/csheth/textcraft/internal/textmode"
)

func TestOllamaClientTransform(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		var payload struct {
			Model  string `json:"model"`
			System string `json:"system"`
			Prompt string `json:"prompt"`
			Stream bool   `json:"stream"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		if payload.Model != "qwen3-vl:8b" {
			t.Fatalf("expected model qwen3-vl:8b, got %s", payload.Model)
		}
		if payload.System != textmode.SystemPrompt {
			t.Fatalf("system prompt missing: %q", payload.System)
		}
		if !strings.HasSuffix(payload.Prompt, "\n\nmeeting moved to friday") {
			t.Fatalf("prompt missing text: %s", payload.Prompt)
		}
		if !strings.Contains(payload.Prompt, "formal, polite style") {
			t.Fatalf("prompt missing style instruction: %s", payload.Prompt)
		}
		if payload.Stream {
			t.Fatal("expected streaming to be disabled")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response":"  The meeting has been moved to Friday.  ","done":true}`))
	}))
	defer server.Close()

	client := &ollamaClient{
		host:   server.URL,
		model:  "qwen3-vl:8b",
		client: server.Client(),
	}

	result, err := client.Transform(context.Background(), Request{
		Text:       "meeting moved to friday",
		Processing: []string{"correct"},
		Style:      "formal",
	})
	if err != nil {
		t.Fatalf("transform failed: %v", err)
	}
	if result != "The meeting has been moved to Friday." {
		t.Fatalf("unexpected result: %q", result)
	}
}

func TestOllamaClientErrors(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "http error", status: http.StatusInternalServerError, body: `boom`, wantErr: "ollama API error"},
		{name: "empty response", status: http.StatusOK, body: `{"response":"","done":true}`, wantErr: "empty response"},
		{name: "malformed", status: http.StatusOK, body: `{"response":`, wantErr: "malformed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := &ollamaClient{host: server.URL, model: "m", client: server.Client()}
			_, err := client.Transform(context.Background(), Request{Text: "x", Processing: []string{"summarize"}, Style: "simple"})
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}
