package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAIClientTransform(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Fatalf("unexpected auth header: %q", got)
		}
		var payload struct {
			Model       string  `json:"model"`
			MaxTokens   int     `json:"max_tokens"`
			Temperature float64 `json:"temperature"`
			Messages    []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		if payload.Model != "gpt-test" || payload.MaxTokens != 2000 || payload.Temperature != 0.7 {
			t.Fatalf("unexpected payload: %+v", payload)
		}
		if len(payload.Messages) != 2 || payload.Messages[0].Role != "system" || payload.Messages[1].Role != "user" {
			t.Fatalf("unexpected messages: %+v", payload.Messages)
		}
		if !strings.Contains(payload.Messages[1].Content, "Summarize the following text") {
			t.Fatalf("user prompt missing instruction: %s", payload.Messages[1].Content)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"` + "```\\nShort version.\\n```" + `"}}]}`))
	}))
	defer server.Close()

	client := &openAIClient{
		apiKey:      "sk-test",
		model:       "gpt-test",
		base:        server.URL + "/v1",
		maxTokens:   2000,
		temperature: 0.7,
		client:      server.Client(),
	}
	out, err := client.Transform(context.Background(), Request{Text: "A long text.", Processing: []string{"summarize"}, Style: "simple"})
	if err != nil {
		t.Fatalf("transform failed: %v", err)
	}
	if out != "Short version." {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestOpenAIClientSurfacesAPIErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided"}}`))
	}))
	defer server.Close()

	client := &openAIClient{apiKey: "bad", model: "m", base: server.URL, client: server.Client()}
	_, err := client.Transform(context.Background(), Request{Text: "x", Processing: []string{"correct"}, Style: "formal"})
	if err == nil || !strings.Contains(err.Error(), "Incorrect API key provided") {
		t.Fatalf("expected API error message, got %v", err)
	}
}

func TestOpenAIClientNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := &openAIClient{apiKey: "k", model: "m", base: server.URL, client: server.Client()}
	_, err := client.Transform(context.Background(), Request{Text: "x", Processing: []string{"correct"}, Style: "formal"})
	if err == nil || !strings.Contains(err.Error(), "no choices") {
		t.Fatalf("expected no choices error, got %v", err)
	}
}
