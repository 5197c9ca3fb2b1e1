package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestPickHTTPClientHonorsCustomClient(t *testing.T) {
	custom := &http.Client{Timeout: 42 * time.Second}
	if got := pickHTTPClient(custom); got != custom {
		t.Fatalf("expected custom client to be returned")
	}
}

func TestPickHTTPClientUsesLongerTimeout(t *testing.T) {
	client := pickHTTPClient(nil)
	if client.Timeout != defaultLLMHTTPTimeout {
		t.Fatalf("expected default timeout %s, got %s", defaultLLMHTTPTimeout, client.Timeout)
	}
}

func TestNewSelectsProvider(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")
	t.Setenv("OLLAMA_MODEL", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_BASE_URL", "")

	sim, err := New(Config{})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if sim.Name() != "Simulation" {
		t.Fatalf("expected simulation by default, got %s", sim.Name())
	}

	ollama, err := New(Config{Provider: "Ollama", Endpoint: "http://example:11434/"})
	if err != nil {
		t.Fatalf("ollama: %v", err)
	}
	oc, ok := ollama.(*ollamaClient)
	if !ok {
		t.Fatalf("expected *ollamaClient, got %T", ollama)
	}
	if oc.host != "http://example:11434" || oc.model != defaultOllamaModel {
		t.Fatalf("unexpected ollama config: %+v", oc)
	}

	if _, err := New(Config{Provider: ProviderOpenAI}); err == nil {
		t.Fatal("openai without a key should fail")
	}
	openai, err := New(Config{Provider: ProviderOpenAI, APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("openai: %v", err)
	}
	if c := openai.(*openAIClient); c.maxTokens != defaultMaxTokens || c.temperature != defaultTemperature || c.base != defaultOpenAIBase {
		t.Fatalf("unexpected openai defaults: %+v", c)
	}

	if _, err := New(Config{Provider: "carrier-pigeon"}); !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestSimulatedClientTransform(t *testing.T) {
	client := &simulatedClient{}
	out, err := client.Transform(context.Background(), Request{Text: "  hello world.  ", Processing: []string{"correct"}, Style: "simple"})
	if err != nil {
		t.Fatalf("transform failed: %v", err)
	}
	if out != "hello world" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestSimulatedClientRejectsBadRequests(t *testing.T) {
	client := &simulatedClient{}
	if _, err := client.Transform(context.Background(), Request{Text: "   ", Processing: []string{"correct"}, Style: "formal"}); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := client.Transform(context.Background(), Request{Text: "x", Processing: []string{"nope"}, Style: "formal"}); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

func TestSimulatedClientHonorsContext(t *testing.T) {
	client := &simulatedClient{delay: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Transform(ctx, Request{Text: "x", Processing: []string{"correct"}, Style: "formal"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCleanResponse(t *testing.T) {
	cases := map[string]string{
		"  plain  ":                 "plain",
		"```\nfenced\n```":          "fenced",
		"```text\nlabelled\n```":    "labelled",
		`"quoted answer"`:           "quoted answer",
		"```\n\"both\"\n```":        "both",
		"keeps ``` inside the text": "keeps ``` inside the text",
	}
	for in, want := range cases {
		if got := cleanResponse(in); got != want {
			t.Fatalf("cleanResponse(%q) = %q, want %q", in, got, want)
		}
	}
}
