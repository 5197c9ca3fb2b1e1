package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/csheth/textcraft/internal/textmode"
)

type ollamaClient struct {
	host   string
	model  string
	client *http.Client
}

func (c *ollamaClient) Name() string {
	return fmt.Sprintf("Ollama (%s)", c.model)
}

func (c *ollamaClient) Transform(ctx context.Context, req Request) (string, error) {
	_, prompt, err := prepare(req)
	if err != nil {
		return "", err
	}
	return c.generate(ctx, prompt)
}

func (c *ollamaClient) generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model":  c.model,
		"system": textmode.SystemPrompt,
		"prompt": prompt,
		"stream": false,
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/generate", bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	log.Printf("[llm] ollama %s -> %s (%d bytes)", c.model, resp.Status, len(body))
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("ollama API error: %s (%s)", resp.Status, string(body))
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("ollama returned malformed JSON")
	}
	out := cleanResponse(gjson.GetBytes(body, "response").String())
	if out == "" {
		return "", fmt.Errorf("ollama returned an empty response")
	}
	return out, nil
}
