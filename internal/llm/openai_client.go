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

type openAIClient struct {
	apiKey      string
	model       string
	base        string
	maxTokens   int
	temperature float64
	client      *http.Client
}

func (c *openAIClient) Name() string {
	return fmt.Sprintf("OpenAI (%s)", c.model)
}

func (c *openAIClient) Transform(ctx context.Context, req Request) (string, error) {
	_, prompt, err := prepare(req)
	if err != nil {
		return "", err
	}
	return c.chat(ctx, prompt)
}

func (c *openAIClient) chat(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": textmode.SystemPrompt},
			{"role": "user", "content": prompt},
		},
		"max_tokens":  c.maxTokens,
		"temperature": c.temperature,
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/chat/completions", c.base)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
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
	log.Printf("[llm] openai %s -> %s (%d bytes)", c.model, resp.Status, len(body))
	if resp.StatusCode >= 400 {
		msg := gjson.GetBytes(body, "error.message").String()
		if msg == "" {
			msg = string(body)
		}
		return "", fmt.Errorf("openai API error: %s (%s)", resp.Status, msg)
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("openai returned malformed JSON")
	}
	choice := gjson.GetBytes(body, "choices.0.message.content")
	if !choice.Exists() {
		return "", fmt.Errorf("openai API returned no choices")
	}
	return cleanResponse(choice.String()), nil
}
