package llm

import (
	"fmt"
	"strings"

	"github.com/csheth/textcraft/internal/textmode"
)

func clipText(text string, limit int) string {
	text = strings.TrimSpace(text)
	if limit <= 0 || len(text) <= limit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

// prepare validates req and returns the clipped text plus the user prompt.
func prepare(req Request) (string, string, error) {
	text := clipText(req.Text, maxInputChars)
	if text == "" {
		return "", "", ErrEmptyInput
	}
	if err := textmode.Validate(req.Processing, req.Style); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrUnknownMode, err)
	}
	return text, textmode.BuildPrompt(req.Processing, req.Style, text), nil
}

// cleanResponse strips the wrappers chat models like to add around an answer.
func cleanResponse(raw string) string {
	out := strings.TrimSpace(raw)
	if strings.HasPrefix(out, "```") {
		out = strings.TrimPrefix(out, "```")
		if nl := strings.IndexByte(out, '\n'); nl >= 0 && !strings.Contains(out[:nl], " ") {
			out = out[nl+1:]
		}
		out = strings.TrimSuffix(strings.TrimSpace(out), "```")
	}
	out = strings.TrimSpace(out)
	if len(out) >= 2 && strings.HasPrefix(out, `"`) && strings.HasSuffix(out, `"`) {
		out = strings.TrimSpace(out[1 : len(out)-1])
	}
	return out
}
